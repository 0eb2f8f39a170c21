// Package scheduler 负责把一批待执行的行动分配到具体的时间点上。
// 各策略只做纯粹的时间计算，不读写数据库，结果由调用方负责持久化。
package scheduler

import (
	"math/rand"
	"time"
)

// Scheduler 是时间分配引擎。
// rng 由调用方注入，相同的种子会产生完全相同的排期，方便复现和测试；
// 并发生成多份排期时每次调用方应使用各自独立的 rng。
type Scheduler struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Scheduler{rng: rng}
}
