package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// campaignSpanDays 是公众评论期的惯例长度：自截止日期向前回溯六周。
const campaignSpanDays = 42

// CommentRamp 为公众评论期安排一条前松后紧的递交曲线：
// 约 20% 的实质性评论放在最前两周抢占机构的初始议程，
// 约 20% 铺在中间两周维持存在感，
// 其余 60% 进入截止前 rampDays 天的冲刺窗口，日偏移按序号的二次方增长，
// 最后一条正好落在截止前一天。
// 所有评论都严格安排在截止时间之前。
func (s *Scheduler) CommentRamp(actionIDs []int64, deadline time.Time, rampDays int) ([]*domain.ScheduledAction, error) {
	if rampDays <= 0 {
		return nil, fmt.Errorf("%w: 冲刺天数必须为正数", ErrInvalidParameter)
	}

	total := len(actionIDs)
	scheduled := make([]*domain.ScheduledAction, 0, total)
	if total == 0 {
		return scheduled, nil
	}

	// 两个前置梯队至少各占一条，且总和不超过行动总数，
	// 行动很少时冲刺梯队允许为空。
	earlyCount := max(1, total*20/100)
	if earlyCount > total {
		earlyCount = total
	}
	middleCount := max(1, total*20/100)
	if middleCount > total-earlyCount {
		middleCount = total - earlyCount
	}
	rampCount := total - earlyCount - middleCount

	loc := deadline.Location()
	campaignStart := deadline.AddDate(0, 0, -campaignSpanDays)
	rampStart := deadline.AddDate(0, 0, -rampDays)

	// 早期梯队：线性铺在前两周，每天 10:00。
	for i := 0; i < earlyCount; i++ {
		dayOffset := int(14.0 / float64(earlyCount) * float64(i))
		at := atHour(campaignStart.AddDate(0, 0, dayOffset), 10, 0, loc)
		scheduled = append(scheduled, s.rampAction(actionIDs[i], at, 2, "comment-early",
			"早期实质性评论，影响机构对议题的初始框架"))
	}

	// 中期梯队：线性铺在第三、四周，每天 14:00。
	for i := 0; i < middleCount; i++ {
		dayOffset := 14 + int(14.0/float64(middleCount)*float64(i))
		at := atHour(campaignStart.AddDate(0, 0, dayOffset), 14, 0, loc)
		scheduled = append(scheduled, s.rampAction(actionIDs[earlyCount+i], at, 5, "comment-middle",
			"中期评论，维持议题存在感"))
	}

	// 冲刺梯队：日偏移随序号二次增长，时刻在 09 到 16 点之间随机。
	for i := 0; i < rampCount; i++ {
		dayOffset := 0
		if rampCount > 1 {
			fraction := float64(i) / float64(rampCount-1)
			dayOffset = int(math.Floor(fraction * fraction * float64(rampDays-1)))
		}
		at := atHour(rampStart.AddDate(0, 0, dayOffset), 9+s.rng.Intn(8), 0, loc)
		scheduled = append(scheduled, s.rampAction(actionIDs[earlyCount+middleCount+i], at, 3, "comment-rampup",
			"冲刺期评论，宁可从速也不要错过截止"))
	}

	return scheduled, nil
}

func (s *Scheduler) rampAction(id int64, at time.Time, priority int32, batchID, notes string) *domain.ScheduledAction {
	return &domain.ScheduledAction{
		ActionID:       id,
		ActionType:     domain.ActionPublicComment,
		ScheduledStart: at,
		ScheduledEnd:   at.Add(2 * time.Hour),
		Priority:       priority,
		BatchID:        batchID,
		Notes:          notes,
	}
}
