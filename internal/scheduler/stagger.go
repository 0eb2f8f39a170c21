package scheduler

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// StaggerParameters 控制邮件错峰投放的节奏。
type StaggerParameters struct {
	PerDay          int // 每个工作日最多安排多少封
	IntervalMinutes int // 同一天内相邻两封之间的基础间隔
	JitterMinutes   int // 在基础间隔上额外追加的随机抖动上限
}

// StaggerEmails 把一批邮件行动错峰分配到窗口内的工作日中，
// 避免同一时刻集中发送触发收件方的限流。
// 游标到达每日上限或晚于 18:00 时滚动到下一个工作日 09:00 附近并重置当日计数，
// 游标日期越过窗口结束日期后剩余行动不再安排。
func (s *Scheduler) StaggerEmails(actionIDs []int64, window *domain.ScheduleWindow, params *StaggerParameters) ([]*domain.ScheduledAction, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if params == nil || params.PerDay <= 0 {
		return nil, fmt.Errorf("%w: 每日上限必须为正数", ErrInvalidParameter)
	}
	if params.IntervalMinutes < 0 || params.JitterMinutes < 0 {
		return nil, fmt.Errorf("%w: 间隔和抖动不能为负数", ErrInvalidParameter)
	}

	loc := window.Location()
	windowEnd := window.End.In(loc)
	cur := NextBusinessInstant(window.Start, window)

	scheduled := make([]*domain.ScheduledAction, 0, len(actionIDs))
	sentToday := 0

	for i, id := range actionIDs {
		// 每次推进后都重新校验游标, 跨周末和禁止时段统一交给 NextBusinessInstant。
		next := NextBusinessInstant(cur, window)
		if dateAfter(next, cur) {
			sentToday = 0
		}
		cur = next
		if dateAfter(cur, windowEnd) {
			break
		}

		scheduled = append(scheduled, &domain.ScheduledAction{
			ActionID:       id,
			ActionType:     domain.ActionEmail,
			ScheduledStart: cur,
			ScheduledEnd:   cur.Add(time.Hour),
			Priority:       staggerPriority(i, params.PerDay),
			BatchID:        fmt.Sprintf("email-batch-%s", cur.Format(time.DateOnly)),
		})

		sentToday++
		if sentToday >= params.PerDay {
			cur = s.nextMorning(cur, loc)
			sentToday = 0
			continue
		}

		step := params.IntervalMinutes
		if params.JitterMinutes > 0 {
			step += s.rng.Intn(params.JitterMinutes + 1)
		}
		cur = cur.Add(time.Duration(step) * time.Minute)

		// 超过 18:00 的邮件打开率明显下降，顺延到第二天早上。
		if cur.Hour() >= 18 {
			cur = s.nextMorning(cur, loc)
			sentToday = 0
		}
	}

	return scheduled, nil
}

// nextMorning 滚动到次日 09:00 后的随机半小时内。
func (s *Scheduler) nextMorning(cur time.Time, loc *time.Location) time.Time {
	return atHour(cur.AddDate(0, 0, 1), 9, s.rng.Intn(30), loc)
}

func staggerPriority(index, perDay int) int32 {
	p := 5 - int32(index/perDay)
	if p < 1 {
		return 1
	}

	return p
}

func validateWindow(window *domain.ScheduleWindow) error {
	if window == nil {
		return fmt.Errorf("%w: 窗口不能为空", ErrInvalidWindow)
	}
	if window.Start.After(window.End) {
		return fmt.Errorf(
			"%w: 开始时间 %s 晚于结束时间 %s",
			ErrInvalidWindow,
			window.Start.Format(time.RFC3339),
			window.End.Format(time.RFC3339),
		)
	}
	if containsHour(window.BlockedHours, 9) {
		return fmt.Errorf("%w: 09 点被列入禁止时段，与每日滚动锚点冲突", ErrInvalidWindow)
	}

	return nil
}
