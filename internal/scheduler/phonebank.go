package scheduler

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// PhoneBank 把电话行动均匀铺在窗口内工作日的 09:00 到 17:00 之间。
// 给机构或企业打电话只有办公时间有人接，晚间和周末一律顺延。
func (s *Scheduler) PhoneBank(actionIDs []int64, window *domain.ScheduleWindow, callsPerHour int) ([]*domain.ScheduledAction, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if callsPerHour <= 0 {
		return nil, fmt.Errorf("%w: 每小时呼叫数必须为正数", ErrInvalidParameter)
	}

	loc := window.Location()
	windowEnd := window.End.In(loc)
	interval := time.Duration(60.0 / float64(callsPerHour) * float64(time.Minute))

	cur := window.Start.In(loc)
	if cur.Hour() < 9 {
		cur = atHour(cur, 9, 0, loc)
	}

	scheduled := make([]*domain.ScheduledAction, 0, len(actionIDs))

	for _, id := range actionIDs {
		for cur.Hour() < 9 || cur.Hour() >= 17 || isWeekend(cur.Weekday()) {
			cur = atHour(cur.AddDate(0, 0, 1), 9, 0, loc)
		}
		if cur.After(windowEnd) {
			break
		}

		scheduled = append(scheduled, &domain.ScheduledAction{
			ActionID:       id,
			ActionType:     domain.ActionPhoneCall,
			ScheduledStart: cur,
			ScheduledEnd:   cur.Add(10 * time.Minute),
			Priority:       2,
			BatchID:        fmt.Sprintf("calls-%s", cur.Format(time.DateOnly)),
		})

		cur = cur.Add(interval)
	}

	return scheduled, nil
}
