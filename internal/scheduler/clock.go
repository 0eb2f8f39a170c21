package scheduler

import (
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// NextBusinessInstant 把候选时间点向前推到窗口允许的下一个可用时刻：
// 周末（若窗口要求跳过）推到下周一，落在禁止时段内则推到次日，
// 落点取 09:00 起第一个未被禁止的整点。已经合法的时间点原样返回。
// 若窗口把全天 24 个小时都列入禁止时段，则只跳过周末后原样返回。
func NextBusinessInstant(candidate time.Time, window *domain.ScheduleWindow) time.Time {
	loc := window.Location()
	cur := candidate.In(loc)
	open, ok := firstOpenHour(window.BlockedHours)

	for {
		if window.SkipWeekends && isWeekend(cur.Weekday()) {
			cur = atHour(cur.AddDate(0, 0, daysUntilMonday(cur.Weekday())), open, 0, loc)
			continue
		}
		if ok && containsHour(window.BlockedHours, cur.Hour()) {
			cur = atHour(cur.AddDate(0, 0, 1), open, 0, loc)
			continue
		}

		return cur
	}
}

// firstOpenHour 从 09:00 起顺时针找第一个未被禁止的整点。
// 全部 24 小时都被禁止时返回 9 和 false。
func firstOpenHour(blocked []int) (int, bool) {
	for i := 0; i < 24; i++ {
		h := (9 + i) % 24
		if !containsHour(blocked, h) {
			return h, true
		}
	}

	return 9, false
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func daysUntilMonday(d time.Weekday) int {
	if d == time.Sunday {
		return 1
	}

	return 8 - int(d)
}

func containsHour(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}

	return false
}

// atHour 保留日期部分，把时刻重置为指定的时和分。
func atHour(t time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)
}

// dateAfter 判断 t 的日历日期是否晚于 u 的日历日期（同一时区下比较）。
func dateAfter(t, u time.Time) bool {
	ty, tm, td := t.Date()
	uy, um, ud := u.Date()
	if ty != uy {
		return ty > uy
	}
	if tm != um {
		return tm > um
	}

	return td > ud
}
