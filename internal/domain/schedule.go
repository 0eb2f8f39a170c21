package domain

import "time"

// ScheduleWindow: 调度窗口，包含允许/禁止的小时以及周末规则
type ScheduleWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// 适合投放的小时（上午 9-11、下午 2-3、晚上 7-8），仅供参考，不做强制
	PeakHours []int `json:"peakHours"`
	// 禁止投放的小时（晚上 10 点到早上 7 点）
	BlockedHours []int `json:"blockedHours"`
	// 目标所在时区相对 UTC 的偏移，单位为分钟，解释小时规则时会应用
	TimezoneOffset int  `json:"timezoneOffset"`
	SkipWeekends   bool `json:"skipWeekends"`
}

// NewScheduleWindow 构造带默认小时规则的调度窗口
func NewScheduleWindow(start, end time.Time) *ScheduleWindow {
	return &ScheduleWindow{
		Start:          start,
		End:            end,
		PeakHours:      []int{9, 10, 11, 14, 15, 19, 20},
		BlockedHours:   []int{0, 1, 2, 3, 4, 5, 6, 22, 23},
		TimezoneOffset: 0,
		SkipWeekends:   true,
	}
}

// Location 返回窗口时区偏移对应的 time.Location
func (w *ScheduleWindow) Location() *time.Location {
	if w.TimezoneOffset == 0 {
		return time.UTC
	}
	return time.FixedZone("schedule", w.TimezoneOffset*60)
}

// ScheduledAction: 一个行动和它被安排的执行窗口，生成后不再修改
type ScheduledAction struct {
	ActionID       int64      `json:"actionID"`
	ActionType     ActionType `json:"actionType"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   time.Time  `json:"scheduledEnd"`
	Priority       int32      `json:"priority"`
	BatchID        string     `json:"batchID"`
	Notes          string     `json:"notes"`
}
