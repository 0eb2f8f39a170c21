package scheduler

import (
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// ScheduleSummary 是一份排期的聚合视图，供仪表盘和 CLI 展示。
// DurationDays 为含首尾两端的持续天数，首尾行动落在同一天时计为 1。
type ScheduleSummary struct {
	Total        int                       `json:"total"`
	Start        *time.Time                `json:"start,omitempty"`
	End          *time.Time                `json:"end,omitempty"`
	DurationDays int                       `json:"duration_days"`
	ByDate       map[string]int            `json:"by_date"`
	ByType       map[domain.ActionType]int `json:"by_type"`
	ByBatch      map[string]int            `json:"by_batch"`
	PeakDate     string                    `json:"peak_date,omitempty"`
	PeakCount    int                       `json:"peak_count"`
}

// Summarize 统计一份排期按日期、类型和批次的分布，并找出最繁忙的一天。
// 峰值日期按数量取最大，数量相同时取最早的日期，结果是确定性的。
func Summarize(actions []*domain.ScheduledAction) *ScheduleSummary {
	summary := &ScheduleSummary{
		ByDate:  make(map[string]int),
		ByType:  make(map[domain.ActionType]int),
		ByBatch: make(map[string]int),
	}
	if len(actions) == 0 {
		return summary
	}

	first := actions[0].ScheduledStart
	last := actions[0].ScheduledStart
	for _, action := range actions {
		summary.ByDate[action.ScheduledStart.Format(time.DateOnly)]++
		summary.ByType[action.ActionType]++
		summary.ByBatch[action.BatchID]++

		if action.ScheduledStart.Before(first) {
			first = action.ScheduledStart
		}
		if action.ScheduledStart.After(last) {
			last = action.ScheduledStart
		}
	}

	summary.Total = len(actions)
	summary.Start = &first
	summary.End = &last
	summary.DurationDays = int(last.Sub(first).Hours()/24) + 1

	dates := make([]string, 0, len(summary.ByDate))
	for date := range summary.ByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		if summary.ByDate[date] > summary.PeakCount {
			summary.PeakDate = date
			summary.PeakCount = summary.ByDate[date]
		}
	}

	return summary
}
