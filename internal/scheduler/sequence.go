package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// EscalationSequence 按阶段编号升序把行动排进各自阶段的时间段里，
// 前一阶段的所有行动都不晚于后一阶段的任何行动，保证升级阶梯的先后秩序。
// 阶段内的行动均匀铺在工作日上，每天的时刻从 09:00 起逐小时错开；
// 没有行动的阶段照常消耗自己的周数，留给谈判或观察对方反应。
func (s *Scheduler) EscalationSequence(phases []domain.Phase, campaignStart time.Time, actionsByPhase map[int32][]int64) ([]*domain.ScheduledAction, error) {
	ordered := make([]domain.Phase, len(phases))
	copy(ordered, phases)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PhaseNumber < ordered[j].PhaseNumber
	})

	for _, phase := range ordered {
		if phase.DurationWeeks <= 0 {
			return nil, fmt.Errorf("%w: 阶段 %d 的持续周数必须为正数", ErrInvalidParameter, phase.PhaseNumber)
		}
	}

	loc := campaignStart.Location()
	scheduled := make([]*domain.ScheduledAction, 0)
	phaseStart := campaignStart

	for _, phase := range ordered {
		daysInPhase := int(phase.DurationWeeks) * 7
		phaseEnd := phaseStart.AddDate(0, 0, daysInPhase)

		actionIDs := actionsByPhase[phase.PhaseNumber]
		if len(actionIDs) == 0 {
			phaseStart = phaseEnd
			continue
		}

		businessDays := 0
		for d := 0; d < daysInPhase; d++ {
			if !isWeekend(phaseStart.AddDate(0, 0, d).Weekday()) {
				businessDays++
			}
		}
		if businessDays == 0 {
			businessDays = 1
		}
		perDay := max(1, len(actionIDs)/businessDays)

		idx := 0
		seenBusinessDays := 0
		for d := 0; d < daysInPhase && idx < len(actionIDs); d++ {
			day := phaseStart.AddDate(0, 0, d)
			if isWeekend(day.Weekday()) {
				continue
			}
			seenBusinessDays++

			take := perDay
			// 最后一个工作日吞下余数，保证阶段内的行动一个都不丢。
			if seenBusinessDays == businessDays {
				take = len(actionIDs) - idx
			}
			if idx+take > len(actionIDs) {
				take = len(actionIDs) - idx
			}

			for j := 0; j < take; j++ {
				at := atHour(day, 9+j%8, s.rng.Intn(60), loc)
				scheduled = append(scheduled, &domain.ScheduledAction{
					ActionID:       actionIDs[idx+j],
					ActionType:     domain.ActionMixed,
					ScheduledStart: at,
					ScheduledEnd:   at.Add(2 * time.Hour),
					Priority:       phase.PhaseNumber,
					BatchID:        fmt.Sprintf("phase-%d-%s", phase.PhaseNumber, day.Format(time.DateOnly)),
					Notes:          fmt.Sprintf("第 %d 阶段：%s", phase.PhaseNumber, phase.Name),
				})
			}
			idx += take
		}

		phaseStart = phaseEnd
	}

	return scheduled, nil
}
