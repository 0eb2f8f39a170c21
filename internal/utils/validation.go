package utils

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// ValidateScheduleWindow 检查调度窗口的时间范围和小时规则是否自洽
func ValidateScheduleWindow(window *domain.ScheduleWindow) error {
	if window == nil {
		return errors.New("调度窗口不能为空")
	}

	if window.Start.After(window.End) {
		return errors.New("窗口开始时间不能晚于结束时间")
	}

	for _, hour := range window.BlockedHours {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("禁止时段 %d 不是合法的小时", hour)
		}
	}
	for _, hour := range window.PeakHours {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("适合时段 %d 不是合法的小时", hour)
		}
		if slices.Contains(window.BlockedHours, hour) {
			return fmt.Errorf("%d 点既是适合时段又是禁止时段", hour)
		}
	}

	// 时区偏移限制在 UTC-12 到 UTC+14 之间
	if window.TimezoneOffset < -12*60 || window.TimezoneOffset > 14*60 {
		return fmt.Errorf("时区偏移 %d 分钟超出合法范围", window.TimezoneOffset)
	}

	return nil
}

// ValidateEscalationLadder 检查升级阶梯的阶段编号和时长
func ValidateEscalationLadder(phases []domain.Phase) error {
	if len(phases) == 0 {
		return errors.New("升级阶梯至少需要一个阶段")
	}

	seen := make(map[int32]bool)
	for _, phase := range phases {
		if phase.PhaseNumber <= 0 {
			return fmt.Errorf("阶段编号 %d 必须为正数", phase.PhaseNumber)
		}
		if seen[phase.PhaseNumber] {
			return fmt.Errorf("阶段编号 %d 重复", phase.PhaseNumber)
		}
		seen[phase.PhaseNumber] = true

		if phase.DurationWeeks <= 0 {
			return fmt.Errorf("第 %d 阶段的持续周数必须为正数", phase.PhaseNumber)
		}
		if phase.Name == "" {
			return fmt.Errorf("第 %d 阶段缺少名称", phase.PhaseNumber)
		}
	}

	return nil
}

// ValidateCampaignDates 检查运动的开始时间与截止时间
func ValidateCampaignDates(campaign *domain.Campaign) error {
	if campaign.StartDate != nil && campaign.Deadline != nil && campaign.StartDate.After(*campaign.Deadline) {
		return errors.New("运动开始时间不能晚于截止时间")
	}

	return nil
}
