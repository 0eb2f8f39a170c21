package utils

import (
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func TestValidateScheduleWindow(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	if err := ValidateScheduleWindow(nil); err == nil {
		t.Error("空窗口应该校验失败")
	}

	window := domain.NewScheduleWindow(start, end)
	if err := ValidateScheduleWindow(window); err != nil {
		t.Errorf("默认窗口应该校验通过: %v", err)
	}

	reversed := domain.NewScheduleWindow(end, start)
	if err := ValidateScheduleWindow(reversed); err == nil {
		t.Error("开始晚于结束的窗口应该校验失败")
	}

	badHour := domain.NewScheduleWindow(start, end)
	badHour.BlockedHours = []int{25}
	if err := ValidateScheduleWindow(badHour); err == nil {
		t.Error("非法小时应该校验失败")
	}

	conflict := domain.NewScheduleWindow(start, end)
	conflict.PeakHours = []int{10}
	conflict.BlockedHours = []int{10}
	if err := ValidateScheduleWindow(conflict); err == nil {
		t.Error("适合时段与禁止时段冲突应该校验失败")
	}

	badOffset := domain.NewScheduleWindow(start, end)
	badOffset.TimezoneOffset = 15 * 60
	if err := ValidateScheduleWindow(badOffset); err == nil {
		t.Error("超出范围的时区偏移应该校验失败")
	}
}

func TestValidateEscalationLadder(t *testing.T) {
	if err := ValidateEscalationLadder(nil); err == nil {
		t.Error("空阶梯应该校验失败")
	}

	valid := []domain.Phase{
		{PhaseNumber: 1, Name: "礼貌接触", DurationWeeks: 2, WinTrigger: "收到正式回复"},
		{PhaseNumber: 2, Name: "公开施压", DurationWeeks: 4, WinTrigger: "公开承诺整改"},
	}
	if err := ValidateEscalationLadder(valid); err != nil {
		t.Errorf("合法阶梯应该校验通过: %v", err)
	}

	duplicated := []domain.Phase{
		{PhaseNumber: 1, Name: "阶段一", DurationWeeks: 2},
		{PhaseNumber: 1, Name: "阶段二", DurationWeeks: 2},
	}
	if err := ValidateEscalationLadder(duplicated); err == nil {
		t.Error("阶段编号重复应该校验失败")
	}

	noName := []domain.Phase{
		{PhaseNumber: 1, Name: "", DurationWeeks: 2},
	}
	if err := ValidateEscalationLadder(noName); err == nil {
		t.Error("缺少名称的阶段应该校验失败")
	}

	badWeeks := []domain.Phase{
		{PhaseNumber: 1, Name: "阶段一", DurationWeeks: 0},
	}
	if err := ValidateEscalationLadder(badWeeks); err == nil {
		t.Error("持续周数为零应该校验失败")
	}
}

func TestValidateCampaignDates(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 42)

	ok := &domain.Campaign{StartDate: &start, Deadline: &deadline}
	if err := ValidateCampaignDates(ok); err != nil {
		t.Errorf("合法日期应该校验通过: %v", err)
	}

	reversed := &domain.Campaign{StartDate: &deadline, Deadline: &start}
	if err := ValidateCampaignDates(reversed); err == nil {
		t.Error("开始晚于截止应该校验失败")
	}

	// 缺少任一日期时不做比较
	partial := &domain.Campaign{StartDate: &start}
	if err := ValidateCampaignDates(partial); err != nil {
		t.Errorf("缺少截止日期时应该校验通过: %v", err)
	}
}
