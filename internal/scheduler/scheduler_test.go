package scheduler

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func newTestScheduler(seed int64) *Scheduler {
	return New(rand.New(rand.NewSource(seed)))
}

func actionIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

// 2026-03-02 是周一
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestNextBusinessInstant(t *testing.T) {
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 14))

	t.Run("合法时间原样返回", func(t *testing.T) {
		candidate := time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC)
		if got := NextBusinessInstant(candidate, window); !got.Equal(candidate) {
			t.Errorf("期望原样返回 %v, 实际得到 %v", candidate, got)
		}
	})

	t.Run("周六推到下周一早上", func(t *testing.T) {
		saturday := time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC)
		want := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(saturday, window); !got.Equal(want) {
			t.Errorf("期望 %v, 实际得到 %v", want, got)
		}
	})

	t.Run("周日推到下周一早上", func(t *testing.T) {
		sunday := time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)
		want := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(sunday, window); !got.Equal(want) {
			t.Errorf("期望 %v, 实际得到 %v", want, got)
		}
	})

	t.Run("禁止时段推到次日早上", func(t *testing.T) {
		lateNight := time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC)
		want := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(lateNight, window); !got.Equal(want) {
			t.Errorf("期望 %v, 实际得到 %v", want, got)
		}
	})

	t.Run("周五深夜先跨天再跨周末", func(t *testing.T) {
		fridayNight := time.Date(2026, 3, 6, 23, 0, 0, 0, time.UTC)
		want := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(fridayNight, window); !got.Equal(want) {
			t.Errorf("期望 %v, 实际得到 %v", want, got)
		}
	})

	t.Run("不跳过周末时周末原样保留", func(t *testing.T) {
		open := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 14))
		open.SkipWeekends = false
		saturday := time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(saturday, open); !got.Equal(saturday) {
			t.Errorf("期望原样返回 %v, 实际得到 %v", saturday, got)
		}
	})

	t.Run("时区偏移按本地小时解释", func(t *testing.T) {
		shifted := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 14))
		shifted.TimezoneOffset = 8 * 60
		// UTC 01:00 在东八区是 09:00, 不在禁止时段内
		candidate := time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)
		if got := NextBusinessInstant(candidate, shifted); !got.Equal(candidate) {
			t.Errorf("期望原样返回 %v, 实际得到 %v", candidate, got)
		}
	})
}

func TestNextBusinessInstantBlockedMorning(t *testing.T) {
	// 09 点被禁止时落点顺延到下一个开放整点而不是死循环
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 14))
	window.BlockedHours = append(window.BlockedHours, 9)

	want := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	if got := NextBusinessInstant(monday, window); !got.Equal(want) {
		t.Errorf("期望 %v, 实际得到 %v", want, got)
	}
}

func TestNextBusinessInstantAllHoursBlocked(t *testing.T) {
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 14))
	window.BlockedHours = make([]int, 24)
	for h := range window.BlockedHours {
		window.BlockedHours[h] = h
	}

	// 全天禁止时无处可推, 原样返回而不是挂起
	candidate := time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC)
	if got := NextBusinessInstant(candidate, window); !got.Equal(candidate) {
		t.Errorf("期望原样返回 %v, 实际得到 %v", candidate, got)
	}
}

func TestStaggerEmails(t *testing.T) {
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 11))
	params := &StaggerParameters{PerDay: 5, IntervalMinutes: 15, JitterMinutes: 10}

	s := newTestScheduler(42)
	scheduled, err := s.StaggerEmails(actionIDs(20), window, params)
	if err != nil {
		t.Fatalf("StaggerEmails 返回错误: %v", err)
	}
	if len(scheduled) != 20 {
		t.Fatalf("期望安排 20 个行动, 实际 %d 个", len(scheduled))
	}

	byDate := make(map[string]int)
	for _, action := range scheduled {
		start := action.ScheduledStart
		if isWeekend(start.Weekday()) {
			t.Errorf("行动 %d 被安排在周末 %v", action.ActionID, start)
		}
		if start.Hour() < 9 || start.Hour() >= 18 {
			t.Errorf("行动 %d 被安排在工作时间外 %v", action.ActionID, start)
		}
		if start.Before(window.Start) || dateAfter(start, window.End) {
			t.Errorf("行动 %d 超出窗口范围 %v", action.ActionID, start)
		}
		if action.ActionType != domain.ActionEmail {
			t.Errorf("行动 %d 类型错误: %s", action.ActionID, action.ActionType)
		}
		wantBatch := "email-batch-" + start.Format(time.DateOnly)
		if action.BatchID != wantBatch {
			t.Errorf("行动 %d 批次号错误: 期望 %s, 实际 %s", action.ActionID, wantBatch, action.BatchID)
		}
		byDate[start.Format(time.DateOnly)]++
	}

	// 每天 5 封, 周一开始正好铺满周一到周四
	if len(byDate) != 4 {
		t.Errorf("期望分布在 4 个工作日, 实际 %d 个: %v", len(byDate), byDate)
	}
	for date, n := range byDate {
		if n != 5 {
			t.Errorf("日期 %s 期望 5 封, 实际 %d 封", date, n)
		}
	}

	// 同一天内时间严格递增
	for i := 1; i < len(scheduled); i++ {
		prev, cur := scheduled[i-1], scheduled[i]
		sameDay := prev.ScheduledStart.Format(time.DateOnly) == cur.ScheduledStart.Format(time.DateOnly)
		if sameDay && !cur.ScheduledStart.After(prev.ScheduledStart) {
			t.Errorf("同日行动时间未递增: %v 之后是 %v", prev.ScheduledStart, cur.ScheduledStart)
		}
	}

	// 优先级随批次递减
	if scheduled[0].Priority != 5 {
		t.Errorf("首日优先级期望 5, 实际 %d", scheduled[0].Priority)
	}
	if scheduled[19].Priority != 2 {
		t.Errorf("第四天优先级期望 2, 实际 %d", scheduled[19].Priority)
	}
}

func TestStaggerEmailsWindowTooSmall(t *testing.T) {
	// 窗口只有两个工作日, 装不下的行动直接放弃而不是越界
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 1).Add(9*time.Hour))
	params := &StaggerParameters{PerDay: 3, IntervalMinutes: 30, JitterMinutes: 0}

	s := newTestScheduler(1)
	scheduled, err := s.StaggerEmails(actionIDs(20), window, params)
	if err != nil {
		t.Fatalf("StaggerEmails 返回错误: %v", err)
	}
	if len(scheduled) != 6 {
		t.Errorf("两个工作日每天 3 封, 期望 6 个, 实际 %d 个", len(scheduled))
	}
	for _, action := range scheduled {
		if dateAfter(action.ScheduledStart, window.End) {
			t.Errorf("行动 %d 越过窗口结束日期: %v", action.ActionID, action.ScheduledStart)
		}
	}
}

func TestStaggerEmailsAvoidsBlockedHours(t *testing.T) {
	// 工作时间中段被禁止时, 间隔推进不得把邮件落进禁止时段
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 11))
	window.BlockedHours = append(window.BlockedHours, 11)
	params := &StaggerParameters{PerDay: 10, IntervalMinutes: 60, JitterMinutes: 0}

	s := newTestScheduler(42)
	scheduled, err := s.StaggerEmails(actionIDs(10), window, params)
	if err != nil {
		t.Fatalf("StaggerEmails 返回错误: %v", err)
	}
	if len(scheduled) != 10 {
		t.Fatalf("期望安排 10 个行动, 实际 %d 个", len(scheduled))
	}

	for _, action := range scheduled {
		start := action.ScheduledStart
		if containsHour(window.BlockedHours, start.Hour()) {
			t.Errorf("行动 %d 落在禁止时段 %d 点: %v", action.ActionID, start.Hour(), start)
		}
		if isWeekend(start.Weekday()) {
			t.Errorf("行动 %d 被安排在周末 %v", action.ActionID, start)
		}
	}

	// 每天 09/10 两封后撞上 11 点滚动到次日, 游标跨天时当日计数同步清零
	byDate := make(map[string]int)
	for _, action := range scheduled {
		byDate[action.ScheduledStart.Format(time.DateOnly)]++
	}
	for date, n := range byDate {
		if n != 2 {
			t.Errorf("日期 %s 期望 2 封, 实际 %d 封", date, n)
		}
	}
}

func TestStaggerEmailsDeterministic(t *testing.T) {
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 11))
	params := &StaggerParameters{PerDay: 4, IntervalMinutes: 20, JitterMinutes: 15}

	first, err := newTestScheduler(7).StaggerEmails(actionIDs(12), window, params)
	if err != nil {
		t.Fatalf("第一次调用返回错误: %v", err)
	}
	second, err := newTestScheduler(7).StaggerEmails(actionIDs(12), window, params)
	if err != nil {
		t.Fatalf("第二次调用返回错误: %v", err)
	}

	for i := range first {
		if !first[i].ScheduledStart.Equal(second[i].ScheduledStart) {
			t.Errorf("相同种子结果不一致: %v != %v", first[i].ScheduledStart, second[i].ScheduledStart)
		}
	}
}

func TestStaggerEmailsInvalidInput(t *testing.T) {
	s := newTestScheduler(1)
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 7))

	if _, err := s.StaggerEmails(actionIDs(5), window, &StaggerParameters{PerDay: 0, IntervalMinutes: 15}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("每日上限为零期望 ErrInvalidParameter, 实际 %v", err)
	}
	if _, err := s.StaggerEmails(actionIDs(5), window, &StaggerParameters{PerDay: 5, IntervalMinutes: -1}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("负数间隔期望 ErrInvalidParameter, 实际 %v", err)
	}

	reversed := domain.NewScheduleWindow(monday.AddDate(0, 0, 7), monday)
	if _, err := s.StaggerEmails(actionIDs(5), reversed, &StaggerParameters{PerDay: 5, IntervalMinutes: 15}); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("起止颠倒期望 ErrInvalidWindow, 实际 %v", err)
	}

	blocked := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 7))
	blocked.BlockedHours = append(blocked.BlockedHours, 9)
	if _, err := s.StaggerEmails(actionIDs(5), blocked, &StaggerParameters{PerDay: 5, IntervalMinutes: 15}); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("禁止 09 点期望 ErrInvalidWindow, 实际 %v", err)
	}
}

func TestStaggerEmailsEmpty(t *testing.T) {
	s := newTestScheduler(1)
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 7))
	scheduled, err := s.StaggerEmails(nil, window, &StaggerParameters{PerDay: 5, IntervalMinutes: 15})
	if err != nil {
		t.Fatalf("空输入返回错误: %v", err)
	}
	if len(scheduled) != 0 {
		t.Errorf("空输入期望空结果, 实际 %d 个", len(scheduled))
	}
}

func TestSocialBurst(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s := newTestScheduler(1)
	scheduled, err := s.SocialBurst(actionIDs(5), anchor, 30, PlatformTwitter)
	if err != nil {
		t.Fatalf("SocialBurst 返回错误: %v", err)
	}
	if len(scheduled) != 5 {
		t.Fatalf("期望 5 个行动, 实际 %d 个", len(scheduled))
	}

	burstStart := anchor.Add(-30 * time.Minute)
	burstEnd := burstStart.Add(10 * time.Minute) // twitter 的爆发窗口是 10 分钟
	for i, action := range scheduled {
		if action.ScheduledStart.Before(burstStart) || !action.ScheduledStart.Before(burstEnd) {
			t.Errorf("第 %d 帖超出爆发窗口: %v", i, action.ScheduledStart)
		}
		if action.Priority != 1 {
			t.Errorf("第 %d 帖优先级期望 1, 实际 %d", i, action.Priority)
		}
		if action.BatchID != scheduled[0].BatchID {
			t.Errorf("第 %d 帖批次号不一致: %s != %s", i, action.BatchID, scheduled[0].BatchID)
		}
		if action.ActionType != domain.ActionSocialPost {
			t.Errorf("第 %d 帖类型错误: %s", i, action.ActionType)
		}
	}

	// 等间隔: 10 分钟窗口 5 帖, 每 2 分钟一帖
	for i := 1; i < len(scheduled); i++ {
		gap := scheduled[i].ScheduledStart.Sub(scheduled[i-1].ScheduledStart)
		if gap != 2*time.Minute {
			t.Errorf("第 %d 帖间隔期望 2 分钟, 实际 %v", i, gap)
		}
	}
}

func TestSocialBurstUnknownPlatform(t *testing.T) {
	s := newTestScheduler(1)
	anchor := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	scheduled, err := s.SocialBurst(actionIDs(3), anchor, 0, Platform("mastodon"))
	if err != nil {
		t.Fatalf("SocialBurst 返回错误: %v", err)
	}
	// 未知平台按 15 分钟窗口处理
	last := scheduled[len(scheduled)-1].ScheduledStart
	if !last.Before(anchor.Add(15 * time.Minute)) {
		t.Errorf("未知平台应落在 15 分钟窗口内, 实际 %v", last)
	}
}

func TestSocialBurstInvalidInput(t *testing.T) {
	s := newTestScheduler(1)
	anchor := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, err := s.SocialBurst(actionIDs(3), anchor, -5, PlatformTwitter); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("负数提前量期望 ErrInvalidParameter, 实际 %v", err)
	}

	scheduled, err := s.SocialBurst(nil, anchor, 30, PlatformTwitter)
	if err != nil {
		t.Fatalf("空输入返回错误: %v", err)
	}
	if len(scheduled) != 0 {
		t.Errorf("空输入期望空结果, 实际 %d 个", len(scheduled))
	}
}

func TestPhoneBank(t *testing.T) {
	// 周五 16:30 开始, 当天只装得下两通, 其余顺延到下周一
	friday := time.Date(2026, 3, 6, 16, 30, 0, 0, time.UTC)
	window := domain.NewScheduleWindow(friday, friday.AddDate(0, 0, 10))

	s := newTestScheduler(1)
	scheduled, err := s.PhoneBank(actionIDs(10), window, 4)
	if err != nil {
		t.Fatalf("PhoneBank 返回错误: %v", err)
	}
	if len(scheduled) != 10 {
		t.Fatalf("期望 10 通电话, 实际 %d 通", len(scheduled))
	}

	for _, action := range scheduled {
		start := action.ScheduledStart
		if start.Hour() < 9 || start.Hour() >= 17 {
			t.Errorf("电话 %d 在办公时间外: %v", action.ActionID, start)
		}
		if isWeekend(start.Weekday()) {
			t.Errorf("电话 %d 在周末: %v", action.ActionID, start)
		}
		if action.ActionType != domain.ActionPhoneCall {
			t.Errorf("电话 %d 类型错误: %s", action.ActionID, action.ActionType)
		}
		if action.Priority != 2 {
			t.Errorf("电话 %d 优先级期望 2, 实际 %d", action.ActionID, action.Priority)
		}
	}

	byDate := make(map[string]int)
	for _, action := range scheduled {
		byDate[action.ScheduledStart.Format(time.DateOnly)]++
	}
	if byDate["2026-03-06"] != 2 {
		t.Errorf("周五期望 2 通, 实际 %d 通", byDate["2026-03-06"])
	}
	if byDate["2026-03-09"] != 8 {
		t.Errorf("下周一期望 8 通, 实际 %d 通", byDate["2026-03-09"])
	}
}

func TestPhoneBankInvalidInput(t *testing.T) {
	s := newTestScheduler(1)
	window := domain.NewScheduleWindow(monday, monday.AddDate(0, 0, 7))
	if _, err := s.PhoneBank(actionIDs(5), window, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("每小时呼叫数为零期望 ErrInvalidParameter, 实际 %v", err)
	}
}

func TestCommentRamp(t *testing.T) {
	deadline := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	s := newTestScheduler(42)
	scheduled, err := s.CommentRamp(actionIDs(30), deadline, 14)
	if err != nil {
		t.Fatalf("CommentRamp 返回错误: %v", err)
	}
	if len(scheduled) != 30 {
		t.Fatalf("期望 30 条评论, 实际 %d 条", len(scheduled))
	}

	byBatch := make(map[string]int)
	for _, action := range scheduled {
		byBatch[action.BatchID]++
		if !action.ScheduledStart.Before(deadline) {
			t.Errorf("评论 %d 不早于截止时间: %v", action.ActionID, action.ScheduledStart)
		}
		if action.ActionType != domain.ActionPublicComment {
			t.Errorf("评论 %d 类型错误: %s", action.ActionID, action.ActionType)
		}
	}

	// 30 条按 20/20/60 分成 6/6/18
	if byBatch["comment-early"] != 6 {
		t.Errorf("早期梯队期望 6 条, 实际 %d 条", byBatch["comment-early"])
	}
	if byBatch["comment-middle"] != 6 {
		t.Errorf("中期梯队期望 6 条, 实际 %d 条", byBatch["comment-middle"])
	}
	if byBatch["comment-rampup"] != 18 {
		t.Errorf("冲刺梯队期望 18 条, 实际 %d 条", byBatch["comment-rampup"])
	}

	// 冲刺梯队的日期随序号单调不减, 且越靠后越密
	var rampDates []string
	for _, action := range scheduled {
		if action.BatchID == "comment-rampup" {
			rampDates = append(rampDates, action.ScheduledStart.Format(time.DateOnly))
		}
	}
	for i := 1; i < len(rampDates); i++ {
		if rampDates[i] < rampDates[i-1] {
			t.Errorf("冲刺日期未单调递增: %s 之后是 %s", rampDates[i-1], rampDates[i])
		}
	}

	// 二次曲线: 首尾两端落点固定, 冲刺窗口第一天堆积最多
	if rampDates[0] != "2026-04-01" {
		t.Errorf("冲刺首条应落在窗口起点, 实际 %s", rampDates[0])
	}
	if rampDates[len(rampDates)-1] != "2026-04-14" {
		t.Errorf("冲刺末条应落在截止前一天, 实际 %s", rampDates[len(rampDates)-1])
	}
	perDate := make(map[string]int)
	for _, date := range rampDates {
		perDate[date]++
	}
	if perDate["2026-04-01"] < perDate["2026-04-14"] {
		t.Errorf("二次曲线下窗口起点的堆积不应少于末端: %v", perDate)
	}
}

func TestCommentRampSmallCounts(t *testing.T) {
	deadline := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(1)

	for _, total := range []int{1, 2, 3} {
		scheduled, err := s.CommentRamp(actionIDs(total), deadline, 14)
		if err != nil {
			t.Fatalf("总数 %d 返回错误: %v", total, err)
		}
		if len(scheduled) != total {
			t.Errorf("总数 %d 期望全部安排, 实际 %d 条", total, len(scheduled))
		}
		for _, action := range scheduled {
			if !action.ScheduledStart.Before(deadline) {
				t.Errorf("总数 %d 时评论 %d 不早于截止时间", total, action.ActionID)
			}
		}
	}
}

func TestCommentRampInvalidInput(t *testing.T) {
	deadline := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(1)
	if _, err := s.CommentRamp(actionIDs(5), deadline, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("冲刺天数为零期望 ErrInvalidParameter, 实际 %v", err)
	}
}

func TestEscalationSequence(t *testing.T) {
	phases := []domain.Phase{
		{PhaseNumber: 2, Name: "公开施压", DurationWeeks: 4},
		{PhaseNumber: 1, Name: "书面交涉", DurationWeeks: 2},
	}
	actionsByPhase := map[int32][]int64{
		1: actionIDs(5),
		2: {100, 101, 102, 103, 104, 105, 106, 107, 108, 109},
	}

	s := newTestScheduler(42)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	scheduled, err := s.EscalationSequence(phases, start, actionsByPhase)
	if err != nil {
		t.Fatalf("EscalationSequence 返回错误: %v", err)
	}
	if len(scheduled) != 15 {
		t.Fatalf("期望 15 个行动, 实际 %d 个", len(scheduled))
	}

	var phase1Last, phase2First time.Time
	for _, action := range scheduled {
		if isWeekend(action.ScheduledStart.Weekday()) {
			t.Errorf("行动 %d 在周末: %v", action.ActionID, action.ScheduledStart)
		}
		switch action.Priority {
		case 1:
			if action.ScheduledStart.After(phase1Last) {
				phase1Last = action.ScheduledStart
			}
		case 2:
			if phase2First.IsZero() || action.ScheduledStart.Before(phase2First) {
				phase2First = action.ScheduledStart
			}
		default:
			t.Errorf("行动 %d 优先级应等于阶段编号, 实际 %d", action.ActionID, action.Priority)
		}
	}

	// 阶段一的所有行动都在阶段二之前
	if !phase1Last.Before(phase2First) {
		t.Errorf("阶段顺序被破坏: 阶段一最晚 %v, 阶段二最早 %v", phase1Last, phase2First)
	}

	// 阶段一必须在自己的两周内完成
	phase1End := start.AddDate(0, 0, 14)
	if !phase1Last.Before(phase1End) {
		t.Errorf("阶段一越过自己的时间段: %v", phase1Last)
	}
}

func TestEscalationSequenceEmptyPhaseConsumesTime(t *testing.T) {
	phases := []domain.Phase{
		{PhaseNumber: 1, Name: "谈判窗口", DurationWeeks: 2},
		{PhaseNumber: 2, Name: "公开施压", DurationWeeks: 2},
	}
	actionsByPhase := map[int32][]int64{2: actionIDs(3)}

	s := newTestScheduler(1)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	scheduled, err := s.EscalationSequence(phases, start, actionsByPhase)
	if err != nil {
		t.Fatalf("EscalationSequence 返回错误: %v", err)
	}

	// 阶段一没有行动但仍占满两周, 阶段二的行动不得早于第三周
	phase2Start := start.AddDate(0, 0, 14)
	for _, action := range scheduled {
		if action.ScheduledStart.Before(phase2Start) {
			t.Errorf("行动 %d 侵入了空阶段的时间段: %v", action.ActionID, action.ScheduledStart)
		}
	}
}

func TestEscalationSequenceInvalidPhase(t *testing.T) {
	phases := []domain.Phase{{PhaseNumber: 1, Name: "无效阶段", DurationWeeks: 0}}
	s := newTestScheduler(1)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := s.EscalationSequence(phases, start, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("零周阶段期望 ErrInvalidParameter, 实际 %v", err)
	}
}

func TestSummarize(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	actions := []*domain.ScheduledAction{
		{ActionID: 1, ActionType: domain.ActionEmail, ScheduledStart: day1, BatchID: "email-batch-2026-03-02"},
		{ActionID: 2, ActionType: domain.ActionEmail, ScheduledStart: day1.Add(time.Hour), BatchID: "email-batch-2026-03-02"},
		{ActionID: 3, ActionType: domain.ActionPhoneCall, ScheduledStart: day2, BatchID: "calls-2026-03-03"},
	}

	summary := Summarize(actions)
	if summary.Total != 3 {
		t.Errorf("总数期望 3, 实际 %d", summary.Total)
	}
	if summary.ByDate["2026-03-02"] != 2 || summary.ByDate["2026-03-03"] != 1 {
		t.Errorf("按日期统计错误: %v", summary.ByDate)
	}
	if summary.ByType[domain.ActionEmail] != 2 {
		t.Errorf("按类型统计错误: %v", summary.ByType)
	}
	if summary.ByBatch["email-batch-2026-03-02"] != 2 {
		t.Errorf("按批次统计错误: %v", summary.ByBatch)
	}
	if summary.PeakDate != "2026-03-02" || summary.PeakCount != 2 {
		t.Errorf("峰值期望 2026-03-02/2, 实际 %s/%d", summary.PeakDate, summary.PeakCount)
	}
	if summary.DurationDays != 2 {
		t.Errorf("持续天数期望 2, 实际 %d", summary.DurationDays)
	}
	if summary.Start == nil || !summary.Start.Equal(day1) {
		t.Errorf("开始时间错误: %v", summary.Start)
	}
}

func TestSummarizePeakTieBreak(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	actions := []*domain.ScheduledAction{
		{ActionID: 1, ActionType: domain.ActionEmail, ScheduledStart: day2, BatchID: "b"},
		{ActionID: 2, ActionType: domain.ActionEmail, ScheduledStart: day1, BatchID: "a"},
	}

	summary := Summarize(actions)
	if summary.PeakDate != "2026-03-02" {
		t.Errorf("数量相同时峰值应取最早日期, 实际 %s", summary.PeakDate)
	}
}

func TestSummarizeSameDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	actions := []*domain.ScheduledAction{
		{ActionID: 1, ActionType: domain.ActionEmail, ScheduledStart: day, BatchID: "b"},
		{ActionID: 2, ActionType: domain.ActionEmail, ScheduledStart: day.Add(2 * time.Hour), BatchID: "b"},
	}

	// 首尾同日按含两端的约定计为 1 天
	if summary := Summarize(actions); summary.DurationDays != 1 {
		t.Errorf("单日排期持续天数期望 1, 实际 %d", summary.DurationDays)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 {
		t.Errorf("空排期总数期望 0, 实际 %d", summary.Total)
	}
	if summary.PeakDate != "" || summary.PeakCount != 0 {
		t.Errorf("空排期不应有峰值: %s/%d", summary.PeakDate, summary.PeakCount)
	}
	if summary.Start != nil || summary.End != nil {
		t.Errorf("空排期不应有起止时间")
	}
}
