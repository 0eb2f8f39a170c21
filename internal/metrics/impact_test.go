package metrics

import (
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func makeAction(actionType domain.ActionType, status domain.ActionStatus, minutes int32, completedAt *time.Time) *domain.Action {
	return &domain.Action{
		ActionType:       actionType,
		Status:           status,
		EstimatedMinutes: minutes,
		CompletedAt:      completedAt,
	}
}

func at(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeCampaignMetrics(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	campaign := &domain.Campaign{ID: 1, Name: "拯救蛋鸡", StartDate: &start}

	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	overdueComment := makeAction(domain.ActionPublicComment, domain.ActionAvailable, 30, nil)
	overdueComment.Deadline = &deadline

	actions := []*domain.Action{
		makeAction(domain.ActionEmail, domain.ActionCompleted, 15, at(2026, 3, 3)),
		makeAction(domain.ActionEmail, domain.ActionCompleted, 15, at(2026, 3, 10)),
		makeAction(domain.ActionEmail, domain.ActionVerified, 15, at(2026, 3, 11)),
		makeAction(domain.ActionEmail, domain.ActionAvailable, 15, nil),
		makeAction(domain.ActionPhoneCall, domain.ActionCompleted, 6, at(2026, 3, 4)),
		makeAction(domain.ActionPhoneCall, domain.ActionCompleted, 6, at(2026, 3, 12)),
		overdueComment,
	}

	metrics := ComputeCampaignMetrics(campaign, actions, now)

	if metrics.Summary.TotalActions != 7 || metrics.Summary.Completed != 5 || metrics.Summary.Verified != 1 {
		t.Fatalf("汇总计数不正确: %+v", metrics.Summary)
	}
	if metrics.Summary.Overdue != 1 {
		t.Errorf("逾期行动数应为 1, 实际为 %d", metrics.Summary.Overdue)
	}
	if metrics.Summary.CompletionRate != 71.4 {
		t.Errorf("完成率应为 71.4, 实际为 %v", metrics.Summary.CompletionRate)
	}
	if metrics.Summary.VerificationRate != 20.0 {
		t.Errorf("核验率应为 20.0, 实际为 %v", metrics.Summary.VerificationRate)
	}

	if metrics.ActivityCounts.EmailsSent != 3 || metrics.ActivityCounts.CallsMade != 2 {
		t.Errorf("行动计数不正确: %+v", metrics.ActivityCounts)
	}

	// 3 封邮件 ×1.0 + 2 通电话 ×3.0
	if metrics.Impact.TotalImpactScore != 9.0 {
		t.Errorf("总影响力应为 9.0, 实际为 %v", metrics.Impact.TotalImpactScore)
	}
	if metrics.Impact.ImpactPerAction != 1.8 {
		t.Errorf("单行动影响力应为 1.8, 实际为 %v", metrics.Impact.ImpactPerAction)
	}
	// 4 周完成 5 个
	if metrics.Impact.VelocityPerWeek != 1.3 {
		t.Errorf("每周速度应为 1.3, 实际为 %v", metrics.Impact.VelocityPerWeek)
	}

	if len(metrics.Channels.Active) != 2 || metrics.Channels.Active[0] != domain.ChannelEmail || metrics.Channels.Active[1] != domain.ChannelPhone {
		t.Errorf("激活渠道不正确: %v", metrics.Channels.Active)
	}
	if metrics.Channels.TotalPossible != 9 {
		t.Errorf("可覆盖渠道总数应为 9, 实际为 %d", metrics.Channels.TotalPossible)
	}

	emailStats := metrics.TypeBreakdown[domain.ActionEmail]
	if emailStats == nil || emailStats.Total != 4 || emailStats.Completed != 3 || emailStats.CompletionRate != 75.0 {
		t.Errorf("邮件类型统计不正确: %+v", emailStats)
	}

	if len(metrics.WeeklyTimeline) != 2 {
		t.Fatalf("时间线应有 2 周, 实际为 %d", len(metrics.WeeklyTimeline))
	}
	if metrics.WeeklyTimeline[0].Week != "2026-03-02" || metrics.WeeklyTimeline[0].ActionsCompleted != 2 {
		t.Errorf("第一周统计不正确: %+v", metrics.WeeklyTimeline[0])
	}
	if metrics.WeeklyTimeline[1].Week != "2026-03-09" || metrics.WeeklyTimeline[1].ActionsCompleted != 3 {
		t.Errorf("第二周统计不正确: %+v", metrics.WeeklyTimeline[1])
	}
}

func TestComputeCampaignMetricsEmpty(t *testing.T) {
	campaign := &domain.Campaign{ID: 2, Name: "空运动"}
	metrics := ComputeCampaignMetrics(campaign, nil, time.Now())

	if metrics.Summary.TotalActions != 0 || metrics.Summary.CompletionRate != 0 {
		t.Errorf("空运动的汇总应全为零: %+v", metrics.Summary)
	}
	if metrics.TypeBreakdown == nil || metrics.WeeklyTimeline == nil {
		t.Error("空运动的映射与时间线也应初始化")
	}
}

func TestCompareCampaigns(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	weak := &domain.Campaign{ID: 1, Name: "弱势运动"}
	strong := &domain.Campaign{ID: 2, Name: "强势运动"}

	results := CompareCampaigns(map[*domain.Campaign][]*domain.Action{
		weak: {
			makeAction(domain.ActionEmail, domain.ActionCompleted, 15, at(2026, 3, 3)),
		},
		strong: {
			makeAction(domain.ActionTestimony, domain.ActionCompleted, 120, at(2026, 3, 3)),
			makeAction(domain.ActionFOIARequest, domain.ActionCompleted, 120, at(2026, 3, 4)),
		},
	}, now)

	if len(results) != 2 {
		t.Fatalf("应返回 2 个运动, 实际为 %d", len(results))
	}
	if results[0].CampaignID != 2 {
		t.Errorf("影响力高的运动应排在前面, 实际首位为 %d", results[0].CampaignID)
	}
}

func TestMediaCoverageScore(t *testing.T) {
	coverage := MediaCoverageScore([]MediaMention{
		{Outlet: "央视", Tier: TierNational, Sentiment: "positive"},
		{Outlet: "本地晚报", Tier: TierLocal, Sentiment: "neutral"},
		{Outlet: "个人博客", Tier: TierBlog, Sentiment: "negative"},
		{Outlet: "未知来源", Tier: MediaTier(9), Sentiment: "positive"},
	})

	if coverage.TotalMentions != 4 {
		t.Errorf("提及总数应为 4, 实际为 %d", coverage.TotalMentions)
	}
	// 10×1.5 + 3×1.0 + 1×0.3 + 1×1.5
	if coverage.MediaImpactScore != 19.8 {
		t.Errorf("声量得分应为 19.8, 实际为 %v", coverage.MediaImpactScore)
	}
	if coverage.ByTier["national"] != 1 || coverage.ByTier["local"] != 1 || coverage.ByTier["blog"] != 2 {
		t.Errorf("层级计数不正确: %v", coverage.ByTier)
	}
	if coverage.ByTier["regional"] != 0 || coverage.ByTier["trade"] != 0 {
		t.Errorf("未出现的层级也应有零值条目: %v", coverage.ByTier)
	}
}

func TestMediaCoverageScoreEmpty(t *testing.T) {
	coverage := MediaCoverageScore(nil)
	if coverage.TotalMentions != 0 || coverage.MediaImpactScore != 0 {
		t.Errorf("无提及时得分应为零: %+v", coverage)
	}
	if len(coverage.ByTier) != 5 {
		t.Errorf("ByTier 应预置全部 5 个层级: %v", coverage.ByTier)
	}
}

func TestTrackResponses(t *testing.T) {
	t.Run("无回应", func(t *testing.T) {
		analysis := TrackResponses(nil)
		if analysis.Trajectory != "none" || analysis.TotalResponses != 0 {
			t.Errorf("无回应时的分析不正确: %+v", analysis)
		}
	})

	t.Run("单次回应", func(t *testing.T) {
		analysis := TrackResponses([]TargetResponse{
			{Date: "2026-03-05", Type: ResponseFormLetter},
		})
		if analysis.Trajectory != "insufficient_data" {
			t.Errorf("单次回应无法判断走向, 实际为 %s", analysis.Trajectory)
		}
		if analysis.EngagementScore != 1.0 || analysis.BestResponse != 1 {
			t.Errorf("单次回应的得分不正确: %+v", analysis)
		}
	})

	t.Run("回应在升级", func(t *testing.T) {
		analysis := TrackResponses([]TargetResponse{
			{Date: "2026-03-05", Type: ResponseFormLetter},
			{Date: "2026-03-20", Type: ResponseMeetingOffer},
			{Date: "2026-04-10", Type: ResponseFullCommitment},
		})
		if analysis.Trajectory != "improving" {
			t.Errorf("回应在变好, 走向应为 improving, 实际为 %s", analysis.Trajectory)
		}
		if analysis.BestResponse != 8 || analysis.EngagementScore != 4.0 {
			t.Errorf("回应得分不正确: %+v", analysis)
		}
		if analysis.LatestResponseType != ResponseFullCommitment {
			t.Errorf("最新回应类型不正确: %s", analysis.LatestResponseType)
		}
	})

	t.Run("回应在降级", func(t *testing.T) {
		analysis := TrackResponses([]TargetResponse{
			{Date: "2026-03-05", Type: ResponseMeetingOffer},
			{Date: "2026-04-10", Type: ResponseNone},
		})
		if analysis.Trajectory != "degrading" {
			t.Errorf("回应在变差, 走向应为 degrading, 实际为 %s", analysis.Trajectory)
		}
	})
}
