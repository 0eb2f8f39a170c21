package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/planner"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/scheduler"
)

// demoCampaigns 是演示环境用的运动样例，覆盖几种常见的运动类型
var demoCampaigns = []struct {
	Name          string
	Type          domain.CampaignType
	TargetSummary string
	Goal          string
}{
	{
		Name:          "阳光食品供应链改善运动",
		Type:          domain.CampaignCorporate,
		TargetSummary: "阳光食品集团及其华东区供应链",
		Goal:          "推动其公开供应链审计报告并承诺两年内完成整改",
	},
	{
		Name:          "清水河排污举报运动",
		Type:          domain.CampaignRegulatory,
		TargetSummary: "清水河沿岸三家加工厂",
		Goal:          "推动监管机构对连续超标排放立案调查",
	},
	{
		Name:          "养殖场透明度调查",
		Type:          domain.CampaignInvestigation,
		TargetSummary: "华北地区大型集约化养殖场",
		Goal:          "完成公开情报汇编并发布调查报告",
	},
}

func stringPtr(s string) *string { return &s }

// demoTargets 为示例运动配套的施压目标
func demoTargets(campaignID int64) []*domain.Target {
	return []*domain.Target{
		{
			CampaignID:   campaignID,
			Name:         "阳光食品集团",
			TargetType:   domain.TargetCorporation,
			Organization: stringPtr("阳光食品集团"),
			Contacts: map[string]string{
				"email": "contact@sunshine-foods.example.com",
				"phone": "400-000-0000",
			},
			VulnerabilityScore: 6.5,
			VulnerabilityFactors: map[string]float64{
				"brand_exposure":     7.0,
				"regulatory_history": 6.0,
			},
		},
		{
			CampaignID:         campaignID,
			Name:               "采购总监",
			TargetType:         domain.TargetExecutive,
			Organization:       stringPtr("阳光食品集团"),
			TitleRole:          stringPtr("供应链采购总监"),
			SocialAccounts:     map[string]string{"linkedin": "example"},
			VulnerabilityScore: 5.0,
		},
	}
}

// SeedDemoData 插入一批演示数据：运动、目标、第一阶段行动以及一份排期
func SeedDemoData(r *repository.Repository) {
	for _, demo := range demoCampaigns {
		campaign, err := planner.BuildCampaign(demo.Name, demo.Type, demo.TargetSummary, demo.Goal, nil, nil)
		if err != nil {
			slog.Error("构建运动失败", "name", demo.Name, "error", err)
			continue
		}
		campaign.Status = domain.StatusActive

		if err := r.CreateCampaign(campaign); err != nil {
			slog.Error("插入运动失败", "name", demo.Name, "error", err)
			continue
		}

		targets := demoTargets(campaign.ID)
		for _, target := range targets {
			if err := r.CreateTarget(target); err != nil {
				slog.Error("插入目标失败", "name", target.Name, "error", err)
			}
		}

		// 生成第一阶段的行动
		actions, err := planner.GeneratePhaseActions(campaign, 1, targets)
		if err != nil {
			slog.Error("生成阶段行动失败", "name", demo.Name, "error", err)
			continue
		}
		for _, action := range actions {
			action.CampaignID = campaign.ID
		}
		if err := r.CreateActions(actions); err != nil {
			slog.Error("插入行动失败", "name", demo.Name, "error", err)
			continue
		}

		// 为邮件行动生成一份错峰排期，固定种子保证演示数据可复现
		emailIDs := make([]int64, 0, len(actions))
		for _, action := range actions {
			if action.ActionType == domain.ActionEmail {
				emailIDs = append(emailIDs, action.ID)
			}
		}
		if len(emailIDs) == 0 {
			continue
		}

		engine := scheduler.New(rand.New(rand.NewSource(42)))
		window := domain.NewScheduleWindow(*campaign.StartDate, campaign.StartDate.AddDate(0, 0, 14))
		scheduled, err := engine.StaggerEmails(emailIDs, window, &scheduler.StaggerParameters{
			PerDay:          10,
			IntervalMinutes: 30,
			JitterMinutes:   15,
		})
		if err != nil {
			slog.Error("生成排期失败", "name", demo.Name, "error", err)
			continue
		}

		if err := r.ReplaceCampaignSchedule(campaign.ID, scheduled); err != nil {
			slog.Error("插入排期失败", "name", demo.Name, "error", err)
			continue
		}
	}

	slog.Info("插入演示数据完成", "campaigns", len(demoCampaigns), "time", time.Now().Format(time.DateOnly))
}
