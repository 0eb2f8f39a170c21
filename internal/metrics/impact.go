// Package metrics 度量运动的实际效果：行动完成情况、加权影响力、媒体声量和目标方的回应。
// 所有指标最终都回答同一个问题：这些行动有没有让目标离我们的诉求更近。
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// actionImpactWeights 是各行动类型在影响力评分中的权重，权重越高单个行动的压力越大。
var actionImpactWeights = map[domain.ActionType]float64{
	domain.ActionPhoneCall:         3.0,  // 直接的人际接触，办公室会留档
	domain.ActionEmail:             1.0,  // 基准单位
	domain.ActionSocialPost:        0.5,  // 依赖数量，单帖影响有限
	domain.ActionPublicComment:     5.0,  // 实质性评论机构依法必须回应
	domain.ActionFOIARequest:       8.0,  // 产生法定义务，还能换来情报
	domain.ActionReview:            2.0,  // 消费者可见且长期存续
	domain.ActionTestimony:         10.0, // 直接进入立法记录
	domain.ActionShareholderAction: 12.0, // 董事会层面的压力
	domain.ActionBoycott:           1.5,
	domain.ActionContentCreation:   2.0,
	domain.ActionSEOArticle:        3.0, // 长期可被搜索到
	domain.ActionOSINTResearch:     6.0, // 支撑其他高影响力行动
	domain.ActionSatelliteAnalysis: 7.0, // 难以辩驳的硬证据
	domain.ActionCitizenSuit:       15.0,
}

// ImpactWeight 返回行动类型的影响力权重，未知类型按 1.0 计。
func ImpactWeight(actionType domain.ActionType) float64 {
	if weight, ok := actionImpactWeights[actionType]; ok {
		return weight
	}

	return 1.0
}

// channelByType 把行动类型映射到它主要覆盖的施压渠道。
var channelByType = map[domain.ActionType]domain.Channel{
	domain.ActionEmail:             domain.ChannelEmail,
	domain.ActionPhoneCall:         domain.ChannelPhone,
	domain.ActionSocialPost:        domain.ChannelSocialMedia,
	domain.ActionPublicComment:     domain.ChannelRegulatory,
	domain.ActionFOIARequest:       domain.ChannelLegal,
	domain.ActionReview:            domain.ChannelConsumer,
	domain.ActionTestimony:         domain.ChannelGrassroots,
	domain.ActionShareholderAction: domain.ChannelShareholder,
	domain.ActionContentCreation:   domain.ChannelMedia,
	domain.ActionSEOArticle:        domain.ChannelMedia,
	domain.ActionCitizenSuit:       domain.ChannelLegal,
}

type MetricsSummary struct {
	TotalActions     int     `json:"totalActions"`
	Completed        int     `json:"completed"`
	Verified         int     `json:"verified"`
	Overdue          int     `json:"overdue"`
	CompletionRate   float64 `json:"completionRate"`
	VerificationRate float64 `json:"verificationRate"`
}

type ActivityCounts struct {
	EmailsSent       int `json:"emailsSent"`
	CallsMade        int `json:"callsMade"`
	CommentsFiled    int `json:"commentsFiled"`
	ReviewsPosted    int `json:"reviewsPosted"`
	FOIAFiled        int `json:"foiaFiled"`
	TestimoniesGiven int `json:"testimoniesGiven"`
	SocialPosts      int `json:"socialPosts"`
}

type ImpactMetrics struct {
	TotalImpactScore float64 `json:"totalImpactScore"`
	ImpactPerAction  float64 `json:"impactPerAction"`
	VelocityPerWeek  float64 `json:"velocityPerWeek"`
}

type ChannelCoverage struct {
	Active        []domain.Channel `json:"active"`
	TotalPossible int              `json:"totalPossible"`
	CoveragePct   float64          `json:"coveragePct"`
}

type TypeMetrics struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

type WeeklyCount struct {
	Week             string `json:"week"`
	ActionsCompleted int    `json:"actionsCompleted"`
}

// CampaignMetrics 是一个运动的完整效果画像。
type CampaignMetrics struct {
	CampaignID     int64                              `json:"campaignID"`
	CampaignName   string                             `json:"campaignName"`
	Summary        MetricsSummary                     `json:"summary"`
	ActivityCounts ActivityCounts                     `json:"activityCounts"`
	Impact         ImpactMetrics                      `json:"impact"`
	Channels       ChannelCoverage                    `json:"channels"`
	TypeBreakdown  map[domain.ActionType]*TypeMetrics `json:"typeBreakdown"`
	WeeklyTimeline []WeeklyCount                      `json:"weeklyTimeline"`
}

// ComputeCampaignMetrics 汇总一个运动的全部效果指标。
// now 由调用方传入，速度指标按运动开始以来的周数折算。
func ComputeCampaignMetrics(campaign *domain.Campaign, actions []*domain.Action, now time.Time) *CampaignMetrics {
	var completed, verified []*domain.Action
	for _, action := range actions {
		if action.Status == domain.ActionCompleted || action.Status == domain.ActionVerified {
			completed = append(completed, action)
		}
		if action.Status == domain.ActionVerified {
			verified = append(verified, action)
		}
	}

	typeBreakdown := make(map[domain.ActionType]*TypeMetrics)
	for _, action := range actions {
		entry, ok := typeBreakdown[action.ActionType]
		if !ok {
			entry = &TypeMetrics{}
			typeBreakdown[action.ActionType] = entry
		}
		entry.Total++
	}

	completedByType := make(map[domain.ActionType]int)
	totalImpact := 0.0
	activeChannels := make(map[domain.Channel]bool)
	for _, action := range completed {
		completedByType[action.ActionType]++
		totalImpact += ImpactWeight(action.ActionType)
		if channel, ok := channelByType[action.ActionType]; ok {
			activeChannels[channel] = true
		}
	}

	for actionType, entry := range typeBreakdown {
		entry.Completed = completedByType[actionType]
		if entry.Total > 0 {
			entry.CompletionRate = round1(float64(entry.Completed) / float64(entry.Total) * 100)
		}
	}

	overdue := 0
	for _, action := range actions {
		done := action.Status == domain.ActionCompleted || action.Status == domain.ActionVerified
		if action.Deadline != nil && now.After(*action.Deadline) && !done {
			overdue++
		}
	}

	velocity := 0.0
	if campaign.StartDate != nil && len(completed) > 0 {
		daysActive := math.Max(1, now.Sub(*campaign.StartDate).Hours()/24)
		weeksActive := math.Max(1, daysActive/7)
		velocity = round1(float64(len(completed)) / weeksActive)
	}

	completionRate := 0.0
	if len(actions) > 0 {
		completionRate = round1(float64(len(completed)) / float64(len(actions)) * 100)
	}
	verificationRate := 0.0
	if len(completed) > 0 {
		verificationRate = round1(float64(len(verified)) / float64(len(completed)) * 100)
	}
	impactPerAction := 0.0
	if len(completed) > 0 {
		impactPerAction = round2(totalImpact / float64(len(completed)))
	}

	active := make([]domain.Channel, 0, len(activeChannels))
	for channel := range activeChannels {
		active = append(active, channel)
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })

	possibleChannels := make(map[domain.Channel]bool)
	for _, channel := range channelByType {
		possibleChannels[channel] = true
	}

	return &CampaignMetrics{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Summary: MetricsSummary{
			TotalActions:     len(actions),
			Completed:        len(completed),
			Verified:         len(verified),
			Overdue:          overdue,
			CompletionRate:   completionRate,
			VerificationRate: verificationRate,
		},
		ActivityCounts: ActivityCounts{
			EmailsSent:       completedByType[domain.ActionEmail],
			CallsMade:        completedByType[domain.ActionPhoneCall],
			CommentsFiled:    completedByType[domain.ActionPublicComment],
			ReviewsPosted:    completedByType[domain.ActionReview],
			FOIAFiled:        completedByType[domain.ActionFOIARequest],
			TestimoniesGiven: completedByType[domain.ActionTestimony],
			SocialPosts:      completedByType[domain.ActionSocialPost],
		},
		Impact: ImpactMetrics{
			TotalImpactScore: round1(totalImpact),
			ImpactPerAction:  impactPerAction,
			VelocityPerWeek:  velocity,
		},
		Channels: ChannelCoverage{
			Active:        active,
			TotalPossible: len(possibleChannels),
			CoveragePct:   round1(float64(len(active)) / float64(len(possibleChannels)) * 100),
		},
		TypeBreakdown:  typeBreakdown,
		WeeklyTimeline: buildWeeklyTimeline(completed),
	}
}

// buildWeeklyTimeline 按完成时间所在的周（周一为起点）统计完成数。
func buildWeeklyTimeline(completed []*domain.Action) []WeeklyCount {
	weekly := make(map[string]int)
	for _, action := range completed {
		if action.CompletedAt == nil {
			continue
		}
		weekday := int(action.CompletedAt.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		weekStart := action.CompletedAt.AddDate(0, 0, -(weekday - 1))
		weekly[weekStart.Format(time.DateOnly)]++
	}

	weeks := make([]string, 0, len(weekly))
	for week := range weekly {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	timeline := make([]WeeklyCount, 0, len(weeks))
	for _, week := range weeks {
		timeline = append(timeline, WeeklyCount{Week: week, ActionsCompleted: weekly[week]})
	}

	return timeline
}

// CompareCampaigns 计算多个运动的指标并按总影响力从高到低排序。
func CompareCampaigns(campaignsWithActions map[*domain.Campaign][]*domain.Action, now time.Time) []*CampaignMetrics {
	results := make([]*CampaignMetrics, 0, len(campaignsWithActions))
	for campaign, actions := range campaignsWithActions {
		results = append(results, ComputeCampaignMetrics(campaign, actions, now))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Impact.TotalImpactScore > results[j].Impact.TotalImpactScore
	})

	return results
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
