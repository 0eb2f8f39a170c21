package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// OutcomeType 表示一类可计价的运动成果。
type OutcomeType string

const (
	OutcomeEmailToTarget     OutcomeType = "email_to_target"
	OutcomePhoneCallLogged   OutcomeType = "phone_call_logged"
	OutcomeCommentFiled      OutcomeType = "public_comment_filed"
	OutcomeFOIAFiled         OutcomeType = "foia_request_filed"
	OutcomeReviewPosted      OutcomeType = "review_posted"
	OutcomeTestimonyGiven    OutcomeType = "testimony_given"
	OutcomeMediaMention      OutcomeType = "media_mention_earned"
	OutcomeShareholderAction OutcomeType = "shareholder_action"
	OutcomeCorporateResponse OutcomeType = "corporate_response"
	OutcomePolicyChange      OutcomeType = "policy_change"
	OutcomeSocialEngagement  OutcomeType = "social_post_engagement"
)

// outcomeValues 是各类成果的等价金额，按通过付费渠道达成同等效果的成本估算。
var outcomeValues = map[OutcomeType]float64{
	OutcomeEmailToTarget:     5.0,
	OutcomePhoneCallLogged:   15.0,
	OutcomeCommentFiled:      50.0,    // 专业评论代写的市场价更高
	OutcomeFOIAFiled:         200.0,   // 按律师助理费率估算
	OutcomeReviewPosted:      10.0,
	OutcomeTestimonyGiven:    500.0,   // 对标专家证人费率
	OutcomeMediaMention:      1000.0,  // 等效广告投放
	OutcomeShareholderAction: 2000.0,  // 代理顾问机构的服务费
	OutcomeCorporateResponse: 5000.0,  // 说明压力已经起效
	OutcomePolicyChange:      50000.0, // 运动的最终目的
	OutcomeSocialEngagement:  2.0,
}

// 志愿者时间按每小时 30 的公益等价折算
const volunteerHourValue = 30.0

// estimatedHours 是缺少实际数据时各类行动的估算耗时（小时）。
var estimatedHours = map[domain.ActionType]float64{
	domain.ActionPhoneCall:         0.1,
	domain.ActionEmail:             0.25,
	domain.ActionSocialPost:        0.2,
	domain.ActionPublicComment:     0.5,
	domain.ActionFOIARequest:       2.0,
	domain.ActionReview:            0.25,
	domain.ActionTestimony:         2.0,
	domain.ActionShareholderAction: 4.0,
	domain.ActionBoycott:           0.25,
	domain.ActionContentCreation:   2.0,
	domain.ActionSEOArticle:        3.0,
	domain.ActionOSINTResearch:     4.0,
	domain.ActionSatelliteAnalysis: 3.0,
	domain.ActionCitizenSuit:       8.0,
}

// outcomeByType 把行动类型映射到它对应的可计价成果。
var outcomeByType = map[domain.ActionType]OutcomeType{
	domain.ActionEmail:             OutcomeEmailToTarget,
	domain.ActionPhoneCall:         OutcomePhoneCallLogged,
	domain.ActionPublicComment:     OutcomeCommentFiled,
	domain.ActionFOIARequest:       OutcomeFOIAFiled,
	domain.ActionReview:            OutcomeReviewPosted,
	domain.ActionTestimony:         OutcomeTestimonyGiven,
	domain.ActionShareholderAction: OutcomeShareholderAction,
	domain.ActionSocialPost:        OutcomeSocialEngagement,
}

// Outcome 是一条显式登记的成果，可以覆盖默认估值。
type Outcome struct {
	Type          OutcomeType `json:"type"`
	ValueOverride *float64    `json:"valueOverride"`
	Details       string      `json:"details"`
}

type ROIInvestment struct {
	TotalVolunteerHours   float64 `json:"totalVolunteerHours"`
	TotalActionsCompleted int     `json:"totalActionsCompleted"`
	TotalActionsAvailable int     `json:"totalActionsAvailable"`
	TimeUtilizationPct    float64 `json:"timeUtilizationPct"`
	WastedHours           float64 `json:"wastedHours"`
	CostEquivalent        float64 `json:"costEquivalent"`
}

type ROIReturns struct {
	ActionValue  float64 `json:"actionValue"`
	OutcomeValue float64 `json:"outcomeValue"`
	TotalValue   float64 `json:"totalValue"`
}

type ROIEfficiency struct {
	ROIPct               float64           `json:"roiPct"`
	ValuePerHour         float64           `json:"valuePerVolunteerHour"`
	MostEfficientAction  domain.ActionType `json:"mostEfficientAction"`
	LeastEfficientAction domain.ActionType `json:"leastEfficientAction"`
}

type TypeEfficiency struct {
	HoursInvested  float64 `json:"hoursInvested"`
	ValueGenerated float64 `json:"valueGenerated"`
	ValuePerHour   float64 `json:"valuePerHour"`
}

// CampaignROI 回答一个问题：志愿者投入的每个小时换来了什么。
type CampaignROI struct {
	CampaignID      int64                                 `json:"campaignID"`
	CampaignName    string                                `json:"campaignName"`
	Investment      ROIInvestment                         `json:"investment"`
	Returns         ROIReturns                            `json:"returns"`
	Efficiency      ROIEfficiency                         `json:"efficiency"`
	TypeBreakdown   map[domain.ActionType]*TypeEfficiency `json:"typeBreakdown"`
	Recommendations []string                              `json:"recommendations"`
}

// ComputeCampaignROI 计算一个运动的投入产出比。
// 志愿者时间是最稀缺的资源，浪费的每个小时都本可以用在别处。
func ComputeCampaignROI(campaign *domain.Campaign, actions []*domain.Action, outcomes []Outcome, now time.Time) *CampaignROI {
	var completed []*domain.Action
	for _, action := range actions {
		if action.Status == domain.ActionCompleted || action.Status == domain.ActionVerified {
			completed = append(completed, action)
		}
	}

	totalHours := 0.0
	typeHours := make(map[domain.ActionType]float64)
	for _, action := range completed {
		hours := float64(action.EstimatedMinutes) / 60.0
		totalHours += hours
		typeHours[action.ActionType] += hours
	}

	actionValue := 0.0
	typeValues := make(map[domain.ActionType]float64)
	for _, action := range completed {
		value := 5.0 // 任何已完成的行动都有保底价值
		if outcomeType, ok := outcomeByType[action.ActionType]; ok {
			value = outcomeValues[outcomeType]
		}
		actionValue += value
		typeValues[action.ActionType] += value
	}

	outcomeValue := 0.0
	for _, outcome := range outcomes {
		if outcome.ValueOverride != nil {
			outcomeValue += *outcome.ValueOverride
			continue
		}
		outcomeValue += outcomeValues[outcome.Type]
	}
	totalValue := actionValue + outcomeValue

	totalCost := totalHours * volunteerHourValue
	roiPct := round1((totalValue - totalCost) / math.Max(totalCost, 1) * 100)
	valuePerHour := round2(totalValue / math.Max(totalHours, 0.1))

	typeBreakdown := make(map[domain.ActionType]*TypeEfficiency, len(typeValues))
	for actionType, value := range typeValues {
		hours := typeHours[actionType]
		typeBreakdown[actionType] = &TypeEfficiency{
			HoursInvested:  round1(hours),
			ValueGenerated: round2(value),
			ValuePerHour:   round2(value / math.Max(hours, 0.1)),
		}
	}

	ranked := make([]domain.ActionType, 0, len(typeBreakdown))
	for actionType := range typeBreakdown {
		ranked = append(ranked, actionType)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := typeBreakdown[ranked[i]], typeBreakdown[ranked[j]]
		if a.ValuePerHour != b.ValuePerHour {
			return a.ValuePerHour > b.ValuePerHour
		}
		return ranked[i] < ranked[j]
	})

	totalPossibleHours := 0.0
	for _, action := range actions {
		totalPossibleHours += float64(action.EstimatedMinutes) / 60.0
	}
	timeUtilization := 0.0
	if totalPossibleHours > 0 {
		timeUtilization = round1(totalHours / totalPossibleHours * 100)
	}

	wastedHours := 0.0
	for _, action := range actions {
		done := action.Status == domain.ActionCompleted || action.Status == domain.ActionVerified
		overdue := action.Deadline != nil && now.After(*action.Deadline)
		if action.Status == domain.ActionExpired || (overdue && !done) {
			wastedHours += float64(action.EstimatedMinutes) / 60.0
		}
	}

	efficiency := ROIEfficiency{
		ROIPct:       roiPct,
		ValuePerHour: valuePerHour,
	}
	if len(ranked) > 0 {
		efficiency.MostEfficientAction = ranked[0]
		efficiency.LeastEfficientAction = ranked[len(ranked)-1]
	}

	return &CampaignROI{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Investment: ROIInvestment{
			TotalVolunteerHours:   round1(totalHours),
			TotalActionsCompleted: len(completed),
			TotalActionsAvailable: len(actions),
			TimeUtilizationPct:    timeUtilization,
			WastedHours:           round1(wastedHours),
			CostEquivalent:        round2(totalCost),
		},
		Returns: ROIReturns{
			ActionValue:  round2(actionValue),
			OutcomeValue: round2(outcomeValue),
			TotalValue:   round2(totalValue),
		},
		Efficiency:      efficiency,
		TypeBreakdown:   typeBreakdown,
		Recommendations: buildRecommendations(typeBreakdown, ranked, totalHours, len(completed), len(actions)),
	}
}

// buildRecommendations 根据投入产出数据给出可操作的调整建议。
func buildRecommendations(typeBreakdown map[domain.ActionType]*TypeEfficiency, ranked []domain.ActionType, totalHours float64, completedCount, totalCount int) []string {
	var recommendations []string

	if totalCount > 0 && float64(completedCount)/float64(totalCount) < 0.3 {
		recommendations = append(recommendations,
			"完成率偏低，考虑减少行动数量并强化紧迫感信号，例如截止时间和进度条。")
	}

	if len(ranked) >= 2 {
		best := typeBreakdown[ranked[0]]
		worst := typeBreakdown[ranked[len(ranked)-1]]
		if best.ValuePerHour > worst.ValuePerHour*3 {
			recommendations = append(recommendations, fmt.Sprintf(
				"把志愿者时间从 %s（每小时 %.2f）转移到 %s（每小时 %.2f），效率可提升三倍以上。",
				ranked[len(ranked)-1], worst.ValuePerHour, ranked[0], best.ValuePerHour,
			))
		}
	}

	if totalHours > 0 && float64(completedCount)/math.Max(totalHours, 1) < 1 {
		recommendations = append(recommendations,
			"行动实际耗时超过估算，检查话术模板并提供更多辅助材料来缩短单个行动的耗时。")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"运动运转良好，可以考虑扩大表现最好的行动类型的规模。")
	}

	return recommendations
}

// ImpactProjection 是追加投入的预期产出。
type ImpactProjection struct {
	AdditionalHours            float64 `json:"additionalHours"`
	FocusType                  string  `json:"focusType"`
	ProjectedAdditionalActions int     `json:"projectedAdditionalActions"`
	ProjectedAdditionalValue   float64 `json:"projectedAdditionalValue"`
	ProjectedNewTotalActions   int     `json:"projectedNewTotalActions"`
}

// ProjectImpact 预测追加的志愿者时间能换来什么。
// 指定了聚焦类型时全部投入该类型，否则按当前已完成行动的类型分布摊开。
func ProjectImpact(actions []*domain.Action, additionalHours float64, focusType *domain.ActionType) *ImpactProjection {
	var completed []*domain.Action
	for _, action := range actions {
		if action.Status == domain.ActionCompleted || action.Status == domain.ActionVerified {
			completed = append(completed, action)
		}
	}

	var projectedActions int
	var projectedValue float64
	focus := "distributed"

	switch {
	case focusType != nil:
		focus = string(*focusType)
		hoursPer, ok := estimatedHours[*focusType]
		if !ok {
			hoursPer = 0.5
		}
		projectedActions = int(additionalHours / hoursPer)
		outcomeType, ok := outcomeByType[*focusType]
		value := 5.0
		if ok {
			value = outcomeValues[outcomeType]
		}
		projectedValue = float64(projectedActions) * value

	case len(completed) > 0:
		distribution := make(map[domain.ActionType]int)
		for _, action := range completed {
			distribution[action.ActionType]++
		}
		for actionType, count := range distribution {
			share := float64(count) / float64(len(completed))
			hoursPer, ok := estimatedHours[actionType]
			if !ok {
				hoursPer = 0.5
			}
			actionsCount := int(additionalHours * share / hoursPer)
			projectedActions += actionsCount

			value := 5.0
			if outcomeType, ok := outcomeByType[actionType]; ok {
				value = outcomeValues[outcomeType]
			}
			projectedValue += float64(actionsCount) * value
		}

	default:
		projectedActions = int(additionalHours / 0.5)
		projectedValue = float64(projectedActions) * 5.0
	}

	return &ImpactProjection{
		AdditionalHours:            additionalHours,
		FocusType:                  focus,
		ProjectedAdditionalActions: projectedActions,
		ProjectedAdditionalValue:   round2(projectedValue),
		ProjectedNewTotalActions:   len(completed) + projectedActions,
	}
}
