// Package generator 按志愿者的可用时间生成大小合适的行动。
// 大多数人只有五分钟而不是五个小时，只提供重量级行动的平台会流失九成参与者，
// 所以这里按时间档位匹配行动类型，让每个人都有事可做。
package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// TimeTier 表示志愿者可用时间的档位。
type TimeTier string

const (
	TierQuick  TimeTier = "quick"  // 5 分钟以内
	TierShort  TimeTier = "short"  // 15 分钟以内
	TierMedium TimeTier = "medium" // 30 分钟以内
	TierLong   TimeTier = "long"   // 更长
)

// tierTypes 列出每个档位内可选的行动类型。
var tierTypes = map[TimeTier][]domain.ActionType{
	TierQuick: {
		domain.ActionPhoneCall,
		domain.ActionSocialPost,
	},
	TierShort: {
		domain.ActionEmail,
		domain.ActionReview,
		domain.ActionSocialPost,
		domain.ActionPhoneCall,
	},
	TierMedium: {
		domain.ActionPublicComment,
		domain.ActionEmail,
		domain.ActionReview,
		domain.ActionSocialPost,
		domain.ActionPhoneCall,
		domain.ActionContentCreation,
	},
	TierLong: {
		domain.ActionFOIARequest,
		domain.ActionTestimony,
		domain.ActionContentCreation,
		domain.ActionSEOArticle,
		domain.ActionOSINTResearch,
		domain.ActionShareholderAction,
		domain.ActionPublicComment,
		domain.ActionEmail,
		domain.ActionReview,
		domain.ActionSocialPost,
		domain.ActionPhoneCall,
	},
}

// GetTimeTier 根据可用分钟数确定时间档位。
func GetTimeTier(minutesAvailable int32) TimeTier {
	switch {
	case minutesAvailable <= 5:
		return TierQuick
	case minutesAvailable <= 15:
		return TierShort
	case minutesAvailable <= 30:
		return TierMedium
	default:
		return TierLong
	}
}

// Spec 是生成一个具体行动所需的全部信息。
type Spec struct {
	ActionType       domain.ActionType `json:"actionType"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	TemplateName     *string           `json:"templateName"`
	TemplateVars     map[string]string `json:"templateVars"`
	EstimatedMinutes int32             `json:"estimatedMinutes"`
	Priority         int32             `json:"priority"`
	RequiresSkills   []string          `json:"requiresSkills"`
}

// GenerateForTime 生成能装进志愿者可用时间里的行动，按影响力从高到低排序。
// 运动声明了常用行动类型时只在其中挑选；提供了目标时按目标参数化（每种类型最多取前三个目标）。
func GenerateForTime(campaign *domain.Campaign, minutesAvailable int32, targets []*domain.Target, participant *domain.Participant, maxActions int) []*Spec {
	tier := GetTimeTier(minutesAvailable)
	eligible := tierTypes[tier]

	campaignTypes := make(map[domain.ActionType]bool)
	for _, tactic := range campaign.Tactics {
		campaignTypes[domain.ActionType(tactic)] = true
	}

	available := eligible
	if len(campaignTypes) > 0 {
		available = make([]domain.ActionType, 0, len(eligible))
		for _, actionType := range eligible {
			if campaignTypes[actionType] {
				available = append(available, actionType)
			}
		}
	}

	specs := make([]*Spec, 0)
	for _, actionType := range available {
		blueprint, ok := blueprints[actionType]
		if !ok {
			continue
		}
		if blueprint.estimatedMinutes > minutesAvailable {
			continue
		}
		if participant != nil && !hasAnySkill(participant.Skills, blueprint.requiresSkills) {
			continue
		}

		targetList := targets
		if len(targetList) == 0 {
			targetList = []*domain.Target{nil}
		}
		if len(targetList) > 3 {
			targetList = targetList[:3]
		}

		for _, target := range targetList {
			templateVars := buildTemplateVars(campaign, target)
			specs = append(specs, &Spec{
				ActionType:       actionType,
				Title:            generateTitle(actionType, campaign, target),
				Description:      fillDescription(blueprint.descriptionTemplate, templateVars),
				TemplateName:     blueprint.templateName,
				TemplateVars:     templateVars,
				EstimatedMinutes: blueprint.estimatedMinutes,
				Priority:         calculatePriority(actionType, campaign, target),
				RequiresSkills:   blueprint.requiresSkills,
			})
		}
	}

	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].Priority < specs[j].Priority
	})
	if maxActions > 0 && len(specs) > maxActions {
		specs = specs[:maxActions]
	}

	return specs
}

// ActionFromSpec 把一份行动规格实例化成可以入库的行动。
func ActionFromSpec(spec *Spec, campaignID int64) *domain.Action {
	return &domain.Action{
		CampaignID:       campaignID,
		ActionType:       spec.ActionType,
		Title:            spec.Title,
		Description:      spec.Description,
		TemplateName:     spec.TemplateName,
		TemplateVars:     spec.TemplateVars,
		EstimatedMinutes: spec.EstimatedMinutes,
		Priority:         spec.Priority,
		Status:           domain.ActionAvailable,
	}
}

// SuggestNextAction 为志愿者推荐当下最值得做的一个行动。
// 只考虑进行中或升级中的运动，综合志愿者技能、可用时间和行动影响力。
func SuggestNextAction(participant *domain.Participant, campaigns []*domain.Campaign) *Spec {
	var all []*Spec
	for _, campaign := range campaigns {
		if campaign.Status != domain.StatusActive && campaign.Status != domain.StatusEscalating {
			continue
		}
		all = append(all, GenerateForTime(campaign, participant.AvailabilityMinutesPerWeek, nil, participant, 3)...)
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Priority < all[j].Priority
	})

	return all[0]
}

func hasAnySkill(skills []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, need := range required {
		for _, have := range skills {
			if have == need {
				return true
			}
		}
	}

	return false
}

func buildTemplateVars(campaign *domain.Campaign, target *domain.Target) map[string]string {
	vars := map[string]string{
		"campaign_name": campaign.Name,
		"campaign_goal": campaign.Goal,
		"hashtag":       strings.ReplaceAll(campaign.Slug, "-", ""),
	}
	if target == nil {
		return vars
	}

	vars["target_name"] = target.Name
	if target.Organization != nil {
		vars["target_org"] = *target.Organization
	}
	if target.TitleRole != nil {
		vars["target_role"] = *target.TitleRole
	}
	vars["target_email"] = contactOr(target, "email", "[邮箱]")
	vars["phone_number"] = contactOr(target, "phone", "[电话]")
	for platform, account := range target.SocialAccounts {
		vars["social_"+platform] = account
	}

	return vars
}

func contactOr(target *domain.Target, key, fallback string) string {
	if value, ok := target.Contacts[key]; ok && value != "" {
		return value
	}

	return fallback
}

// fillDescription 填充描述模板，没有对应值的占位符原样保留。
func fillDescription(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}

	return result
}

var titleLabels = map[domain.ActionType]string{
	domain.ActionPhoneCall:         "致电",
	domain.ActionEmail:             "邮件联系",
	domain.ActionSocialPost:        "发帖声援",
	domain.ActionPublicComment:     "提交评论：",
	domain.ActionFOIARequest:       "信息公开申请：",
	domain.ActionReview:            "发布评价：",
	domain.ActionTestimony:         "准备证词：",
	domain.ActionShareholderAction: "股东行动：",
	domain.ActionBoycott:           "参与抵制",
	domain.ActionContentCreation:   "创作内容：",
	domain.ActionSEOArticle:        "撰写文章：",
	domain.ActionOSINTResearch:     "调研",
	domain.ActionSatelliteAnalysis: "影像分析：",
	domain.ActionCitizenSuit:       "法律评估：",
}

func generateTitle(actionType domain.ActionType, campaign *domain.Campaign, target *domain.Target) string {
	label, ok := titleLabels[actionType]
	if !ok {
		label = string(actionType)
	}

	subject := campaign.TargetSummary
	if runes := []rune(subject); len(runes) > 40 {
		subject = string(runes[:40])
	}
	if target != nil {
		subject = target.Name
	}

	return fmt.Sprintf("%s%s", label, subject)
}

// calculatePriority 计算行动优先级，1 最高 10 最低。
// 考虑运动状态（升级中的运动更急）、目标软弱度和行动类型的影响力权重。
func calculatePriority(actionType domain.ActionType, campaign *domain.Campaign, target *domain.Target) int32 {
	priority := int32(5)

	switch campaign.Status {
	case domain.StatusEscalating:
		priority -= 2
	case domain.StatusActive:
		priority--
	}

	if target != nil {
		if target.VulnerabilityScore >= 8 {
			priority -= 2
		} else if target.VulnerabilityScore >= 6 {
			priority--
		}
	}

	switch actionType {
	case domain.ActionTestimony, domain.ActionCitizenSuit, domain.ActionShareholderAction, domain.ActionFOIARequest:
		priority--
	case domain.ActionPublicComment, domain.ActionEmail, domain.ActionOSINTResearch:
		// 中等影响力，不加不减
	default:
		priority++
	}

	if priority < 1 {
		return 1
	}
	if priority > 10 {
		return 10
	}

	return priority
}
