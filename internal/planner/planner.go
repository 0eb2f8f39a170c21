// Package planner 根据运动模板生成结构化的运动计划和各阶段的具体行动。
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/utils"
)

var (
	ErrUnknownCampaignType = errors.New("未知的运动类型")
	ErrPhaseNotFound       = errors.New("升级阶梯中不存在该阶段")
)

// GetTemplate 返回指定运动类型的完整模板。
func GetTemplate(campaignType domain.CampaignType) (*Template, error) {
	template, ok := templates[campaignType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCampaignType, campaignType)
	}

	return template, nil
}

// CampaignTypeSummary 是一类运动模板的概览，供前端选择模板时展示。
type CampaignTypeSummary struct {
	Type        domain.CampaignType `json:"type"`
	Channels    []domain.Channel    `json:"channels"`
	Phases      int                 `json:"phases"`
	TotalWeeks  int32               `json:"totalWeeks"`
	ActionTypes []domain.ActionType `json:"actionTypes"`
}

// ListCampaignTypes 列出所有可用的运动类型及其概览。
func ListCampaignTypes() []CampaignTypeSummary {
	ordered := []domain.CampaignType{
		domain.CampaignCorporate,
		domain.CampaignLegislative,
		domain.CampaignRegulatory,
		domain.CampaignInvestigation,
		domain.CampaignCultural,
	}

	summaries := make([]CampaignTypeSummary, 0, len(ordered))
	for _, campaignType := range ordered {
		template := templates[campaignType]
		var totalWeeks int32
		for _, phase := range template.Ladder {
			totalWeeks += phase.DurationWeeks
		}
		summaries = append(summaries, CampaignTypeSummary{
			Type:        campaignType,
			Channels:    template.Channels,
			Phases:      len(template.Ladder),
			TotalWeeks:  totalWeeks,
			ActionTypes: template.ActionTypes,
		})
	}

	return summaries
}

// BuildCampaign 从模板构建一个运动实例。
// 截止日期根据升级阶梯各阶段的周数自动推算，customLadder 非空时覆盖模板自带的阶梯。
func BuildCampaign(name string, campaignType domain.CampaignType, targetSummary string, goal string, startDate *time.Time, customLadder []domain.Phase) (*domain.Campaign, error) {
	template, err := GetTemplate(campaignType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if startDate != nil {
		start = *startDate
	}

	ladder := template.Ladder
	if len(customLadder) > 0 {
		ladder = customLadder
	}

	var totalWeeks int32
	winConditions := make([]string, 0, len(ladder))
	for _, phase := range ladder {
		totalWeeks += phase.DurationWeeks
		winConditions = append(winConditions, phase.WinTrigger)
	}
	deadline := start.AddDate(0, 0, int(totalWeeks)*7)

	tactics := make([]string, 0, len(template.ActionTypes))
	for _, actionType := range template.ActionTypes {
		tactics = append(tactics, string(actionType))
	}

	return &domain.Campaign{
		Name:          name,
		Slug:          utils.Slugify(name),
		CampaignType:  campaignType,
		TargetSummary: targetSummary,
		Goal:          goal,
		Status:        domain.StatusDraft,
		Channels:      template.Channels,
		Tactics:       tactics,
		Phases:        ladder,
		WinConditions: winConditions,
		StartDate:     &start,
		Deadline:      &deadline,
	}, nil
}

// GeneratePhaseActions 为运动的某个升级阶段生成具体行动。
// 阶段中的每条战术会变成一个行动；提供了目标时按目标逐个参数化。
func GeneratePhaseActions(campaign *domain.Campaign, phaseNumber int32, targets []*domain.Target) ([]*domain.Action, error) {
	var phase *domain.Phase
	for i := range campaign.Phases {
		if campaign.Phases[i].PhaseNumber == phaseNumber {
			phase = &campaign.Phases[i]
			break
		}
	}
	if phase == nil {
		return nil, fmt.Errorf("%w: 阶段 %d", ErrPhaseNotFound, phaseNumber)
	}

	actions := make([]*domain.Action, 0, len(phase.Tactics))
	for _, tactic := range phase.Tactics {
		actionType := InferActionType(tactic)
		title := fmt.Sprintf("第 %d 阶段：%s", phaseNumber, truncate(tactic, 80))

		if len(targets) == 0 {
			actions = append(actions, &domain.Action{
				CampaignID:       campaign.ID,
				ActionType:       actionType,
				Title:            title,
				Description:      tactic,
				TemplateName:     SuggestTemplateFile(actionType),
				EstimatedMinutes: EstimateMinutes(actionType),
				Priority:         phaseNumber, // 越早的阶段优先级越高
				Status:           domain.ActionAvailable,
			})
			continue
		}

		for _, target := range targets {
			description := fmt.Sprintf("%s\n\n目标：%s", tactic, target.Name)
			if target.Organization != nil {
				description = fmt.Sprintf("%s（%s）", description, *target.Organization)
			}

			templateVars := map[string]string{"target_name": target.Name}
			if target.Organization != nil {
				templateVars["target_org"] = *target.Organization
			}
			if target.TitleRole != nil {
				templateVars["target_role"] = *target.TitleRole
			}
			for key, value := range target.Contacts {
				templateVars["contact_"+key] = value
			}
			for key, value := range target.SocialAccounts {
				templateVars["social_"+key] = value
			}

			actions = append(actions, &domain.Action{
				CampaignID:       campaign.ID,
				ActionType:       actionType,
				Title:            title,
				Description:      description,
				TemplateName:     SuggestTemplateFile(actionType),
				TemplateVars:     templateVars,
				EstimatedMinutes: EstimateMinutes(actionType),
				Priority:         phaseNumber,
				Status:           domain.ActionAvailable,
			})
		}
	}

	return actions, nil
}

type tacticRule struct {
	keywords   []string
	actionType domain.ActionType
}

// 按声明顺序匹配，先命中者生效
var tacticRules = []tacticRule{
	{[]string{"邮件", "信件", "信函"}, domain.ActionEmail},
	{[]string{"电话", "致电"}, domain.ActionPhoneCall},
	{[]string{"社交媒体", "话题标签", "推特"}, domain.ActionSocialPost},
	{[]string{"公众评论", "评论期", "规则制定"}, domain.ActionPublicComment},
	{[]string{"信息公开", "foia"}, domain.ActionFOIARequest},
	{[]string{"在线评价", "评价"}, domain.ActionReview},
	{[]string{"听证", "证词", "市民大会"}, domain.ActionTestimony},
	{[]string{"股东", "代理投票", "投资者", "esg"}, domain.ActionShareholderAction},
	{[]string{"抵制", "替代品牌"}, domain.ActionBoycott},
	{[]string{"seo", "博客"}, domain.ActionSEOArticle},
	{[]string{"公开情报", "工商档案", "证券申报", "许可证"}, domain.ActionOSINTResearch},
	{[]string{"卫星", "影像"}, domain.ActionSatelliteAnalysis},
	{[]string{"公民诉讼", "诉讼", "法律行动", "法院"}, domain.ActionCitizenSuit},
	{[]string{"内容", "视频", "专栏", "纪录片", "播客"}, domain.ActionContentCreation},
}

// InferActionType 根据战术描述推断最合适的行动类型，推断不出时回落到内容创作。
func InferActionType(tactic string) domain.ActionType {
	lowered := strings.ToLower(tactic)
	for _, rule := range tacticRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.actionType
			}
		}
	}

	return domain.ActionContentCreation
}

// EstimateMinutes 估算完成一个行动大致需要的分钟数。
func EstimateMinutes(actionType domain.ActionType) int32 {
	estimates := map[domain.ActionType]int32{
		domain.ActionPhoneCall:         5,
		domain.ActionEmail:             15,
		domain.ActionSocialPost:        10,
		domain.ActionReview:            15,
		domain.ActionPublicComment:     30,
		domain.ActionTestimony:         120,
		domain.ActionFOIARequest:       120,
		domain.ActionShareholderAction: 240,
		domain.ActionBoycott:           15,
		domain.ActionContentCreation:   120,
		domain.ActionSEOArticle:        180,
		domain.ActionOSINTResearch:     240,
		domain.ActionSatelliteAnalysis: 180,
		domain.ActionCitizenSuit:       480,
	}
	if minutes, ok := estimates[actionType]; ok {
		return minutes
	}

	return 30
}

// SuggestTemplateFile 为行动类型推荐一份话术模板文件，没有合适的返回 nil。
func SuggestTemplateFile(actionType domain.ActionType) *string {
	files := map[domain.ActionType]string{
		domain.ActionEmail:         "email_templates/corporate_ceo.txt",
		domain.ActionPhoneCall:     "phone_scripts/congressional_call.txt",
		domain.ActionSocialPost:    "social_templates/twitter_thread.txt",
		domain.ActionPublicComment: "email_templates/public_comment.txt",
		domain.ActionReview:        "review_templates/google_review.txt",
	}
	if file, ok := files[actionType]; ok {
		return &file
	}

	return nil
}

// truncate 按字符截断，避免把多字节字符截成半个。
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
