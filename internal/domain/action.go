package domain

import "time"

type ActionType string

const (
	ActionEmail             ActionType = "email"
	ActionPhoneCall         ActionType = "phone_call"
	ActionSocialPost        ActionType = "social_post"
	ActionPublicComment     ActionType = "public_comment"
	ActionFOIARequest       ActionType = "foia_request"
	ActionReview            ActionType = "review"
	ActionTestimony         ActionType = "testimony"
	ActionShareholderAction ActionType = "shareholder_action"
	ActionBoycott           ActionType = "boycott"
	ActionContentCreation   ActionType = "content_creation"
	ActionSEOArticle        ActionType = "seo_article"
	ActionOSINTResearch     ActionType = "osint_research"
	ActionSatelliteAnalysis ActionType = "satellite_analysis"
	ActionCitizenSuit       ActionType = "citizen_suit"
	// 升级阶段中混合多种渠道的行动
	ActionMixed ActionType = "mixed"
)

type ActionStatus string

const (
	ActionAvailable  ActionStatus = "available"
	ActionClaimed    ActionStatus = "claimed"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionVerified   ActionStatus = "verified"
	ActionExpired    ActionStatus = "expired"
)

type Action struct {
	ID               int64             `json:"id"`
	CampaignID       int64             `json:"campaignID"`
	ActionType       ActionType        `json:"actionType"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	TemplateName     *string           `json:"templateName"`
	TemplateVars     map[string]string `json:"templateVars"`
	EstimatedMinutes int32             `json:"estimatedMinutes"`
	Priority         int32             `json:"priority"` // 1 为最高，10 为最低
	Status           ActionStatus      `json:"status"`
	Deadline         *time.Time        `json:"deadline"`
	AssignedTo       *int64            `json:"assignedTo"`
	CompletedAt      *time.Time        `json:"completedAt"`
	VerificationURL  *string           `json:"verificationURL"`
	ImpactScore      *float64          `json:"impactScore"`
	CreatedAt        time.Time         `json:"createdAt"`
	Version          int32             `json:"-"`
}

// IsOverdue 判断行动是否已超过截止时间且尚未完成
func (a *Action) IsOverdue() bool {
	if a.Deadline == nil {
		return false
	}
	if a.Status == ActionCompleted || a.Status == ActionVerified {
		return false
	}
	return time.Now().After(*a.Deadline)
}
