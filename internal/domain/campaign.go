package domain

import "time"

type CampaignType string

const (
	CampaignCorporate     CampaignType = "corporate"
	CampaignLegislative   CampaignType = "legislative"
	CampaignRegulatory    CampaignType = "regulatory"
	CampaignInvestigation CampaignType = "investigation"
	CampaignCultural      CampaignType = "cultural"
)

// Channel: 施压渠道，运动模板用它声明会动用哪些渠道
type Channel string

const (
	ChannelEmail       Channel = "email"
	ChannelPhone       Channel = "phone"
	ChannelSocialMedia Channel = "social_media"
	ChannelShareholder Channel = "shareholder"
	ChannelConsumer    Channel = "consumer"
	ChannelMedia       Channel = "media"
	ChannelGrassroots  Channel = "grassroots"
	ChannelRegulatory  Channel = "regulatory"
	ChannelLegal       Channel = "legal"
)

type CampaignStatus string

const (
	StatusDraft      CampaignStatus = "draft"
	StatusPlanning   CampaignStatus = "planning"
	StatusActive     CampaignStatus = "active"
	StatusEscalating CampaignStatus = "escalating"
	StatusPaused     CampaignStatus = "paused"
	StatusWon        CampaignStatus = "won"
	StatusLost       CampaignStatus = "lost"
	StatusArchived   CampaignStatus = "archived"
)

// Phase: 升级阶梯中的一个阶段，阶段按 PhaseNumber 升序执行
type Phase struct {
	PhaseNumber   int32    `json:"phaseNumber"`
	Name          string   `json:"name"`
	DurationWeeks int32    `json:"durationWeeks"`
	Tactics       []string `json:"tactics"`
	WinTrigger    string   `json:"winTrigger"`
}

type Campaign struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	CampaignType  CampaignType   `json:"campaignType"`
	TargetSummary string         `json:"targetSummary"`
	Goal          string         `json:"goal"`
	Status        CampaignStatus `json:"status"`
	Channels      []Channel      `json:"channels"`
	Tactics       []string       `json:"tactics"`
	Phases        []Phase        `json:"phases"`
	WinConditions []string       `json:"winConditions"`
	StartDate     *time.Time     `json:"startDate"`
	Deadline      *time.Time     `json:"deadline"`
	CreatedAt     time.Time      `json:"createdAt"`
	Version       int32          `json:"-"`
}

// CompletionPct 计算已完成行动的百分比
func (c *Campaign) CompletionPct(actions []*Action) float64 {
	if len(actions) == 0 {
		return 0.0
	}
	completed := 0
	for _, a := range actions {
		if a.Status == ActionCompleted || a.Status == ActionVerified {
			completed++
		}
	}
	return float64(int(float64(completed)/float64(len(actions))*1000)) / 10
}
