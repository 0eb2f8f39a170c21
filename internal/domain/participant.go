package domain

import "time"

type Role string

const (
	RoleVolunteer Role = "志愿者"
	RoleOrganizer Role = "组织者"
	RoleAdmin     Role = "管理员"
)

type Participant struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Role         Role     `json:"role"`
	Skills       []string `json:"skills"`
	// 每周可投入的分钟数，用于行动推荐
	AvailabilityMinutesPerWeek int32      `json:"availabilityMinutesPerWeek"`
	ActionsCompleted           int32      `json:"actionsCompleted"`
	ActionsVerified            int32      `json:"actionsVerified"`
	TotalImpactScore           float64    `json:"totalImpactScore"`
	IsActive                   bool       `json:"isActive"`
	JoinedAt                   time.Time  `json:"joinedAt"`
	LastActive                 *time.Time `json:"lastActive"`
	Version                    int32      `json:"-"`
}

// ReliabilityScore 计算志愿者的可靠度（已验证行动占已完成行动的比例）
func (p *Participant) ReliabilityScore() float64 {
	if p.ActionsCompleted == 0 {
		return 0.5 // 新志愿者给中性分数
	}
	score := float64(p.ActionsVerified) / float64(p.ActionsCompleted)
	if score > 1.0 {
		return 1.0
	}
	return score
}
