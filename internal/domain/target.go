package domain

import "time"

type TargetType string

const (
	TargetCorporation TargetType = "corporation"
	TargetExecutive   TargetType = "executive"
	TargetLegislator  TargetType = "legislator"
	TargetRegulator   TargetType = "regulator"
	TargetFacility    TargetType = "facility"
	TargetBrand       TargetType = "brand"
	TargetInvestor    TargetType = "investor"
)

type Target struct {
	ID             int64             `json:"id"`
	CampaignID     int64             `json:"campaignID"`
	Name           string            `json:"name"`
	TargetType     TargetType        `json:"targetType"`
	Organization   *string           `json:"organization"`
	TitleRole      *string           `json:"titleRole"`
	Contacts       map[string]string `json:"contacts"`       // email / phone / address / assistant
	SocialAccounts map[string]string `json:"socialAccounts"` // twitter / linkedin / instagram
	// 1-10，越高表示越容易被施压成功
	VulnerabilityScore   float64            `json:"vulnerabilityScore"`
	VulnerabilityFactors map[string]float64 `json:"vulnerabilityFactors"`
	Notes                *string            `json:"notes"`
	CreatedAt            time.Time          `json:"createdAt"`
	Version              int32              `json:"-"`
}
