package violationdb

import (
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

type FacilityType string

const (
	FacilityCAFO           FacilityType = "cafo"
	FacilitySlaughterhouse FacilityType = "slaughterhouse"
	FacilityProcessing     FacilityType = "processing"
	FacilityFeedlot        FacilityType = "feedlot"
)

// Date 是违规数据库使用的纯日期，JSON 表示为 2006-01-02。
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return err
	}

	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// Violation 是违规数据库中的一条违规记录
type Violation struct {
	ID               string   `json:"id"`
	FacilityID       string   `json:"facility_id"`
	FacilityName     string   `json:"facility_name"`
	Company          string   `json:"company"`
	ViolationType    string   `json:"violation_type"`
	Severity         Severity `json:"severity"`
	Description      string   `json:"description"`
	Date             Date     `json:"date"`
	Inspector        *string  `json:"inspector"`
	Statute          *string  `json:"statute"`
	FineAmount       *float64 `json:"fine_amount"`
	CorrectiveAction *string  `json:"corrective_action"`
	Status           string   `json:"status"` // open / resolved / contested
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	State            *string  `json:"state"`
	SourceURL        *string  `json:"source_url"`
}

// Facility 是一个设施及其违规历史
type Facility struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Company         string       `json:"company"`
	FacilityType    FacilityType `json:"facility_type"`
	Address         string       `json:"address"`
	State           string       `json:"state"`
	Latitude        *float64     `json:"latitude"`
	Longitude       *float64     `json:"longitude"`
	AnimalCount     *int64       `json:"animal_count"`
	Species         []string     `json:"species"`
	Permits         []string     `json:"permits"`
	Violations      []*Violation `json:"violations"`
	ViolationCount  int          `json:"violation_count"`
	LastInspection  *Date        `json:"last_inspection"`
	ComplianceScore *float64     `json:"compliance_score"` // 0-100，越低越差
}

// Offender 是重复违规者的汇总条目
type Offender struct {
	Company        string  `json:"company"`
	FacilityID     string  `json:"facility_id"`
	FacilityName   string  `json:"facility_name"`
	State          string  `json:"state"`
	ViolationCount int     `json:"violation_count"`
	CriticalCount  int     `json:"critical_count"`
	TotalFines     float64 `json:"total_fines"`
}
