package violationdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type ViolationStats struct {
	Total      int    `json:"total"`
	Critical   int    `json:"critical"`
	Recent12Mo int    `json:"recent12Mo"`
	Trend      string `json:"trend"` // worsening / improving / stable / unknown
}

type FacilityBrief struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	State           string   `json:"state"`
	ComplianceScore *float64 `json:"complianceScore"`
	ViolationCount  int      `json:"violationCount"`
}

// TargetProfile 是一家公司的运动目标画像，汇总违规历史、设施分布、脆弱度和建议的运动切入角度。
type TargetProfile struct {
	Company            string          `json:"company"`
	Facilities         int             `json:"facilities"`
	States             []string        `json:"states"`
	TotalAnimals       int64           `json:"totalAnimals"`
	Violations         ViolationStats  `json:"violations"`
	VulnerabilityScore float64         `json:"vulnerabilityScore"`
	SuggestedAngles    []string        `json:"suggestedAngles"`
	WorstFacilities    []FacilityBrief `json:"worstFacilities"`
}

func profileCacheKey(company string) string {
	return fmt.Sprintf("violation_profile_%s", strings.ToLower(company))
}

// BuildTargetProfile 为一家公司构建完整的目标画像。
// 画像会写入 redis 缓存，下游数据库的更新频率以天计，短期缓存不影响准确性。
func (c *Client) BuildTargetProfile(ctx context.Context, company string) (*TargetProfile, error) {
	if c.redisClient != nil {
		cached, err := c.redisClient.Get(ctx, profileCacheKey(company)).Result()
		if err == nil {
			var profile TargetProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	facilities, err := c.SearchFacilities(ctx, &FacilityFilter{Company: company, Limit: 100})
	if err != nil {
		return nil, err
	}
	violations, err := c.ListViolations(ctx, &ViolationFilter{Company: company, Limit: 500})
	if err != nil {
		return nil, err
	}

	profile := c.assembleProfile(company, facilities, violations)

	if c.redisClient != nil {
		if encoded, err := json.Marshal(profile); err == nil {
			// 缓存写入失败不影响主流程
			c.redisClient.Set(ctx, profileCacheKey(company), encoded, c.cacheTTL)
		}
	}

	return profile, nil
}

func (c *Client) assembleProfile(company string, facilities []*Facility, violations []*Violation) *TargetProfile {
	criticalCount := 0
	for _, violation := range violations {
		if violation.Severity == SeverityCritical {
			criticalCount++
		}
	}

	stateSet := make(map[string]bool)
	var totalAnimals int64
	for _, facility := range facilities {
		if facility.State != "" {
			stateSet[facility.State] = true
		}
		if facility.AnimalCount != nil {
			totalAnimals += *facility.AnimalCount
		}
	}
	states := make([]string, 0, len(stateSet))
	for state := range stateSet {
		states = append(states, state)
	}
	sort.Strings(states)

	// 近 12 个月与更早的违规数对比，判断趋势
	yearAgo := c.now().AddDate(-1, 0, 0)
	recentCount, olderCount := 0, 0
	for _, violation := range violations {
		if violation.Date.Before(yearAgo) {
			olderCount++
		} else {
			recentCount++
		}
	}
	trend := "unknown"
	if recentCount > 0 && olderCount > 0 {
		switch {
		case recentCount > olderCount:
			trend = "worsening"
		case recentCount < olderCount:
			trend = "improving"
		default:
			trend = "stable"
		}
	}

	vulnerability := calculateVulnerability(len(violations), criticalCount, len(states), trend)

	briefs := make([]FacilityBrief, 0, len(facilities))
	for _, facility := range facilities {
		briefs = append(briefs, FacilityBrief{
			ID:              facility.ID,
			Name:            facility.Name,
			State:           facility.State,
			ComplianceScore: facility.ComplianceScore,
			ViolationCount:  facility.ViolationCount,
		})
	}
	sort.SliceStable(briefs, func(i, j int) bool {
		return complianceOrDefault(briefs[i].ComplianceScore) < complianceOrDefault(briefs[j].ComplianceScore)
	})
	if len(briefs) > 5 {
		briefs = briefs[:5]
	}

	return &TargetProfile{
		Company:      company,
		Facilities:   len(facilities),
		States:       states,
		TotalAnimals: totalAnimals,
		Violations: ViolationStats{
			Total:      len(violations),
			Critical:   criticalCount,
			Recent12Mo: recentCount,
			Trend:      trend,
		},
		VulnerabilityScore: vulnerability,
		SuggestedAngles:    suggestCampaignAngles(violations, facilities, vulnerability),
		WorstFacilities:    briefs,
	}
}

func complianceOrDefault(score *float64) float64 {
	if score == nil {
		return 100
	}

	return *score
}

// calculateVulnerability 计算 1-10 的脆弱度评分，分数越高越容易被运动施压撬动：
// 违规越多可引用的证据越多，严重违规强化监管角度，跨州经营意味着更多可投诉的辖区，
// 趋势恶化则说明问题是系统性的。
func calculateVulnerability(totalViolations, criticalCount, stateCount int, trend string) float64 {
	score := 5.0

	switch {
	case totalViolations >= 50:
		score += 2.0
	case totalViolations >= 20:
		score += 1.0
	case totalViolations < 5:
		score -= 1.0
	}

	switch {
	case criticalCount >= 10:
		score += 1.5
	case criticalCount >= 3:
		score += 0.5
	}

	switch {
	case stateCount >= 10:
		score += 1.0
	case stateCount >= 5:
		score += 0.5
	}

	switch trend {
	case "worsening":
		score += 1.0
	case "improving":
		score -= 0.5
	}

	return max(1.0, min(10.0, score))
}

// 违规类型字段来自英文数据源，按英文关键词归类
var angleKeywords = []struct {
	terms  []string
	format string
}{
	{
		terms:  []string{"water", "air", "waste", "pollution", "discharge", "runoff"},
		format: "环境角度：%d 起环境类违规，存在依据清洁水法 / 清洁空气法提起公民诉讼的空间。",
	},
	{
		terms:  []string{"safety", "osha", "injury", "worker"},
		format: "劳工安全角度：%d 起安全类违规，可以与劳工组织结成联盟。",
	},
	{
		terms:  []string{"animal", "welfare", "cruelty", "humane", "handling"},
		format: "动物福利角度：%d 起福利类违规，适合直接公众施压和媒体曝光。",
	},
}

// suggestCampaignAngles 根据违规构成和设施分布给出运动切入角度。
func suggestCampaignAngles(violations []*Violation, facilities []*Facility, vulnerability float64) []string {
	var angles []string

	for _, rule := range angleKeywords {
		count := 0
		for _, violation := range violations {
			violationType := strings.ToLower(violation.ViolationType)
			for _, term := range rule.terms {
				if strings.Contains(violationType, term) {
					count++
					break
				}
			}
		}
		if count > 0 {
			angles = append(angles, fmt.Sprintf(rule.format, count))
		}
	}

	// 同一个州有 3 个以上设施时，州级监管运动可行
	stateCounts := make(map[string]int)
	for _, facility := range facilities {
		if facility.State != "" {
			stateCounts[facility.State]++
		}
	}
	var concentrated []string
	for state, count := range stateCounts {
		if count >= 3 {
			concentrated = append(concentrated, state)
		}
	}
	sort.Strings(concentrated)
	if len(concentrated) > 0 {
		angles = append(angles, fmt.Sprintf("地域聚焦：设施集中在 %s，州级监管运动可行。", strings.Join(concentrated, "、")))
	}

	if vulnerability >= 7 {
		angles = append(angles, "脆弱度评分高，消费者与品牌施压运动最有可能奏效。")
	}

	if len(angles) == 0 {
		angles = append(angles, "数据不足以给出针对性建议，先从公开情报调查入手积累证据。")
	}

	return angles
}
