package metrics

// MediaTier 表示媒体层级，1 为全国性媒体，数字越大覆盖面越小。
type MediaTier int

const (
	TierNational MediaTier = 1
	TierRegional MediaTier = 2
	TierLocal    MediaTier = 3
	TierTrade    MediaTier = 4
	TierBlog     MediaTier = 5
)

// MediaMention 是一次媒体提及的记录。
type MediaMention struct {
	Outlet    string    `json:"outlet"`
	Tier      MediaTier `json:"tier"`
	Date      string    `json:"date"`
	URL       string    `json:"url"`
	Sentiment string    `json:"sentiment"` // positive / neutral / negative
}

// MediaCoverage 是媒体声量的汇总。
type MediaCoverage struct {
	TotalMentions    int            `json:"totalMentions"`
	MediaImpactScore float64        `json:"mediaImpactScore"`
	ByTier           map[string]int `json:"byTier"`
}

var tierWeights = map[MediaTier]float64{
	TierNational: 10.0,
	TierRegional: 5.0,
	TierLocal:    3.0,
	TierTrade:    4.0,
	TierBlog:     1.0,
}

var sentimentMultipliers = map[string]float64{
	"positive": 1.5,
	"neutral":  1.0,
	"negative": 0.3,
}

var tierNames = map[MediaTier]string{
	TierNational: "national",
	TierRegional: "regional",
	TierLocal:    "local",
	TierTrade:    "trade",
	TierBlog:     "blog",
}

// MediaCoverageScore 根据媒体提及记录计算声量得分，层级权重乘以情绪系数后累加。
func MediaCoverageScore(mentions []MediaMention) *MediaCoverage {
	byTier := map[string]int{
		"national": 0,
		"regional": 0,
		"local":    0,
		"trade":    0,
		"blog":     0,
	}

	total := 0.0
	for _, mention := range mentions {
		weight, ok := tierWeights[mention.Tier]
		if !ok {
			weight = 1.0
		}
		multiplier, ok := sentimentMultipliers[mention.Sentiment]
		if !ok {
			multiplier = 1.0
		}
		total += weight * multiplier

		if name, ok := tierNames[mention.Tier]; ok {
			byTier[name]++
		} else {
			byTier["blog"]++
		}
	}

	return &MediaCoverage{
		TotalMentions:    len(mentions),
		MediaImpactScore: round1(total),
		ByTier:           byTier,
	}
}

// ResponseType 表示目标方对施压的回应类型。
type ResponseType string

const (
	ResponseNone              ResponseType = "no_response"
	ResponseFormLetter        ResponseType = "form_letter"
	ResponseMeetingOffer      ResponseType = "meeting_offer"
	ResponsePartialCommitment ResponseType = "partial_commitment"
	ResponsePublicStatement   ResponseType = "public_statement"
	ResponseFullCommitment    ResponseType = "full_commitment"
	ResponsePolicyChange      ResponseType = "policy_change"
)

var responseScores = map[ResponseType]int{
	ResponseNone:              0,
	ResponseFormLetter:        1,
	ResponseMeetingOffer:      3,
	ResponsePartialCommitment: 5,
	ResponsePublicStatement:   4,
	ResponseFullCommitment:    8,
	ResponsePolicyChange:      10,
}

// TargetResponse 是目标方一次回应的记录。
type TargetResponse struct {
	Date    string       `json:"date"`
	Type    ResponseType `json:"type"`
	Details string       `json:"details"`
}

// ResponseAnalysis 汇总目标方的回应情况以及回应质量的走向。
type ResponseAnalysis struct {
	TotalResponses     int          `json:"totalResponses"`
	EngagementScore    float64      `json:"engagementScore"`
	BestResponse       int          `json:"bestResponse"`
	Trajectory         string       `json:"trajectory"` // improving / degrading / flat / insufficient_data / none
	LatestResponseType ResponseType `json:"latestResponseType"`
}

// TrackResponses 分析目标方的回应记录，判断施压是否在起作用。
func TrackResponses(responses []TargetResponse) *ResponseAnalysis {
	if len(responses) == 0 {
		return &ResponseAnalysis{Trajectory: "none"}
	}

	scores := make([]int, 0, len(responses))
	best := 0
	sum := 0
	for _, response := range responses {
		score := responseScores[response.Type]
		scores = append(scores, score)
		sum += score
		if score > best {
			best = score
		}
	}

	trajectory := "insufficient_data"
	if len(scores) >= 2 {
		switch {
		case scores[len(scores)-1] > scores[0]:
			trajectory = "improving"
		case scores[len(scores)-1] < scores[0]:
			trajectory = "degrading"
		default:
			trajectory = "flat"
		}
	}

	return &ResponseAnalysis{
		TotalResponses:     len(responses),
		EngagementScore:    round1(float64(sum) / float64(len(scores))),
		BestResponse:       best,
		Trajectory:         trajectory,
		LatestResponseType: responses[len(responses)-1].Type,
	}
}
