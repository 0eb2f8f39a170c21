package generator

import (
	"strings"
	"testing"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func testCampaign(status domain.CampaignStatus) *domain.Campaign {
	return &domain.Campaign{
		ID:            1,
		Name:          "测试运动",
		Slug:          "ce-shi-yun-dong",
		TargetSummary: "某集团",
		Goal:          "改变采购政策",
		Status:        status,
		Tactics: []string{
			string(domain.ActionEmail),
			string(domain.ActionPhoneCall),
			string(domain.ActionSocialPost),
			string(domain.ActionReview),
		},
	}
}

func TestGetTimeTier(t *testing.T) {
	cases := []struct {
		minutes int32
		want    TimeTier
	}{
		{3, TierQuick},
		{5, TierQuick},
		{6, TierShort},
		{15, TierShort},
		{30, TierMedium},
		{31, TierLong},
		{240, TierLong},
	}
	for _, c := range cases {
		if got := GetTimeTier(c.minutes); got != c.want {
			t.Errorf("GetTimeTier(%d) 期望 %s, 实际 %s", c.minutes, c.want, got)
		}
	}
}

func TestGenerateForTime(t *testing.T) {
	campaign := testCampaign(domain.StatusActive)

	specs := GenerateForTime(campaign, 15, nil, nil, 10)
	if len(specs) == 0 {
		t.Fatal("期望生成若干行动, 实际为空")
	}

	seen := make(map[domain.ActionType]bool)
	for _, spec := range specs {
		seen[spec.ActionType] = true
		if spec.EstimatedMinutes > 15 {
			t.Errorf("行动 %s 超出时间预算: %d 分钟", spec.ActionType, spec.EstimatedMinutes)
		}
	}
	// 15 分钟档位内运动声明过的类型都应出现
	for _, want := range []domain.ActionType{domain.ActionEmail, domain.ActionPhoneCall, domain.ActionSocialPost, domain.ActionReview} {
		if !seen[want] {
			t.Errorf("期望出现行动类型 %s: %v", want, seen)
		}
	}

	// 结果按优先级升序
	for i := 1; i < len(specs); i++ {
		if specs[i].Priority < specs[i-1].Priority {
			t.Errorf("结果未按优先级排序: %d 之后是 %d", specs[i-1].Priority, specs[i].Priority)
		}
	}
}

func TestGenerateForTimeRespectsSkills(t *testing.T) {
	campaign := testCampaign(domain.StatusActive)
	participant := &domain.Participant{Skills: []string{"social_media"}}

	specs := GenerateForTime(campaign, 15, nil, participant, 10)
	for _, spec := range specs {
		if spec.ActionType == domain.ActionEmail {
			t.Error("志愿者不具备写作技能, 不应生成邮件行动")
		}
	}

	seen := false
	for _, spec := range specs {
		if spec.ActionType == domain.ActionSocialPost {
			seen = true
		}
	}
	if !seen {
		t.Error("具备社交媒体技能, 应生成社交帖行动")
	}
}

func TestGenerateForTimeWithTargets(t *testing.T) {
	campaign := testCampaign(domain.StatusActive)
	targets := []*domain.Target{
		{Name: "目标一", Contacts: map[string]string{"phone": "010-1234"}},
		{Name: "目标二"},
		{Name: "目标三"},
		{Name: "目标四"},
	}

	specs := GenerateForTime(campaign, 5, targets, nil, 100)
	// 5 分钟档位: 电话和社交帖, 但社交帖要 10 分钟, 只剩电话; 每种类型最多取前三个目标
	if len(specs) != 3 {
		t.Fatalf("期望 3 个行动, 实际 %d 个", len(specs))
	}
	for _, spec := range specs {
		if spec.ActionType != domain.ActionPhoneCall {
			t.Errorf("5 分钟内只放得下电话, 实际生成 %s", spec.ActionType)
		}
	}
	if !strings.Contains(specs[0].Description, "010-1234") {
		t.Errorf("描述应填入目标电话: %s", specs[0].Description)
	}
	if specs[0].TemplateVars["target_name"] == "" {
		t.Errorf("模板变量缺少目标姓名: %v", specs[0].TemplateVars)
	}
}

func TestGenerateForTimeMaxActions(t *testing.T) {
	campaign := testCampaign(domain.StatusActive)
	specs := GenerateForTime(campaign, 120, nil, nil, 2)
	if len(specs) > 2 {
		t.Errorf("期望最多 2 个行动, 实际 %d 个", len(specs))
	}
}

func TestGenerateForTimePriority(t *testing.T) {
	// 升级中的运动 + 软弱度高的目标 + 高影响力类型, 优先级应压到最高
	campaign := testCampaign(domain.StatusEscalating)
	campaign.Tactics = []string{string(domain.ActionTestimony)}
	target := &domain.Target{Name: "目标", VulnerabilityScore: 9}

	specs := GenerateForTime(campaign, 240, []*domain.Target{target}, nil, 10)
	if len(specs) == 0 {
		t.Fatal("期望生成证词行动")
	}
	if specs[0].Priority != 1 {
		t.Errorf("优先级期望 1, 实际 %d", specs[0].Priority)
	}
}

func TestActionFromSpec(t *testing.T) {
	campaign := testCampaign(domain.StatusActive)
	specs := GenerateForTime(campaign, 15, nil, nil, 1)
	if len(specs) == 0 {
		t.Fatal("期望至少一个行动规格")
	}

	action := ActionFromSpec(specs[0], 42)
	if action.CampaignID != 42 {
		t.Errorf("行动应归属运动 42, 实际 %d", action.CampaignID)
	}
	if action.Status != domain.ActionAvailable {
		t.Errorf("新行动状态期望 available, 实际 %s", action.Status)
	}
	if action.Title != specs[0].Title {
		t.Errorf("标题不一致: %s != %s", action.Title, specs[0].Title)
	}
}

func TestSuggestNextAction(t *testing.T) {
	participant := &domain.Participant{AvailabilityMinutesPerWeek: 15, Skills: []string{"writing"}}

	active := testCampaign(domain.StatusActive)
	draft := testCampaign(domain.StatusDraft)

	if spec := SuggestNextAction(participant, []*domain.Campaign{draft}); spec != nil {
		t.Errorf("草稿运动不应产生推荐, 实际得到 %v", spec.ActionType)
	}

	spec := SuggestNextAction(participant, []*domain.Campaign{draft, active})
	if spec == nil {
		t.Fatal("期望得到一个推荐")
	}
	// 15 分钟档位里邮件是影响力最高的类型
	if spec.ActionType != domain.ActionEmail {
		t.Errorf("推荐期望邮件行动, 实际 %s", spec.ActionType)
	}
}

func TestFillDescriptionKeepsUnknownPlaceholders(t *testing.T) {
	out := fillDescription("联系 {target_name}，案卷 {docket_number}", map[string]string{"target_name": "张三"})
	if !strings.Contains(out, "张三") {
		t.Errorf("已知占位符应被填充: %s", out)
	}
	if !strings.Contains(out, "{docket_number}") {
		t.Errorf("未知占位符应原样保留: %s", out)
	}
}
