package violationdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildTargetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/facilities":
			w.Write([]byte(`{"facilities": [
				{"id": "f1", "name": "一号场", "state": "NC", "compliance_score": 20, "violation_count": 8, "animal_count": 100000},
				{"id": "f2", "name": "二号场", "state": "NC", "compliance_score": 50, "violation_count": 3, "animal_count": 50000},
				{"id": "f3", "name": "三号场", "state": "NC", "violation_count": 1},
				{"id": "f4", "name": "四号场", "state": "IA", "compliance_score": 80, "violation_count": 0, "animal_count": 20000}
			]}`))
		case "/api/violations":
			w.Write([]byte(`{"violations": [
				{"id": "v1", "violation_type": "water discharge", "severity": "critical", "date": "2026-05-20"},
				{"id": "v2", "violation_type": "waste runoff", "severity": "critical", "date": "2026-03-01"},
				{"id": "v3", "violation_type": "worker safety", "severity": "critical", "date": "2025-12-10"},
				{"id": "v4", "violation_type": "animal welfare", "severity": "major", "date": "2025-08-01"},
				{"id": "v5", "violation_type": "permit lapse", "severity": "minor", "date": "2024-06-01"},
				{"id": "v6", "violation_type": "permit lapse", "severity": "minor", "date": "2024-01-15"}
			]}`))
		default:
			t.Errorf("意外的请求路径: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	profile, err := client.BuildTargetProfile(context.Background(), "Hovine Foods")
	if err != nil {
		t.Fatalf("构建画像不应失败: %v", err)
	}

	if profile.Facilities != 4 || profile.TotalAnimals != 170000 {
		t.Errorf("设施汇总不正确: %+v", profile)
	}
	if len(profile.States) != 2 || profile.States[0] != "IA" || profile.States[1] != "NC" {
		t.Errorf("州列表应排序: %v", profile.States)
	}

	if profile.Violations.Total != 6 || profile.Violations.Critical != 3 {
		t.Errorf("违规统计不正确: %+v", profile.Violations)
	}
	// 近 12 个月 4 起, 更早 2 起
	if profile.Violations.Recent12Mo != 4 || profile.Violations.Trend != "worsening" {
		t.Errorf("趋势判断不正确: %+v", profile.Violations)
	}

	// 基线 5.0 + 严重违规 0.5 + 趋势恶化 1.0
	if profile.VulnerabilityScore != 6.5 {
		t.Errorf("脆弱度评分应为 6.5, 实际为 %v", profile.VulnerabilityScore)
	}

	if len(profile.WorstFacilities) != 4 || profile.WorstFacilities[0].ID != "f1" {
		t.Errorf("最差设施应按合规分升序: %+v", profile.WorstFacilities)
	}
	// 没有合规分的设施按 100 处理, 排在最后
	if profile.WorstFacilities[3].ID != "f3" {
		t.Errorf("无合规分的设施应排在最后: %+v", profile.WorstFacilities)
	}

	if len(profile.SuggestedAngles) != 4 {
		t.Fatalf("应给出 4 个切入角度: %v", profile.SuggestedAngles)
	}
	if !strings.Contains(profile.SuggestedAngles[0], "环境角度") || !strings.Contains(profile.SuggestedAngles[0], "2 起") {
		t.Errorf("环境角度不正确: %s", profile.SuggestedAngles[0])
	}
	if !strings.Contains(profile.SuggestedAngles[3], "NC") {
		t.Errorf("地域聚焦应指向 NC: %s", profile.SuggestedAngles[3])
	}
}

func TestBuildTargetProfileNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/facilities":
			w.Write([]byte(`{"facilities": []}`))
		case "/api/violations":
			w.Write([]byte(`{"violations": []}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	profile, err := client.BuildTargetProfile(context.Background(), "无名公司")
	if err != nil {
		t.Fatalf("构建画像不应失败: %v", err)
	}

	if profile.Violations.Trend != "unknown" {
		t.Errorf("无数据时趋势应为 unknown, 实际为 %s", profile.Violations.Trend)
	}
	// 基线 5.0 - 违规少于 5 起扣 1.0
	if profile.VulnerabilityScore != 4.0 {
		t.Errorf("脆弱度评分应为 4.0, 实际为 %v", profile.VulnerabilityScore)
	}
	if len(profile.SuggestedAngles) != 1 || !strings.Contains(profile.SuggestedAngles[0], "公开情报") {
		t.Errorf("无数据时应建议先做公开情报调查: %v", profile.SuggestedAngles)
	}
}

func TestCalculateVulnerability(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		critical  int
		states    int
		trend     string
		wantScore float64
	}{
		{"违规极多且在恶化", 60, 12, 11, "worsening", 10.0}, // 5+2+1.5+1+1 封顶
		{"中等规模", 25, 4, 6, "stable", 7.0},           // 5+1+0.5+0.5
		{"记录良好且在改善", 2, 0, 1, "improving", 3.5},      // 5-1-0.5
		{"无数据", 0, 0, 0, "unknown", 4.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateVulnerability(tc.total, tc.critical, tc.states, tc.trend)
			if got != tc.wantScore {
				t.Errorf("脆弱度评分应为 %v, 实际为 %v", tc.wantScore, got)
			}
		})
	}
}

func TestProfileCacheRoundTrip(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Path {
		case "/api/facilities":
			w.Write([]byte(`{"facilities": []}`))
		case "/api/violations":
			w.Write([]byte(`{"violations": []}`))
		}
	}))
	defer server.Close()

	// 未配置 redis 时每次都重新构建
	client := newTestClient(server)
	if _, err := client.BuildTargetProfile(context.Background(), "无名公司"); err != nil {
		t.Fatalf("构建画像不应失败: %v", err)
	}
	if _, err := client.BuildTargetProfile(context.Background(), "无名公司"); err != nil {
		t.Fatalf("构建画像不应失败: %v", err)
	}
	if requests != 4 {
		t.Errorf("两次构建应发起 4 次请求, 实际为 %d", requests)
	}
}
