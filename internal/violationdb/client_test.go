package violationdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient(server.URL, "test-key", 5*time.Second, nil, time.Hour)
	client.now = func() time.Time {
		return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return client
}

func TestListViolations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/violations" {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("缺少认证头: %q", r.Header.Get("Authorization"))
		}
		query := r.URL.Query()
		if query.Get("company") != "Hovine Foods" || query.Get("severity") != "critical" {
			t.Errorf("查询参数不正确: %v", query)
		}
		if query.Get("limit") != "10" || query.Get("offset") != "20" {
			t.Errorf("分页参数不正确: %v", query)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"violations": [
			{"id": "v1", "facility_id": "f1", "facility_name": "一号场", "company": "Hovine Foods",
			 "violation_type": "water discharge", "severity": "critical", "description": "未经处理的废水直排",
			 "date": "2026-05-20", "fine_amount": 25000, "state": "NC"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	violations, err := client.ListViolations(context.Background(), &ViolationFilter{
		Company:  "Hovine Foods",
		Severity: SeverityCritical,
		Limit:    10,
		Offset:   20,
	})
	if err != nil {
		t.Fatalf("查询不应失败: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("应返回 1 条违规, 实际为 %d", len(violations))
	}

	violation := violations[0]
	if violation.ID != "v1" || violation.Severity != SeverityCritical {
		t.Errorf("违规记录解析不正确: %+v", violation)
	}
	if !violation.Date.Equal(time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("日期解析不正确: %v", violation.Date)
	}
	if violation.FineAmount == nil || *violation.FineAmount != 25000 {
		t.Errorf("罚款金额解析不正确: %v", violation.FineAmount)
	}
}

func TestRecentCritical(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("severity") != "critical" {
			t.Errorf("严重度参数不正确: %v", query)
		}
		// 注入的当前时间往前推 30 天
		if query.Get("since") != "2026-05-02" {
			t.Errorf("起始日期不正确: %s", query.Get("since"))
		}
		w.Write([]byte(`{"violations": []}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	if _, err := client.RecentCritical(context.Background(), 30, ""); err != nil {
		t.Fatalf("查询不应失败: %v", err)
	}
}

func TestGetFacility(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/facilities/f1" {
			w.Write([]byte(`{"id": "f1", "name": "一号场", "company": "Hovine Foods",
				"facility_type": "cafo", "state": "NC", "animal_count": 120000,
				"violation_count": 12, "compliance_score": 22.5, "last_inspection": "2026-04-01"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server)

	facility, err := client.GetFacility(context.Background(), "f1")
	if err != nil {
		t.Fatalf("查询不应失败: %v", err)
	}
	if facility.FacilityType != FacilityCAFO || facility.ViolationCount != 12 {
		t.Errorf("设施解析不正确: %+v", facility)
	}
	if facility.LastInspection == nil || facility.LastInspection.Format(time.DateOnly) != "2026-04-01" {
		t.Errorf("最近检查日期解析不正确: %v", facility.LastInspection)
	}

	if _, err := client.GetFacility(context.Background(), "missing"); !errors.Is(err, ErrFacilityNotFound) {
		t.Errorf("不存在的设施应返回 ErrFacilityNotFound, 实际为 %v", err)
	}
}

func TestRepeatOffenders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("min_violations") != "5" {
			t.Errorf("最小违规数参数不正确: %v", query)
		}
		// 24 个月按每月 30 天折算
		if query.Get("since") != "2024-06-11" {
			t.Errorf("起始日期不正确: %s", query.Get("since"))
		}
		w.Write([]byte(`{"offenders": [
			{"company": "Hovine Foods", "violation_count": 37, "critical_count": 9, "state": "NC"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	offenders, err := client.RepeatOffenders(context.Background(), 5, 24, "")
	if err != nil {
		t.Fatalf("查询不应失败: %v", err)
	}
	if len(offenders) != 1 || offenders[0].ViolationCount != 37 {
		t.Errorf("重复违规者解析不正确: %+v", offenders)
	}
}

func TestClientUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)
	if _, err := client.ListViolations(context.Background(), nil); !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("5xx 响应应返回 ErrUnexpectedStatus, 实际为 %v", err)
	}
}
