// Package violationdb 对接外部的工厂化养殖违规数据库，
// 把违规记录和设施档案转化为运动选目标时的依据：最恶劣的违规者就是最优先的目标。
package violationdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrFacilityNotFound = errors.New("设施不存在")
	ErrUnexpectedStatus = errors.New("违规数据库返回了意外的状态码")
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// redisClient 为 nil 时不做缓存
	redisClient *redis.Client
	cacheTTL    time.Duration

	now func() time.Time
}

func NewClient(baseURL, apiKey string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: timeout},
		redisClient: rdb,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrFacilityNotFound
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ViolationFilter 是违规查询的过滤条件，零值字段不参与过滤。
type ViolationFilter struct {
	Company  string
	State    string
	Severity Severity
	Since    *time.Time
	Limit    int
	Offset   int
}

// ListViolations 按过滤条件查询违规记录。
func (c *Client) ListViolations(ctx context.Context, filter *ViolationFilter) ([]*Violation, error) {
	if filter == nil {
		filter = &ViolationFilter{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(filter.Offset))
	if filter.Company != "" {
		query.Set("company", filter.Company)
	}
	if filter.State != "" {
		query.Set("state", filter.State)
	}
	if filter.Severity != "" {
		query.Set("severity", string(filter.Severity))
	}
	if filter.Since != nil {
		query.Set("since", filter.Since.Format(time.DateOnly))
	}

	var payload struct {
		Violations []*Violation `json:"violations"`
	}
	if err := c.get(ctx, "/api/violations", query, &payload); err != nil {
		return nil, fmt.Errorf("查询违规记录失败: %w", err)
	}

	return payload.Violations, nil
}

// RepeatOffenders 查询指定时间段内违规次数最多的公司和设施。
// 重复违规说明问题是系统性的，这类公司是最优先的运动目标。
func (c *Client) RepeatOffenders(ctx context.Context, minViolations, periodMonths int, state string) ([]*Offender, error) {
	if minViolations <= 0 {
		minViolations = 5
	}
	if periodMonths <= 0 {
		periodMonths = 24
	}
	since := c.now().AddDate(0, 0, -periodMonths*30)

	query := url.Values{}
	query.Set("min_violations", strconv.Itoa(minViolations))
	query.Set("since", since.Format(time.DateOnly))
	if state != "" {
		query.Set("state", state)
	}

	var payload struct {
		Offenders []*Offender `json:"offenders"`
	}
	if err := c.get(ctx, "/api/violations/repeat-offenders", query, &payload); err != nil {
		return nil, fmt.Errorf("查询重复违规者失败: %w", err)
	}

	return payload.Offenders, nil
}

// RecentCritical 查询近期的严重违规。
// 新近的严重违规有新闻价值，且监管机构此时更可能受理投诉，是发起运动的好时机。
func (c *Client) RecentCritical(ctx context.Context, days int, state string) ([]*Violation, error) {
	if days <= 0 {
		days = 30
	}
	since := c.now().AddDate(0, 0, -days)

	return c.ListViolations(ctx, &ViolationFilter{
		Severity: SeverityCritical,
		Since:    &since,
		State:    state,
		Limit:    50,
	})
}

// GetFacility 查询单个设施的详细信息，包括违规历史。设施不存在时返回 ErrFacilityNotFound。
func (c *Client) GetFacility(ctx context.Context, facilityID string) (*Facility, error) {
	var facility Facility
	if err := c.get(ctx, "/api/facilities/"+url.PathEscape(facilityID), nil, &facility); err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("查询设施失败: %w", err)
	}

	return &facility, nil
}

// FacilityFilter 是设施搜索的过滤条件。
// MaxComplianceScore 用来筛选最差的设施：低于 30 为严重失规，30-60 为中等，60 以上算相对合规。
type FacilityFilter struct {
	Company            string
	State              string
	FacilityType       FacilityType
	Species            string
	MaxComplianceScore *float64
	Limit              int
}

// SearchFacilities 按过滤条件搜索设施。
func (c *Client) SearchFacilities(ctx context.Context, filter *FacilityFilter) ([]*Facility, error) {
	if filter == nil {
		filter = &FacilityFilter{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if filter.Company != "" {
		query.Set("company", filter.Company)
	}
	if filter.State != "" {
		query.Set("state", filter.State)
	}
	if filter.FacilityType != "" {
		query.Set("facility_type", string(filter.FacilityType))
	}
	if filter.Species != "" {
		query.Set("species", filter.Species)
	}
	if filter.MaxComplianceScore != nil {
		query.Set("max_compliance_score", strconv.FormatFloat(*filter.MaxComplianceScore, 'f', -1, 64))
	}

	var payload struct {
		Facilities []*Facility `json:"facilities"`
	}
	if err := c.get(ctx, "/api/facilities", query, &payload); err != nil {
		return nil, fmt.Errorf("搜索设施失败: %w", err)
	}

	return payload.Facilities, nil
}

// FacilitiesNear 查询某个坐标附近的设施，用于社区组织。
func (c *Client) FacilitiesNear(ctx context.Context, latitude, longitude, radiusMiles float64, limit int) ([]*Facility, error) {
	if radiusMiles <= 0 {
		radiusMiles = 50
	}
	if limit <= 0 {
		limit = 20
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("radius", strconv.FormatFloat(radiusMiles, 'f', -1, 64))
	query.Set("limit", strconv.Itoa(limit))

	var payload struct {
		Facilities []*Facility `json:"facilities"`
	}
	if err := c.get(ctx, "/api/facilities/nearby", query, &payload); err != nil {
		return nil, fmt.Errorf("查询附近设施失败: %w", err)
	}

	return payload.Facilities, nil
}
