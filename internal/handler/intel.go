package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/violationdb"
)

// GetRepeatOffenders 查询外部违规数据库里的惯犯企业
func (h *Handler) GetRepeatOffenders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minViolations := 0
	if param := query.Get("minViolations"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "最小违规次数无效")
			return
		}
		minViolations = parsed
	}

	periodMonths := 0
	if param := query.Get("periodMonths"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "统计周期无效")
			return
		}
		periodMonths = parsed
	}

	offenders, err := h.violationDB.RepeatOffenders(r.Context(), minViolations, periodMonths, query.Get("state"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取惯犯列表成功", offenders)
}

func (h *Handler) GetRecentCriticalViolations(w http.ResponseWriter, r *http.Request) {
	days := 0
	if param := r.URL.Query().Get("days"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "天数无效")
			return
		}
		days = parsed
	}

	violations, err := h.violationDB.RecentCritical(r.Context(), days, r.URL.Query().Get("state"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取近期严重违规成功", violations)
}

// GetTargetProfile 为指定企业生成施压情报画像，结果会在 redis 中缓存
func (h *Handler) GetTargetProfile(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		h.errorResponse(w, r, "企业名称不能为空")
		return
	}

	profile, err := h.violationDB.BuildTargetProfile(r.Context(), company)
	if err != nil {
		switch {
		case errors.Is(err, violationdb.ErrUnexpectedStatus):
			h.errorResponse(w, r, "违规数据库暂时不可用，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取目标画像成功", profile)
}
