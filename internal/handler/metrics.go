package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
)

func (h *Handler) GetCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	actions, err := h.repository.GetActions(repository.ActionFilter{CampaignID: &campaign.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取运动指标成功", metrics.ComputeCampaignMetrics(campaign, actions, time.Now()))
}

// GetCampaignROI 计算运动的投入产出比，已记录的具体成果通过请求体传入
func (h *Handler) GetCampaignROI(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	var req struct {
		Outcomes []metrics.Outcome `json:"outcomes"`
	}

	// 没有记录到具体成果时允许空请求体
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	actions, err := h.repository.GetActions(repository.ActionFilter{CampaignID: &campaign.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "计算投入产出比成功", metrics.ComputeCampaignROI(campaign, actions, req.Outcomes, time.Now()))
}

func (h *Handler) ProjectCampaignImpact(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	var req struct {
		AdditionalHours float64            `json:"additionalHours" validate:"required,gt=0"`
		FocusType       *domain.ActionType `json:"focusType"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actions, err := h.repository.GetActions(repository.ActionFilter{CampaignID: &campaign.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "推算追加投入的产出成功", metrics.ProjectImpact(actions, req.AdditionalHours, req.FocusType))
}

// CompareCampaigns 对多个运动的指标做横向对比，按影响力降序返回
func (h *Handler) CompareCampaigns(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignIDs []int64 `json:"campaignIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	campaignsWithActions := make(map[*domain.Campaign][]*domain.Action, len(req.CampaignIDs))
	for _, campaignID := range req.CampaignIDs {
		campaign, err := h.repository.GetCampaignByID(campaignID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "运动不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		actions, err := h.repository.GetActions(repository.ActionFilter{CampaignID: &campaign.ID})
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		campaignsWithActions[campaign] = actions
	}

	h.successResponse(w, r, "运动对比成功", metrics.CompareCampaigns(campaignsWithActions, time.Now()))
}

func (h *Handler) ScoreMediaCoverage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mentions []metrics.MediaMention `json:"mentions"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "计算媒体声量成功", metrics.MediaCoverageScore(req.Mentions))
}

func (h *Handler) TrackTargetResponses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Responses []metrics.TargetResponse `json:"responses"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "分析目标回应成功", metrics.TrackResponses(req.Responses))
}
