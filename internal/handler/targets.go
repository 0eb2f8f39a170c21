package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

func (h *Handler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID           int64              `json:"campaignID" validate:"required,gt=0"`
		Name                 string             `json:"name" validate:"required"`
		TargetType           string             `json:"targetType" validate:"required,oneof=corporation executive legislator regulator facility brand investor"`
		Organization         *string            `json:"organization"`
		TitleRole            *string            `json:"titleRole"`
		Contacts             map[string]string  `json:"contacts"`
		SocialAccounts       map[string]string  `json:"socialAccounts"`
		VulnerabilityScore   float64            `json:"vulnerabilityScore" validate:"gte=0,lte=10"`
		VulnerabilityFactors map[string]float64 `json:"vulnerabilityFactors"`
		Notes                *string            `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 确认关联的运动存在
	if _, err := h.repository.GetCampaignByID(req.CampaignID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "运动不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	target := &domain.Target{
		CampaignID:           req.CampaignID,
		Name:                 req.Name,
		TargetType:           domain.TargetType(req.TargetType),
		Organization:         req.Organization,
		TitleRole:            req.TitleRole,
		Contacts:             req.Contacts,
		SocialAccounts:       req.SocialAccounts,
		VulnerabilityScore:   req.VulnerabilityScore,
		VulnerabilityFactors: req.VulnerabilityFactors,
		Notes:                req.Notes,
	}

	if err := h.repository.CreateTarget(target); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "目标创建成功", target)
}

func (h *Handler) GetTarget(w http.ResponseWriter, r *http.Request) {
	target := r.Context().Value(TargetCtx).(*domain.Target)
	h.successResponse(w, r, "获取目标信息成功", target)
}

func (h *Handler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 *string             `json:"name"`
		TargetType           *string             `json:"targetType" validate:"omitempty,oneof=corporation executive legislator regulator facility brand investor"`
		Organization         *string             `json:"organization"`
		TitleRole            *string             `json:"titleRole"`
		Contacts             *map[string]string  `json:"contacts"`
		SocialAccounts       *map[string]string  `json:"socialAccounts"`
		VulnerabilityScore   *float64            `json:"vulnerabilityScore" validate:"omitempty,gte=0,lte=10"`
		VulnerabilityFactors *map[string]float64 `json:"vulnerabilityFactors"`
		Notes                *string             `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target := r.Context().Value(TargetCtx).(*domain.Target)

	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.TargetType != nil {
		target.TargetType = domain.TargetType(*req.TargetType)
	}
	if req.Organization != nil {
		target.Organization = req.Organization
	}
	if req.TitleRole != nil {
		target.TitleRole = req.TitleRole
	}
	if req.Contacts != nil {
		target.Contacts = *req.Contacts
	}
	if req.SocialAccounts != nil {
		target.SocialAccounts = *req.SocialAccounts
	}
	if req.VulnerabilityScore != nil {
		target.VulnerabilityScore = *req.VulnerabilityScore
	}
	if req.VulnerabilityFactors != nil {
		target.VulnerabilityFactors = *req.VulnerabilityFactors
	}
	if req.Notes != nil {
		target.Notes = req.Notes
	}

	if err := h.repository.UpdateTarget(target); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新目标信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新目标信息成功", target)
}

func (h *Handler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	target := r.Context().Value(TargetCtx).(*domain.Target)

	if err := h.repository.DeleteTarget(target.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除目标成功", nil)
}
