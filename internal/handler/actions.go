package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/generator"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
)

func (h *Handler) GetActions(w http.ResponseWriter, r *http.Request) {
	filter := repository.ActionFilter{}

	query := r.URL.Query()
	if param := query.Get("campaignID"); param != "" {
		campaignID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "运动ID无效")
			return
		}
		filter.CampaignID = &campaignID
	}
	if param := query.Get("status"); param != "" {
		status := domain.ActionStatus(param)
		filter.Status = &status
	}
	if param := query.Get("type"); param != "" {
		actionType := domain.ActionType(param)
		filter.ActionType = &actionType
	}
	if param := query.Get("assignedTo"); param != "" {
		assignedTo, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "志愿者ID无效")
			return
		}
		filter.AssignedTo = &assignedTo
	}

	actions, err := h.repository.GetActions(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取行动列表成功", actions)
}

func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	action := r.Context().Value(ActionCtx).(*domain.Action)
	h.successResponse(w, r, "获取行动信息成功", action)
}

func (h *Handler) ClaimAction(w http.ResponseWriter, r *http.Request) {
	action := r.Context().Value(ActionCtx).(*domain.Action)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Participant)

	if action.Status != domain.ActionAvailable {
		h.errorResponse(w, r, "该行动已被认领或已结束")
		return
	}

	if err := h.repository.ClaimAction(action, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该行动已被其他人认领，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "认领行动成功", action)
}

func (h *Handler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	action := r.Context().Value(ActionCtx).(*domain.Action)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Participant)

	var req struct {
		VerificationURL *string `json:"verificationURL" validate:"omitempty,url"`
	}

	// 完成凭证可以不填，允许空请求体
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if action.AssignedTo == nil || *action.AssignedTo != myInfo.ID {
		h.errorResponse(w, r, "只能完成自己认领的行动")
		return
	}

	if err := h.repository.CompleteAction(action, req.VerificationURL, time.Now()); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该行动当前不能标记完成，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 完成即按类型权重累计影响力，核验后再追加实际得分的差额
	if err := h.repository.RecordActionCompleted(myInfo.ID, metrics.ImpactWeight(action.ActionType)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "行动已标记完成", action)
}

func (h *Handler) VerifyAction(w http.ResponseWriter, r *http.Request) {
	action := r.Context().Value(ActionCtx).(*domain.Action)

	var req struct {
		ImpactScore *float64 `json:"impactScore" validate:"omitempty,gte=0"`
	}

	// 实际得分可以不填，允许空请求体
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 不提供实际得分时按类型权重记分
	impactScore := metrics.ImpactWeight(action.ActionType)
	if req.ImpactScore != nil {
		impactScore = *req.ImpactScore
	}

	if err := h.repository.VerifyAction(action, impactScore); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "只有已完成的行动才能核验")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if action.AssignedTo != nil {
		if err := h.repository.RecordActionVerified(*action.AssignedTo); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "行动核验成功", action)
}

func (h *Handler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	action := r.Context().Value(ActionCtx).(*domain.Action)

	if err := h.repository.DeleteAction(action.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除行动成功", nil)
}

// GenerateActionsForTime 按可用时间档位生成一批行动并入库
func (h *Handler) GenerateActionsForTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID       int64 `json:"campaignID" validate:"required,gt=0"`
		MinutesAvailable int32 `json:"minutesAvailable" validate:"required,gt=0"`
		MaxActions       int   `json:"maxActions" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	campaign, err := h.repository.GetCampaignByID(req.CampaignID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "运动不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	targets, err := h.repository.GetTargetsByCampaignID(campaign.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	specs := generator.GenerateForTime(campaign, req.MinutesAvailable, targets, nil, req.MaxActions)
	if len(specs) == 0 {
		h.successResponse(w, r, "没有适合该时间档位的行动", []*domain.Action{})
		return
	}

	actions := make([]*domain.Action, 0, len(specs))
	for _, spec := range specs {
		actions = append(actions, generator.ActionFromSpec(spec, campaign.ID))
	}

	if err := h.repository.CreateActions(actions); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "行动生成成功", actions)
}
