package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/planner"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/utils"
)

func (h *Handler) GetAllCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.repository.GetAllCampaigns()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取运动列表成功", campaigns)
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string         `json:"name" validate:"required"`
		CampaignType  string         `json:"campaignType" validate:"required,oneof=corporate legislative regulatory investigation cultural"`
		TargetSummary string         `json:"targetSummary" validate:"required"`
		Goal          string         `json:"goal" validate:"required"`
		StartDate     *time.Time     `json:"startDate"`
		CustomLadder  []domain.Phase `json:"customLadder"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if len(req.CustomLadder) > 0 {
		if err := utils.ValidateEscalationLadder(req.CustomLadder); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	campaign, err := planner.BuildCampaign(req.Name, domain.CampaignType(req.CampaignType), req.TargetSummary, req.Goal, req.StartDate, req.CustomLadder)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateCampaign(campaign); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "campaigns_slug_key":
				h.badRequest(w, r, errors.New("同名运动已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "运动创建成功", campaign)
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)
	h.successResponse(w, r, "获取运动信息成功", campaign)
}

func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string    `json:"name"`
		TargetSummary *string    `json:"targetSummary"`
		Goal          *string    `json:"goal"`
		Status        *string    `json:"status" validate:"omitempty,oneof=draft planning active escalating paused won lost archived"`
		StartDate     *time.Time `json:"startDate"`
		Deadline      *time.Time `json:"deadline"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.TargetSummary != nil {
		campaign.TargetSummary = *req.TargetSummary
	}
	if req.Goal != nil {
		campaign.Goal = *req.Goal
	}
	if req.Status != nil {
		campaign.Status = domain.CampaignStatus(*req.Status)
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.Deadline != nil {
		campaign.Deadline = req.Deadline
	}

	if err := utils.ValidateCampaignDates(campaign); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateCampaign(campaign); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新运动信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新运动信息成功", campaign)
}

func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	if err := h.repository.DeleteCampaign(campaign.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除运动成功", nil)
}

func (h *Handler) GetCampaignProgress(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	actions, err := h.repository.GetActions(repository.ActionFilter{CampaignID: &campaign.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	campaignMetrics := metrics.ComputeCampaignMetrics(campaign, actions, time.Now())
	h.successResponse(w, r, "获取运动进度成功", campaignMetrics)
}

func (h *Handler) GetCampaignTargets(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	targets, err := h.repository.GetTargetsByCampaignID(campaign.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取运动目标列表成功", targets)
}

// GeneratePhaseActions 为运动升级阶梯中的某一阶段批量生成行动并入库
func (h *Handler) GeneratePhaseActions(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	var req struct {
		PhaseNumber int32 `json:"phaseNumber" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	targets, err := h.repository.GetTargetsByCampaignID(campaign.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	actions, err := planner.GeneratePhaseActions(campaign, req.PhaseNumber, targets)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrPhaseNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	for _, action := range actions {
		action.CampaignID = campaign.ID
	}

	if err := h.repository.CreateActions(actions); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "阶段行动生成成功", actions)
}
