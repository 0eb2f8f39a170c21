package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/utils"
)

// strategyActionType 给出每种调度策略默认处理的行动类型
var strategyActionType = map[string]domain.ActionType{
	"stagger_emails": domain.ActionEmail,
	"phone_bank":     domain.ActionPhoneCall,
	"comment_ramp":   domain.ActionPublicComment,
	"social_burst":   domain.ActionSocialPost,
}

func (h *Handler) GetCampaignSchedule(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	scheduled, err := h.repository.GetCampaignSchedule(campaign.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取运动排期成功", scheduled)
}

func (h *Handler) GetCampaignScheduleSummary(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	scheduled, err := h.repository.GetCampaignSchedule(campaign.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排期概览成功", scheduler.Summarize(scheduled))
}

// GenerateCampaignSchedule 调用时间分配引擎为运动生成排期并整体替换旧排期。
// 相同的 seed 会产生完全相同的排期，不传 seed 时每次生成都不同。
func (h *Handler) GenerateCampaignSchedule(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	var req struct {
		Strategy string `json:"strategy" validate:"required,oneof=stagger_emails phone_bank comment_ramp social_burst escalation"`
		Seed     *int64 `json:"seed"`

		// 调度窗口，不传时按运动的开始和截止日期构造默认窗口
		Window *domain.ScheduleWindow `json:"window"`

		// stagger_emails
		PerDay          int `json:"perDay"`
		IntervalMinutes int `json:"intervalMinutes"`
		JitterMinutes   int `json:"jitterMinutes"`

		// phone_bank
		CallsPerHour int `json:"callsPerHour"`

		// comment_ramp
		RampDays int `json:"rampDays"`

		// social_burst
		Anchor           *time.Time `json:"anchor"`
		PreAnchorMinutes int        `json:"preAnchorMinutes"`
		Platform         string     `json:"platform"`

		// escalation：各阶段要排期的行动 ID
		ActionsByPhase map[int32][]int64 `json:"actionsByPhase"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}
	engine := scheduler.New(rng)

	window := req.Window
	if window == nil {
		if campaign.StartDate == nil || campaign.Deadline == nil {
			h.errorResponse(w, r, "运动缺少开始或截止日期，请显式提供调度窗口")
			return
		}
		window = domain.NewScheduleWindow(*campaign.StartDate, *campaign.Deadline)
	}
	if err := utils.ValidateScheduleWindow(window); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var scheduled []*domain.ScheduledAction
	var err error

	switch req.Strategy {
	case "escalation":
		if campaign.StartDate == nil {
			h.errorResponse(w, r, "运动缺少开始日期")
			return
		}
		scheduled, err = engine.EscalationSequence(campaign.Phases, *campaign.StartDate, req.ActionsByPhase)
	default:
		actionIDs, loadErr := h.pendingActionIDs(campaign.ID, strategyActionType[req.Strategy])
		if loadErr != nil {
			h.internalServerError(w, r, loadErr)
			return
		}
		if len(actionIDs) == 0 {
			h.errorResponse(w, r, "没有待排期的行动")
			return
		}

		switch req.Strategy {
		case "stagger_emails":
			scheduled, err = engine.StaggerEmails(actionIDs, window, &scheduler.StaggerParameters{
				PerDay:          req.PerDay,
				IntervalMinutes: req.IntervalMinutes,
				JitterMinutes:   req.JitterMinutes,
			})
		case "phone_bank":
			scheduled, err = engine.PhoneBank(actionIDs, window, req.CallsPerHour)
		case "comment_ramp":
			if campaign.Deadline == nil {
				h.errorResponse(w, r, "运动缺少截止日期")
				return
			}
			scheduled, err = engine.CommentRamp(actionIDs, *campaign.Deadline, req.RampDays)
		case "social_burst":
			if req.Anchor == nil {
				h.errorResponse(w, r, "社交爆发策略需要提供锚点时间")
				return
			}
			scheduled, err = engine.SocialBurst(actionIDs, *req.Anchor, req.PreAnchorMinutes, scheduler.Platform(req.Platform))
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidWindow), errors.Is(err, scheduler.ErrInvalidParameter):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.ReplaceCampaignSchedule(campaign.ID, scheduled); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排期生成成功", map[string]any{
		"scheduled": scheduled,
		"summary":   scheduler.Summarize(scheduled),
	})
}

// pendingActionIDs 返回运动下指定类型、尚未被认领的行动 ID 列表
func (h *Handler) pendingActionIDs(campaignID int64, actionType domain.ActionType) ([]int64, error) {
	status := domain.ActionAvailable
	filter := repository.ActionFilter{
		CampaignID: &campaignID,
		Status:     &status,
	}
	if actionType != "" {
		filter.ActionType = &actionType
	}

	actions, err := h.repository.GetActions(filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(actions))
	for _, action := range actions {
		ids = append(ids, action.ID)
	}

	return ids, nil
}
