package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllParticipantInfo(w http.ResponseWriter, r *http.Request) {
	participants, err := h.repository.GetAllParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取志愿者列表成功", participants)
}

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username                   string   `json:"username" validate:"required"`
		FullName                   string   `json:"fullName" validate:"required"`
		Email                      string   `json:"email" validate:"required,email"`
		Role                       string   `json:"role" validate:"required,oneof=志愿者 组织者 管理员"`
		Skills                     []string `json:"skills"`
		AvailabilityMinutesPerWeek int32    `json:"availabilityMinutesPerWeek" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 生成随机密码
	password := utils.GenerateRandomPassword(h.config.NewParticipant.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	participant := &domain.Participant{
		Username:                   req.Username,
		PasswordHash:               string(hashedPassword),
		FullName:                   req.FullName,
		Email:                      req.Email,
		Role:                       domain.Role(req.Role),
		Skills:                     req.Skills,
		AvailabilityMinutesPerWeek: req.AvailabilityMinutesPerWeek,
	}

	if err := h.repository.CreateParticipant(participant); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "participants_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			case pgErr.ConstraintName == "participants_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 初始密码通过邮件告知本人
	if err := h.publishNotify(domain.NotifyMessage{
		Type: "create_participant",
		To:   participant.Email,
		Data: domain.CreateParticipantNotifyData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "志愿者创建成功", participant)
}

func (h *Handler) GetParticipantInfo(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)
	h.successResponse(w, r, "获取志愿者信息成功", participant)
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName                   *string   `json:"fullName"`
		Email                      *string   `json:"email" validate:"omitempty,email"`
		Role                       *string   `json:"role" validate:"omitempty,oneof=志愿者 组织者 管理员"`
		Skills                     *[]string `json:"skills"`
		AvailabilityMinutesPerWeek *int32    `json:"availabilityMinutesPerWeek" validate:"omitempty,gte=0"`
		IsActive                   *bool     `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	if req.FullName != nil {
		participant.FullName = *req.FullName
	}
	if req.Email != nil {
		participant.Email = *req.Email
	}
	if req.Role != nil {
		participant.Role = domain.Role(*req.Role)
	}
	if req.Skills != nil {
		participant.Skills = *req.Skills
	}
	if req.AvailabilityMinutesPerWeek != nil {
		participant.AvailabilityMinutesPerWeek = *req.AvailabilityMinutesPerWeek
	}
	if req.IsActive != nil {
		participant.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateParticipant(participant); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "participants_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			case pgErr.ConstraintName == "participants_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新志愿者信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新志愿者信息成功", participant)
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	if err := h.repository.DeleteParticipant(participant.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除志愿者成功", nil)
}

func (h *Handler) UpdateParticipantPassword(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	participant.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateParticipant(participant); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改密码成功", nil)
}
