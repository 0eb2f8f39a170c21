package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/config"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/violationdb"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	violationDB   *violationdb.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client, vdb *violationdb.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		violationDB:   vdb,

		Mux: chi.NewRouter(),
	}, nil
}

// publishNotify 把通知消息序列化后投递到消息队列，由通知进程异步发送
func (h *Handler) publishNotify(msg domain.NotifyMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notify_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.With(h.preventInactiveParticipant).Get("/suggest-next-action", h.SuggestNextAction)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/participants", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateParticipant)
			r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Get("/", h.GetAllParticipantInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.participantInfo)
				r.Get("/", h.GetParticipantInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateParticipant)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteParticipant)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateParticipantPassword)
			})
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Post("/", h.CreateCampaign)
			r.Get("/", h.GetAllCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.campaignCtx)
				r.Get("/", h.GetCampaign)
				r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Patch("/", h.UpdateCampaign)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteCampaign)
				r.Get("/progress", h.GetCampaignProgress)
				r.Get("/targets", h.GetCampaignTargets)
				r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Post("/phase-actions", h.GeneratePhaseActions)
				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", h.GetCampaignSchedule)
					r.Get("/summary", h.GetCampaignScheduleSummary)
					r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Post("/generate", h.GenerateCampaignSchedule)
				})
			})
		})

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", h.GetActions)
			r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Post("/generate", h.GenerateActionsForTime)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.actionCtx)
				r.Get("/", h.GetAction)
				r.With(h.myInfo).With(h.preventInactiveParticipant).Post("/claim", h.ClaimAction)
				r.With(h.myInfo).With(h.preventInactiveParticipant).Post("/complete", h.CompleteAction)
				r.With(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin})).Post("/verify", h.VerifyAction)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteAction)
			})
		})

		r.Route("/targets", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin}))
			r.Post("/", h.CreateTarget)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.targetCtx)
				r.Get("/", h.GetTarget)
				r.Patch("/", h.UpdateTarget)
				r.Delete("/", h.DeleteTarget)
			})
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Post("/compare", h.CompareCampaigns)
			r.Post("/media-coverage", h.ScoreMediaCoverage)
			r.Post("/responses", h.TrackTargetResponses)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.campaignCtx)
				r.Get("/", h.GetCampaignMetrics)
				r.Post("/roi", h.GetCampaignROI)
				r.Post("/project-impact", h.ProjectCampaignImpact)
			})
		})

		// 违规情报来自外部数据库，只有组织者以上才能查询
		r.Route("/intel", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOrganizer, domain.RoleAdmin}))
			r.Get("/repeat-offenders", h.GetRepeatOffenders)
			r.Get("/recent-critical", h.GetRecentCriticalViolations)
			r.Get("/target-profile", h.GetTargetProfile)
		})

		r.Get("/templates/campaign-types", h.ListCampaignTypes)
	})
}
