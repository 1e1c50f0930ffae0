package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/redis/go-redis/v9"
	"github.com/rsud-harapan/roster-manager/backend/internal/config"
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/rsud-harapan/roster-manager/backend/internal/exchange"
	"github.com/rsud-harapan/roster-manager/backend/internal/notifier"
	"github.com/rsud-harapan/roster-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	notifier    *notifier.Publisher
	redisClient *redis.Client

	ledger    *exchange.Ledger
	evaluator *exchange.Evaluator
	overwork  *exchange.OverworkWorkflow
	swaps     *exchange.SwapWorkflow
	periods   exchange.PeriodProvider

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, pub *notifier.Publisher, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	periods := exchange.SystemPeriod{}
	ledger := exchange.NewLedger(repo, repo)
	evaluator := exchange.NewEvaluator(ledger)
	gate := exchange.NewGate(evaluator)
	overwork := exchange.NewOverworkWorkflow(repo, repo, ledger, pub, periods)
	swaps := exchange.NewSwapWorkflow(
		&exchange.SwapWorkflowParams{
			CriticalUnits:   cfg.Roster.CriticalUnits,
			MinReasonLength: cfg.Roster.MinSwapReasonLength,
		},
		repo, repo, repo, ledger, gate, pub, periods,
	)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		notifier:    pub,
		redisClient: rdb,

		ledger:    ledger,
		evaluator: evaluator,
		overwork:  overwork,
		swaps:     swaps,
		periods:   periods,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a logged-in staff member.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/shifts", h.GetMyShifts)
			r.Get("/workload", h.GetMyWorkload)
		})

		r.Route("/staff", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateStaff)
			r.Get("/", h.GetAllStaff)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Get("/", h.GetStaff)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateStaff)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteStaff)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/password", h.UpdateStaffPassword)
				r.Get("/eligibility", h.EvaluateEligibility)
				r.With(h.myInfo).Get("/overwork-requests", h.GetOverworkHistory)
			})
		})

		r.Route("/overwork-requests", func(r chi.Router) {
			r.With(h.myInfo).With(h.preventInactiveStaff).Post("/", h.SubmitOverworkRequest)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Get("/pending", h.ListPendingOverworkRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/approve", h.ApproveOverworkRequest)
				r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/reject", h.RejectOverworkRequest)
			})
		})

		r.Route("/swap-requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.preventInactiveStaff).Post("/", h.SubmitSwapRequest)
			r.Get("/", h.GetMySwapRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSwapRequest)
				r.Post("/target-response", h.RespondAsTarget)
				r.Post("/unit-head-response", h.RespondAsUnitHead)
				r.Post("/supervisor-response", h.RespondAsSupervisor)
			})
		})
	})
}
