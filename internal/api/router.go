package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tenderdesk/tenderdesk/internal/handler"
	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Tenant        *handler.TenantHandler
	Invite        *handler.InviteHandler
	Company       *handler.CompanyHandler
	ClientCompany *handler.ClientCompanyHandler
	Tender        *handler.TenderHandler
	Knowledge     *handler.KnowledgeHandler
	Bid           *handler.BidHandler
	Registry      *handler.RegistryHandler
	AuditLog      *handler.AuthzAuditLogHandler
}

type Deps struct {
	Logger         *slog.Logger
	Tokens         middleware.TokenValidator
	Users          middleware.UserAuthenticator
	Tenants        middleware.TenantResolver
	Handlers       Handlers
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(deps Deps) http.Handler {
	h := deps.Handlers
	timeout := deps.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.ActiveCompanyHeader},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.AuthzAudit)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))

		// Login only needs a valid session; it creates the user row.
		r.With(middleware.RequirePrincipal(deps.Tokens)).Post("/auth/login", h.Auth.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(deps.Tokens, deps.Users))

			// Routes usable before the user belongs to any company.
			r.Get("/me", h.Auth.MeHandler)
			r.Post("/register", h.Auth.RegisterHandler)
			r.Get("/invites/{token}", h.Invite.Show)
			r.Post("/invites/{token}/accept", h.Invite.Accept)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Tenant(deps.Tenants))

				r.Get("/tenant", h.Tenant.Current)
				r.Post("/tenant/switch", h.Tenant.Switch)

				r.Route("/company", func(r chi.Router) {
					r.Get("/", h.Company.Get)
					r.Get("/members", h.Company.ListMembers)
					// Members may leave or step down themselves; the ledger
					// decides every other change.
					r.Patch("/members/{id}", h.Company.UpdateMember)
					r.Delete("/members/{id}", h.Company.DeactivateMember)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireCompanyRole(model.CompanyRoleAdmin))
						r.Patch("/settings", h.Company.UpdateSettings)
						r.Get("/invites", h.Invite.List)
						r.Post("/invites", h.Invite.Create)
						r.Delete("/invites/{id}", h.Invite.Revoke)
					})

					r.With(middleware.RequireCompanyRole(model.CompanyRoleOwner)).
						Post("/ownership/transfer", h.Company.TransferOwnership)
				})

				r.Route("/clients", func(r chi.Router) {
					r.Get("/", h.ClientCompany.List)
					r.Post("/", h.ClientCompany.Create)
					r.Get("/{id}", h.ClientCompany.Get)
					r.Patch("/{id}", h.ClientCompany.Update)
					r.Post("/{id}/archive", h.ClientCompany.Archive)
				})

				r.Route("/tenders", func(r chi.Router) {
					r.Get("/", h.Tender.List)
					r.Post("/", h.Tender.Create)
					r.Get("/{id}", h.Tender.Get)
				})

				r.Route("/knowledge", func(r chi.Router) {
					r.Get("/", h.Knowledge.List)
					r.Post("/", h.Knowledge.Create)
					r.Get("/{id}", h.Knowledge.Get)
					r.Delete("/{id}", h.Knowledge.Delete)
				})

				r.Route("/bids", func(r chi.Router) {
					r.Get("/", h.Bid.List)
					r.Post("/", h.Bid.Create)
					r.Get("/{id}", h.Bid.Get)
					r.Delete("/{id}", h.Bid.Delete)
					r.Post("/{id}/assignees", h.Bid.AssignUsers)

					r.Route("/{id}/stages/{stage}", func(r chi.Router) {
						r.Patch("/", h.Bid.EditStage)
						r.Post("/submit", h.Bid.Submit)
						r.Post("/assign", h.Bid.AssignReviewer)
						r.Post("/approve", h.Bid.Approve)
						r.Post("/reject", h.Bid.Reject)
						r.Post("/draft", h.Bid.Draft)
					})
				})

				r.Get("/registry/companies/{kvk}", h.Registry.Lookup)

				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequirePlatformRole(model.PlatformRoleSupport))
					r.Get("/audit-logs", h.AuditLog.GetAuditLogs)
					r.Get("/audit-logs/{id}", h.AuditLog.GetAuditLogByID)
				})
			})
		})
	})

	return r
}
