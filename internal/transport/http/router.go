// Package httptransport is the thin HTTP layer over the session orchestrator
// and the transaction gate. Handlers decode, delegate, and encode; business
// rules live in the services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moneyguard/internal/audit"
	"moneyguard/internal/jwtsession"
	"moneyguard/internal/session"
	"moneyguard/internal/transaction"
	"moneyguard/pkg/platform/middleware/admin"
	"moneyguard/pkg/platform/middleware/auth"
	"moneyguard/pkg/platform/middleware/device"
	"moneyguard/pkg/platform/middleware/metadata"
	request "moneyguard/pkg/platform/middleware/request"
	"moneyguard/pkg/platform/middleware/requesttime"
)

// Orchestrator is the session service surface the handlers consume.
type Orchestrator interface {
	NewAttempt() *session.Attempt
	Logout(ctx context.Context, username string) error
}

// Authorizer gates transactions.
type Authorizer interface {
	Authorize(ctx context.Context, req transaction.Request) (transaction.Decision, error)
}

// TokenIssuer signs the dashboard session token returned on authorization.
type TokenIssuer interface {
	Issue(username, fullName, attemptID string) (string, error)
}

// AuditReader serves the operational audit endpoint.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler holds the live login attempts alongside the injected services.
// Attempts are kept in memory: an orchestration is bound to the process that
// started it.
type Handler struct {
	logger       *slog.Logger
	sessions     Orchestrator
	transactions Authorizer
	tokens       TokenIssuer
	validator    auth.TokenValidator
	devices      device.Fingerprinter
	auditLog     AuditReader
	adminToken   string

	mu       sync.Mutex
	attempts map[string]*session.Attempt
}

// New creates the transport handler.
func New(
	sessions Orchestrator,
	transactions Authorizer,
	tokens TokenIssuer,
	validator auth.TokenValidator,
	devices device.Fingerprinter,
	auditLog AuditReader,
	adminToken string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		logger:       logger,
		sessions:     sessions,
		transactions: transactions,
		tokens:       tokens,
		validator:    validator,
		devices:      devices,
		auditLog:     auditLog,
		adminToken:   adminToken,
		attempts:     make(map[string]*session.Attempt),
	}
}

// NewRouter wires all endpoints and the shared middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(device.Fingerprint(h.devices))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/login/attempts", h.handleBeginAttempt)
		v1.Route("/login/attempts/{attemptID}", func(ar chi.Router) {
			ar.Get("/", h.handleGetAttempt)
			ar.Delete("/", h.handleAbortAttempt)
			ar.Post("/dialogs/ack", h.handleAcknowledgeDialog)
			ar.Post("/location", h.handleResolveLocation)
			ar.Post("/stepup/complete", h.handleCompleteStepUp)
		})

		v1.Group(func(p chi.Router) {
			p.Use(auth.RequireAuth(h.validator, h.logger))
			p.Post("/logout", h.handleLogout)
			p.Post("/transactions/authorize", h.handleAuthorizeTransaction)
		})
	})

	r.Route("/admin", func(ad chi.Router) {
		ad.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		ad.Get("/audit/events", h.handleAuditEvents)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewTokenValidator adapts the JWT session service to the auth middleware
// contract.
func NewTokenValidator(svc *jwtsession.Service) auth.TokenValidator {
	return jwtValidator{svc: svc}
}

type jwtValidator struct {
	svc *jwtsession.Service
}

func (v jwtValidator) Validate(token string) (*auth.Claims, error) {
	claims, err := v.svc.Validate(token)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{Username: claims.Username, AttemptID: claims.AttemptID}, nil
}
