// Package transaction gates outgoing transactions behind the risk pipeline.
// Every authorization reads the stored posture, scans the live register, and
// lets the ordered rule list decide.
package transaction

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"moneyguard/internal/audit"
	"moneyguard/internal/gate"
	"moneyguard/internal/platform/metrics"
	"moneyguard/internal/prefs"
	"moneyguard/internal/risk"
)

// PostureStore is the slice of the preference store the gate reads: the
// numeric posture and the identity-compromise flag persisted by earlier
// sessions.
type PostureStore interface {
	GetInt(ctx context.Context, key string) (int, error)
	GetBool(ctx context.Context, key string) (bool, error)
}

// RiskScanner produces the live register evaluated alongside the stored
// posture.
type RiskScanner interface {
	Scan(ctx context.Context) (risk.ScanReport, error)
}

// Request identifies the transaction being authorized. The gate never
// inspects the amount; it is carried for the audit trail.
type Request struct {
	Username    string
	Reference   string
	AmountMinor int64
	Currency    string
}

// Decision is the gate's answer plus the name of the rule that produced it.
// Rule is empty when every rule allowed.
type Decision struct {
	Outcome gate.Outcome
	Rule    string
}

// Service evaluates the transaction gate. Stateless between calls; posture
// and register are read fresh on every authorization.
type Service struct {
	prefs    PostureStore
	scanner  RiskScanner
	pipeline *gate.Pipeline

	defaultThreshold int

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// New builds a Service over the canonical rule list. defaultThreshold applies
// when no per-session threshold has been stored.
func New(store PostureStore, scanner RiskScanner, defaultThreshold int, opts ...Option) *Service {
	s := &Service{
		prefs:            store,
		scanner:          scanner,
		pipeline:         gate.NewPipeline(gate.TransactionRules()),
		defaultThreshold: defaultThreshold,
		logger:           slog.Default(),
		tracer:           otel.Tracer("moneyguard/transaction"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authorize runs one gate evaluation. Scan failures degrade to an empty
// register so the stored-posture rules still apply; they never block a
// payment on their own.
func (s *Service) Authorize(ctx context.Context, req Request) (Decision, error) {
	ctx, span := s.tracer.Start(ctx, "transaction.authorize")
	defer span.End()

	gctx := gate.Context{
		RiskScore:           s.intOr(ctx, prefs.KeyRiskScore, 0),
		HighRiskThreshold:   s.intOr(ctx, prefs.KeyHighRiskThreshold, s.defaultThreshold),
		IdentityCompromised: s.flag(ctx, prefs.KeyIdentityCompromised),
	}

	var findings []risk.Finding
	report, err := s.scanner.Scan(ctx)
	if err != nil {
		s.logger.Warn("transaction scan failed, evaluating stored posture only", "error", err)
		if s.metrics != nil {
			s.metrics.CollaboratorFailures.WithLabelValues("transaction_scan", "fail_open").Inc()
		}
	} else {
		findings = report.Findings
	}

	outcome, rule := s.pipeline.EvaluateNamed(findings, gctx)
	s.record(ctx, req, outcome, rule)
	return Decision{Outcome: outcome, Rule: rule}, nil
}

func (s *Service) record(ctx context.Context, req Request, outcome gate.Outcome, rule string) {
	kind := gate.Kind(outcome)
	ruleLabel := rule
	if ruleLabel == "" {
		ruleLabel = "none"
	}
	if s.metrics != nil {
		s.metrics.GateOutcomes.WithLabelValues(ruleLabel, kind).Inc()
	}

	s.logger.Info("transaction gate decision",
		"username", req.Username,
		"reference", req.Reference,
		"rule", ruleLabel,
		"outcome", kind,
	)

	if s.audit == nil {
		return
	}
	event := audit.Event{
		Category: audit.CategorySecurity,
		Username: req.Username,
		Action:   audit.ActionTransactionGate,
		Rule:     rule,
		Outcome:  kind,
	}
	if b, ok := outcome.(gate.Block); ok {
		event.Reason = b.Title
	}
	s.audit.Emit(ctx, event)
}

func (s *Service) intOr(ctx context.Context, key string, def int) int {
	v, err := s.prefs.GetInt(ctx, key)
	if err != nil {
		return def
	}
	return v
}

func (s *Service) flag(ctx context.Context, key string) bool {
	v, err := s.prefs.GetBool(ctx, key)
	if err != nil {
		return false
	}
	return v
}
