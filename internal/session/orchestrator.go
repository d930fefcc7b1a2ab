package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"moneyguard/internal/audit"
	"moneyguard/internal/platform/metrics"
	"moneyguard/internal/prefs"
	"moneyguard/internal/risk"
	"moneyguard/pkg/platform/sentinel"
)

// Config is the orchestrator policy that is deployment-specific rather than
// per attempt.
type Config struct {
	PartnerBankID    string
	CredentialDomain string

	// TreatUnknownCredentialAsCompromised escalates an undetermined
	// credential-check result to the persisted compromise flag. It never
	// surfaces a dialog: no signal is not a signal.
	TreatUnknownCredentialAsCompromised bool
}

// Deps bundles the constructor-injected collaborators. Every field is
// required except Prelaunch, which may be nil when no scan engine ships with
// the build.
type Deps struct {
	Bank        BankClient
	Registrar   Registrar
	Policy      PolicyService
	Credentials CredentialChecker
	Location    LocationService
	Prelaunch   risk.Source
	Prefs       prefs.Store
}

// Service creates login attempts. It holds no per-attempt state.
type Service struct {
	deps    Deps
	cfg     Config
	catalog *risk.Catalog
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

func WithCatalog(c *risk.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

func New(deps Deps, cfg Config, opts ...Option) (*Service, error) {
	if deps.Bank == nil {
		return nil, errors.New("bank client is required")
	}
	if deps.Registrar == nil {
		return nil, errors.New("registrar is required")
	}
	if deps.Policy == nil {
		return nil, errors.New("policy service is required")
	}
	if deps.Credentials == nil {
		return nil, errors.New("credential checker is required")
	}
	if deps.Location == nil {
		return nil, errors.New("location service is required")
	}
	if deps.Prefs == nil {
		return nil, errors.New("prefs store is required")
	}

	svc := &Service{
		deps:    deps,
		cfg:     cfg,
		catalog: risk.NewCatalog(),
		logger:  slog.Default(),
		metrics: metrics.NewForTest(),
		tracer:  otel.Tracer("moneyguard/session"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Logout records an explicit logout: the flag suppresses prelaunch dialogs
// on the next attempt, and session material is removed from the store.
func (s *Service) Logout(ctx context.Context, username string) error {
	if err := s.deps.Prefs.SetBool(ctx, prefs.KeyLoggedOut, true); err != nil {
		return fmt.Errorf("persist logged-out flag: %w", err)
	}
	for _, key := range []string{prefs.KeyToken, prefs.KeySessionID, prefs.KeyFullName} {
		if err := s.deps.Prefs.Delete(ctx, key); err != nil {
			s.logger.Warn("logout cleanup failed", "key", key, "error", err)
		}
	}
	s.emitAudit(audit.Event{
		Category: audit.CategoryOperations,
		Username: username,
		Action:   audit.ActionLogout,
	})
	return nil
}

func (s *Service) emitAudit(event audit.Event) {
	if s.audit != nil {
		s.audit.Emit(context.Background(), event)
	}
}

// Attempt is one login orchestration. Created at Idle, driven forward by the
// caller, destroyed after a terminal phase or an abort.
//
// The step methods (Begin, AcknowledgeRiskDialog, ResolveLocationPrompt,
// CompleteStepUp) are meant for a single caller; Abort is safe to call
// concurrently with any of them.
type Attempt struct {
	id  string
	svc *Service

	mu      sync.Mutex
	phase   Phase
	block   *BlockReason
	creds   Credentials
	meta    ClientMeta
	token   string
	bankSID string
	name    string

	// pending prelaunch dialogs, walked by index on acknowledgement
	dialogs   []risk.Finding
	dialogIdx int

	// where CompleteStepUp resumes
	resumeAfterStepUp Phase

	locationPromptOpen bool

	aborted atomic.Bool
	effects *EffectQueue
}

// NewAttempt creates a fresh orchestration at Idle.
func (s *Service) NewAttempt() *Attempt {
	a := &Attempt{
		id:    uuid.NewString(),
		svc:   s,
		phase: PhaseIdle,
	}
	a.effects = NewEffectQueue(func() {
		if s.metrics != nil {
			s.metrics.EffectsDropped.Inc()
		}
	})
	return a
}

func (a *Attempt) ID() string { return a.id }

// Username returns the username the attempt was begun with.
func (a *Attempt) Username() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creds.Username
}

// FullName returns the account holder's name once the bank login succeeded.
func (a *Attempt) FullName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// Phase returns the current orchestration phase.
func (a *Attempt) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// BlockReason returns the user-facing reason when the attempt is Blocked.
func (a *Attempt) BlockReason() *BlockReason {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.block == nil {
		return nil
	}
	r := *a.block
	return &r
}

// DrainEffects returns undelivered effects in emission order.
func (a *Attempt) DrainEffects() []Effect {
	return a.effects.Drain()
}

// Abort abandons the attempt: no further effects are emitted and in-flight
// continuations stop at the next step boundary. Authorization is never
// granted from an aborted attempt.
func (a *Attempt) Abort() {
	if a.aborted.Swap(true) {
		return
	}
	a.effects.Close()
	a.svc.emitAudit(audit.Event{
		Category:  audit.CategorySecurity,
		Username:  a.creds.Username,
		AttemptID: a.id,
		Action:    audit.ActionAttemptAborted,
	})
	if a.svc.metrics != nil {
		a.svc.metrics.OrchestrationsEnded.WithLabelValues("aborted").Inc()
	}
}

func (a *Attempt) halted(ctx context.Context) bool {
	return a.aborted.Load() || ctx.Err() != nil
}

// Begin starts the attempt: prelaunch scan (unless an explicit logout
// preceded this attempt), then the login chain. It returns once the attempt
// reaches a terminal phase or pauses for caller interaction.
func (a *Attempt) Begin(ctx context.Context, creds Credentials, meta ClientMeta) error {
	a.mu.Lock()
	if a.phase != PhaseIdle {
		a.mu.Unlock()
		return fmt.Errorf("begin: attempt already started: %w", sentinel.ErrInvalidState)
	}
	a.creds = creds
	a.meta = meta
	a.phase = PhasePrelaunchChecking
	a.mu.Unlock()

	if a.halted(ctx) {
		return sentinel.ErrAborted
	}

	// An explicit logout suppresses the prelaunch scan so dismissed
	// warnings do not resurface. The flag is one-shot.
	if prefs.Flag(ctx, a.svc.deps.Prefs, prefs.KeyLoggedOut) {
		if err := a.svc.deps.Prefs.Delete(ctx, prefs.KeyLoggedOut); err != nil {
			a.svc.logger.Warn("clearing logged-out flag failed", "error", err)
		}
		return a.runLogin(ctx)
	}

	findings := a.prelaunchFindings(ctx)
	if len(findings) == 0 {
		return a.runLogin(ctx)
	}

	a.mu.Lock()
	a.dialogs = findings
	a.dialogIdx = 0
	a.mu.Unlock()
	a.emitDialog(findings[0])
	return nil
}

func (a *Attempt) prelaunchFindings(ctx context.Context) []risk.Finding {
	if a.svc.deps.Prelaunch == nil {
		return nil
	}

	ctx, span := a.svc.tracer.Start(ctx, "session.prelaunch_scan")
	report, err := a.svc.deps.Prelaunch.Scan(ctx)
	span.End()
	if err != nil {
		// Scan unavailability must not lock users out of login.
		a.stepFailure("prelaunch_scan", "fail_open", err)
		return nil
	}

	var qualifying []risk.Finding
	for _, f := range report.Findings {
		if f.Status.Meets(risk.StatusWarn) {
			qualifying = append(qualifying, f)
		}
	}
	return qualifying
}

func (a *Attempt) emitDialog(f risk.Finding) {
	a.effects.Emit(ShowRiskDialog{
		Finding: f,
		Message: a.svc.catalog.Describe(f.Risk),
	})
}

// AcknowledgeRiskDialog dismisses the current prelaunch dialog. The next
// dialog, if any, is emitted; exhausting the list moves the attempt into the
// login chain. Acknowledging outside the dialog walk is a no-op.
func (a *Attempt) AcknowledgeRiskDialog(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}

	a.mu.Lock()
	if a.phase != PhasePrelaunchChecking || a.dialogIdx >= len(a.dialogs) {
		a.mu.Unlock()
		return nil
	}
	a.dialogIdx++
	if a.dialogIdx < len(a.dialogs) {
		next := a.dialogs[a.dialogIdx]
		a.mu.Unlock()
		a.emitDialog(next)
		return nil
	}
	a.mu.Unlock()
	return a.runLogin(ctx)
}

// runLogin is the only fail-closed step: a bank failure terminates the
// attempt.
func (a *Attempt) runLogin(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhaseLoginPending)

	ctx, span := a.svc.tracer.Start(ctx, "session.bank_login")
	sess, err := a.svc.deps.Bank.Login(ctx, a.creds.Username, a.creds.Password, a.meta)
	span.End()
	if err != nil || sess.SessionID == "" {
		if err != nil {
			a.stepFailure("bank_login", "fail_closed", err)
		}
		a.terminateBlocked(ctx, "Login Failed", "We could not sign you in. Please check your credentials and try again.")
		return nil
	}

	a.mu.Lock()
	a.bankSID = sess.SessionID
	a.name = sess.FullName
	a.mu.Unlock()

	if err := a.svc.deps.Prefs.SetString(ctx, prefs.KeySessionID, sess.SessionID); err != nil {
		a.svc.logger.Warn("persist session id failed", "error", err)
	}
	if err := a.svc.deps.Prefs.SetString(ctx, prefs.KeyFullName, sess.FullName); err != nil {
		a.svc.logger.Warn("persist full name failed", "error", err)
	}

	return a.runRegistration(ctx)
}

// runRegistration is fail-open: the registrar is a value-add, not a
// security gate.
func (a *Attempt) runRegistration(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhaseRegistering)

	ctx, span := a.svc.tracer.Start(ctx, "session.register")
	reg, err := a.svc.deps.Registrar.Register(ctx, a.svc.cfg.PartnerBankID, a.bankSID)
	span.End()
	if err != nil || !reg.Succeeded {
		if err != nil {
			a.stepFailure("registration", "fail_open", err)
		}
		return a.runPolicyCheck(ctx)
	}

	a.mu.Lock()
	a.token = reg.Token
	a.mu.Unlock()
	if err := a.svc.deps.Prefs.SetString(ctx, prefs.KeyToken, reg.Token); err != nil {
		a.svc.logger.Warn("persist token failed", "error", err)
	}
	if reg.InstallationID != "" {
		if err := a.svc.deps.Prefs.SetString(ctx, prefs.KeyInstallationID, reg.InstallationID); err != nil {
			a.svc.logger.Warn("persist installation id failed", "error", err)
		}
	}

	if reg.RequiresStepUp {
		status, err := a.policyStatus(ctx)
		if err == nil && status == PolicyStatusActive {
			a.mu.Lock()
			a.phase = PhaseAwaitingStepUp
			a.resumeAfterStepUp = PhasePostLoginChecking
			a.mu.Unlock()
			a.effects.Emit(ShowUntrustedDeviceStepUp{Reason: "untrusted installation"})
			a.svc.emitAudit(audit.Event{
				Category:          audit.CategorySecurity,
				Username:          a.creds.Username,
				AttemptID:         a.id,
				Action:            audit.ActionStepUpRequired,
				Reason:            "untrusted installation",
				DeviceFingerprint: a.meta.DeviceFingerprint,
			})
			return nil
		}
	}

	return a.runPolicyCheck(ctx)
}

func (a *Attempt) policyStatus(ctx context.Context) (PolicyStatus, error) {
	ctx, span := a.svc.tracer.Start(ctx, "session.policy_status")
	defer span.End()
	return a.svc.deps.Policy.Status(ctx, a.token)
}

// runPolicyCheck decides whether post-login security checks are meaningful:
// without an active policy no stronger protection exists, so the session is
// authorized as-is.
func (a *Attempt) runPolicyCheck(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhasePostLoginChecking)

	if a.token == "" {
		return a.finalizeAuthorized(ctx)
	}
	status, err := a.policyStatus(ctx)
	if err != nil {
		a.stepFailure("policy_status", "fail_open", err)
		return a.finalizeAuthorized(ctx)
	}
	if status != PolicyStatusActive {
		return a.finalizeAuthorized(ctx)
	}
	return a.runCredentialCheck(ctx)
}

func (a *Attempt) runCredentialCheck(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhaseCredentialChecking)

	hashed := HashPasswordSuffix(a.svc.cfg.CredentialDomain, a.creds.Password)
	ctx, span := a.svc.tracer.Start(ctx, "session.credential_check")
	result, err := a.svc.deps.Credentials.Check(ctx, a.token, hashed, a.svc.cfg.CredentialDomain)
	span.End()
	if err != nil {
		a.stepFailure("credential_check", "fail_open", err)
		return a.runLocationCheck(ctx)
	}

	switch result.Status {
	case CredentialStatusUnsafe:
		a.flagIdentityCompromised(ctx)
		a.effects.Emit(ShowCredentialResult{Text: credentialText(result)})
	case CredentialStatusSafe:
		a.effects.Emit(ShowCredentialResult{Text: credentialText(result)})
	case CredentialStatusUndetermined:
		// No signal received. Never a dialog; optionally still a flag.
		if a.svc.cfg.TreatUnknownCredentialAsCompromised {
			a.flagIdentityCompromised(ctx)
		}
	}

	return a.runLocationCheck(ctx)
}

func credentialText(r CredentialResult) string {
	if r.Text != "" {
		return r.Text
	}
	return "Credential check result: " + r.Status.String()
}

func (a *Attempt) flagIdentityCompromised(ctx context.Context) {
	if err := a.svc.deps.Prefs.SetBool(ctx, prefs.KeyIdentityCompromised, true); err != nil {
		a.svc.logger.Error("persist identity-compromised flag failed", "error", err)
	}
	a.svc.emitAudit(audit.Event{
		Category:          audit.CategorySecurity,
		Username:          a.creds.Username,
		AttemptID:         a.id,
		Action:            audit.ActionIdentityCompromised,
		DeviceFingerprint: a.meta.DeviceFingerprint,
	})
}

func (a *Attempt) runLocationCheck(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhaseLocationChecking)

	ctx, span := a.svc.tracer.Start(ctx, "session.location_check")
	findings, err := a.svc.deps.Location.Check(ctx, a.token)
	span.End()
	if err != nil {
		a.stepFailure("location_check", "fail_open", err)
		return a.finalizeAuthorized(ctx)
	}
	if len(findings) == 0 {
		return a.finalizeAuthorized(ctx)
	}

	a.mu.Lock()
	a.locationPromptOpen = true
	a.mu.Unlock()
	a.effects.Emit(ShowUnusualLocationPrompt{Findings: findings})
	return nil
}

// ResolveLocationPrompt consumes the caller's answer to the unusual-location
// prompt. Verify pauses for an external step-up; proceeding persists the
// suspicious-login flag and authorizes.
func (a *Attempt) ResolveLocationPrompt(ctx context.Context, choice LocationChoice) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}

	a.mu.Lock()
	if a.phase != PhaseLocationChecking || !a.locationPromptOpen {
		a.mu.Unlock()
		return fmt.Errorf("resolve location: no prompt outstanding: %w", sentinel.ErrInvalidState)
	}
	a.locationPromptOpen = false

	if choice == LocationChoiceVerify {
		a.phase = PhaseAwaitingStepUp
		a.resumeAfterStepUp = PhaseAuthorized
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	if err := a.svc.deps.Prefs.SetBool(ctx, prefs.KeySuspiciousLogin, true); err != nil {
		a.svc.logger.Error("persist suspicious-login flag failed", "error", err)
	}
	a.svc.emitAudit(audit.Event{
		Category:  audit.CategorySecurity,
		Username:  a.creds.Username,
		AttemptID: a.id,
		Action:    audit.ActionSuspiciousLogin,
	})
	return a.finalizeAuthorized(ctx)
}

// CompleteStepUp resumes the attempt after the external second-factor flow
// finishes.
func (a *Attempt) CompleteStepUp(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}

	a.mu.Lock()
	if a.phase != PhaseAwaitingStepUp {
		a.mu.Unlock()
		return fmt.Errorf("complete step-up: not awaiting one: %w", sentinel.ErrInvalidState)
	}
	resume := a.resumeAfterStepUp
	a.mu.Unlock()

	if resume == PhaseAuthorized {
		return a.finalizeAuthorized(ctx)
	}
	return a.runPolicyCheck(ctx)
}

func (a *Attempt) finalizeAuthorized(ctx context.Context) error {
	if a.halted(ctx) {
		return sentinel.ErrAborted
	}
	a.setPhase(PhaseAuthorized)
	a.effects.Emit(NavigateAuthorized{})
	a.svc.emitAudit(audit.Event{
		Category:          audit.CategoryOperations,
		Username:          a.creds.Username,
		AttemptID:         a.id,
		Action:            audit.ActionSessionAuthorized,
		DeviceFingerprint: a.meta.DeviceFingerprint,
	})
	if a.svc.metrics != nil {
		a.svc.metrics.OrchestrationsEnded.WithLabelValues("authorized").Inc()
	}
	return nil
}

func (a *Attempt) terminateBlocked(_ context.Context, title, message string) {
	a.mu.Lock()
	a.phase = PhaseBlocked
	a.block = &BlockReason{Title: title, Message: message}
	a.mu.Unlock()

	a.effects.Emit(NavigateBlocked{Title: title, Message: message})
	a.svc.emitAudit(audit.Event{
		Category:          audit.CategorySecurity,
		Username:          a.creds.Username,
		AttemptID:         a.id,
		Action:            audit.ActionLoginBlocked,
		Reason:            title,
		DeviceFingerprint: a.meta.DeviceFingerprint,
	})
	if a.svc.metrics != nil {
		a.svc.metrics.OrchestrationsEnded.WithLabelValues("blocked").Inc()
	}
}

func (a *Attempt) setPhase(p Phase) {
	a.mu.Lock()
	a.phase = p
	a.mu.Unlock()
}

func (a *Attempt) stepFailure(step, policy string, err error) {
	a.svc.logger.Warn("collaborator step failed", "step", step, "policy", policy, "error", err)
	if a.svc.metrics != nil {
		a.svc.metrics.CollaboratorFailures.WithLabelValues(step, policy).Inc()
	}
}
