package audit

import "time"

// Category classifies audit events for retention and routing.
type Category string

const (
	// CategorySecurity covers gate decisions, blocks, and compromise flags.
	CategorySecurity Category = "security"
	// CategoryOperations covers routine lifecycle events (authorized
	// sessions, logouts) useful for debugging.
	CategoryOperations Category = "operations"
)

// Event captures one security-relevant decision. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	AttemptID string    `json:"attempt_id,omitempty"`
	Action    string    `json:"action"`
	// Rule and Outcome are set for gate decisions: the deciding rule's name
	// and the outcome kind (allow/block/step_up).
	Rule    string `json:"rule,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
	// DeviceFingerprint ties the event to the client installation.
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
}

// Action constants recorded by the orchestrator and transaction service.
const (
	ActionLoginBlocked        = "login_blocked"
	ActionSessionAuthorized   = "session_authorized"
	ActionStepUpRequired      = "step_up_required"
	ActionIdentityCompromised = "identity_compromised_flagged"
	ActionSuspiciousLogin     = "suspicious_login_accepted"
	ActionAttemptAborted      = "attempt_aborted"
	ActionTransactionGate     = "transaction_gate_decision"
	ActionLogout              = "logged_out"
)
