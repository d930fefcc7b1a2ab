package session

// Credentials supplied by the caller when a login attempt begins. The
// password never leaves the orchestrator except hashed (credential check) or
// passed to the bank client.
type Credentials struct {
	Username string
	Password string
}

// ClientMeta is forwarded to the bank login call and recorded in audit
// events.
type ClientMeta struct {
	UserAgent         string
	DeviceName        string
	DeviceFingerprint string
	RemoteIP          string
}

// Phase is the orchestration state machine. Authorized and Blocked are
// sinks; a fresh attempt always starts a new orchestration at Idle.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePrelaunchChecking
	PhaseLoginPending
	PhaseRegistering
	PhaseAwaitingStepUp
	PhasePostLoginChecking
	PhaseCredentialChecking
	PhaseLocationChecking
	PhaseAuthorized
	PhaseBlocked
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrelaunchChecking:
		return "prelaunch_checking"
	case PhaseLoginPending:
		return "login_pending"
	case PhaseRegistering:
		return "registering"
	case PhaseAwaitingStepUp:
		return "awaiting_step_up"
	case PhasePostLoginChecking:
		return "post_login_checking"
	case PhaseCredentialChecking:
		return "credential_checking"
	case PhaseLocationChecking:
		return "location_checking"
	case PhaseAuthorized:
		return "authorized"
	case PhaseBlocked:
		return "blocked"
	}
	return "unknown"
}

// Terminal reports whether the phase is a sink.
func (p Phase) Terminal() bool {
	return p == PhaseAuthorized || p == PhaseBlocked
}

// LocationChoice is the caller's answer to the unusual-location prompt.
type LocationChoice uint8

const (
	// LocationChoiceVerify routes to an external step-up flow; the
	// orchestrator only signals the intent and waits for completion.
	LocationChoiceVerify LocationChoice = iota
	// LocationChoiceProceed continues without verification and persists the
	// suspicious-login flag.
	LocationChoiceProceed
)

// BlockReason is the user-facing reason a terminal Blocked state carries.
type BlockReason struct {
	Title   string
	Message string
}
