package session

import "context"

// Collaborator boundaries consumed by the orchestrator. All of them are
// external services; the orchestrator owns none of their wire formats and
// converts their failures into the step's fail-open or fail-closed outcome.

// BankClient performs the credential login against the partner bank.
type BankClient interface {
	Login(ctx context.Context, username, password string, meta ClientMeta) (BankSession, error)
}

// BankSession is the bank's answer to a successful login.
type BankSession struct {
	SessionID string
	FullName  string
}

// Registrar enrolls the bank session with the protection service. This is a
// value-add dependency: its unavailability must never block banking.
type Registrar interface {
	Register(ctx context.Context, partnerBankID, bankSessionID string) (Registration, error)
}

// Registration is the registrar's response. Succeeded mirrors the service's
// explicit result flag; RequiresStepUp signals an untrusted installation
// that needs a second factor before protection applies.
type Registration struct {
	Token          string
	InstallationID string
	UserDetails    string
	Succeeded      bool
	RequiresStepUp bool
}

// PolicyStatus is the protection policy state for a token.
type PolicyStatus int

const (
	PolicyStatusUnknown PolicyStatus = iota
	PolicyStatusActive
	PolicyStatusValidAppNotInstalled
	PolicyStatusInactive
)

// PolicyService reports whether stronger protection is active for a token.
type PolicyService interface {
	Status(ctx context.Context, token string) (PolicyStatus, error)
}

// CredentialStatus is the outcome of a credential-compromise check.
// StatusUndetermined means no signal was received; it is explicitly distinct
// from a definitive safe or unsafe answer and never surfaces a dialog.
type CredentialStatus int

const (
	CredentialStatusUndetermined CredentialStatus = iota
	CredentialStatusSafe
	CredentialStatusUnsafe
)

func (s CredentialStatus) String() string {
	switch s {
	case CredentialStatusSafe:
		return "Safe"
	case CredentialStatusUnsafe:
		return "Unsafe"
	}
	return "Undetermined"
}

// CredentialResult carries the check's status plus the provider's display
// text, when any.
type CredentialResult struct {
	Status CredentialStatus
	Text   string
}

// CredentialChecker submits a hashed password suffix for compromise lookup.
type CredentialChecker interface {
	Check(ctx context.Context, token, hashedSuffix, domain string) (CredentialResult, error)
}

// LocationFinding describes one unusual-location signal.
type LocationFinding struct {
	Label  string
	Detail string
}

// LocationService reports unusual login locations for a token.
type LocationService interface {
	Check(ctx context.Context, token string) ([]LocationFinding, error)
}
