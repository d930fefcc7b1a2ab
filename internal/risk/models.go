package risk

// Category groups risks by the surface they originate from.
type Category string

const (
	CategoryDevice      Category = "device"
	CategoryNetwork     Category = "network"
	CategoryApplication Category = "application"
	CategoryUser        Category = "user"
)

// Status is the coarse severity a risk source attaches to a finding.
// UnsafeCredentials and UnsafeLocation are siblings: both stricter than
// Warn, both weaker than a full Unsafe.
type Status uint8

const (
	StatusSafe Status = iota
	StatusWarn
	StatusUnsafeCredentials
	StatusUnsafeLocation
	StatusUnsafe
)

// rank collapses the sibling unsafe statuses onto one severity level so
// ordering comparisons stay total.
func (s Status) rank() int {
	switch s {
	case StatusSafe:
		return 0
	case StatusWarn:
		return 1
	case StatusUnsafeCredentials, StatusUnsafeLocation:
		return 2
	case StatusUnsafe:
		return 3
	}
	return 0
}

// Meets reports whether s is at least as severe as min.
func (s Status) Meets(min Status) bool {
	return s.rank() >= min.rank()
}

func (s Status) String() string {
	switch s {
	case StatusSafe:
		return "safe"
	case StatusWarn:
		return "warn"
	case StatusUnsafeCredentials:
		return "unsafe_credentials"
	case StatusUnsafeLocation:
		return "unsafe_location"
	case StatusUnsafe:
		return "unsafe"
	}
	return "unknown"
}

// SpecificRisk is an immutable risk signal produced by a Source. Name is the
// stable identifier the catalog and gate rules key on.
type SpecificRisk struct {
	Name     string
	Category Category
	Detail   string
}

// Finding pairs a risk with the status that triggered it. Raw carries the
// source's response verbatim for audit logging; it is never interpreted.
type Finding struct {
	Risk   SpecificRisk
	Status Status
	Raw    string
}

// ScanReport is the result of one Source invocation.
type ScanReport struct {
	Status   Status
	Findings []Finding
}

// Canonical risk names shared by the prelaunch scan and the transaction
// register. Sources may report risks outside this list; the catalog falls
// back to the finding's own detail text for those.
const (
	RiskMalware       = "application.malware"
	RiskUnsecuredWifi = "network.unsecured_wifi"
	RiskRootedDevice  = "device.rooted"
	RiskMITM          = "network.mitm"
	RiskDebugger      = "device.debugger"
	RiskOutdatedOS    = "device.outdated_os"
)
