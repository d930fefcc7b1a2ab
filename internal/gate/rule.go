package gate

import "moneyguard/internal/risk"

// Context is the session state a rule may inspect besides the current
// findings. All values are snapshots taken before evaluation; rules stay pure.
type Context struct {
	// RiskScore and HighRiskThreshold come from the persisted security
	// posture. A score of zero means no posture has been recorded yet.
	RiskScore         int
	HighRiskThreshold int

	// IdentityCompromised is the persisted flag set by an earlier
	// credential-compromise check. It outlives any individual scan.
	IdentityCompromised bool
}

// Predicate evaluates one rule against the findings and session context.
// It must be deterministic and free of side effects.
type Predicate func(findings []risk.Finding, ctx Context) Outcome

// Rule is a named, prioritized gate predicate. Lower priority runs first;
// the first non-Allow outcome wins, so ordering is a correctness invariant.
type Rule struct {
	Name     string
	Priority int
	Evaluate Predicate
}
