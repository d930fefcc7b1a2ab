package gate

import (
	"sort"

	"moneyguard/internal/risk"
)

// Pipeline evaluates an ordered rule list and short-circuits on the first
// non-Allow outcome. Rules are fixed at construction; evaluation is a pure
// function of (findings, ctx).
type Pipeline struct {
	rules []Rule
}

// NewPipeline orders rules by ascending priority once, at construction.
// Priorities decide which block message a user sees when several rules would
// trigger, so the sort is stable to keep equal-priority rules in given order.
func NewPipeline(rules []Rule) *Pipeline {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return &Pipeline{rules: ordered}
}

// Rules returns the evaluation order, for introspection and tests.
func (p *Pipeline) Rules() []Rule {
	return p.rules
}

// Evaluate runs the rules in priority order. The first rule returning a
// non-Allow outcome wins and no further rules run. An empty rule list, or
// all rules allowing, collapses to Allow. An empty findings set yields Allow
// unless a rule blocks on context alone.
func (p *Pipeline) Evaluate(findings []risk.Finding, ctx Context) Outcome {
	for _, rule := range p.rules {
		outcome := rule.Evaluate(findings, ctx)
		if _, ok := outcome.(Allow); !ok {
			return outcome
		}
	}
	return Allow{}
}

// EvaluateNamed is Evaluate plus the name of the rule that decided the
// outcome, for audit records and metrics. The empty name means all rules
// allowed.
func (p *Pipeline) EvaluateNamed(findings []risk.Finding, ctx Context) (Outcome, string) {
	for _, rule := range p.rules {
		outcome := rule.Evaluate(findings, ctx)
		if _, ok := outcome.(Allow); !ok {
			return outcome, rule.Name
		}
	}
	return Allow{}, ""
}
