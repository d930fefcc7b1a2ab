package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyguard/internal/risk"
)

func allowRule(name string, priority int) Rule {
	return Rule{
		Name:     name,
		Priority: priority,
		Evaluate: func([]risk.Finding, Context) Outcome { return Allow{} },
	}
}

func blockRule(name string, priority int, title string) Rule {
	return Rule{
		Name:     name,
		Priority: priority,
		Evaluate: func([]risk.Finding, Context) Outcome {
			return Block{Title: title, Message: title}
		},
	}
}

func TestPipeline_AllAllowCollapsesToAllow(t *testing.T) {
	p := NewPipeline([]Rule{allowRule("a", 0), allowRule("b", 1)})

	outcome, name := p.EvaluateNamed(nil, Context{})
	assert.IsType(t, Allow{}, outcome)
	assert.Empty(t, name)
}

func TestPipeline_EmptyRuleListAllows(t *testing.T) {
	p := NewPipeline(nil)
	assert.IsType(t, Allow{}, p.Evaluate(nil, Context{}))
}

func TestPipeline_ShortCircuitsOnFirstNonAllow(t *testing.T) {
	evaluated := []string{}
	trace := func(r Rule) Rule {
		inner := r.Evaluate
		r.Evaluate = func(f []risk.Finding, ctx Context) Outcome {
			evaluated = append(evaluated, r.Name)
			return inner(f, ctx)
		}
		return r
	}

	p := NewPipeline([]Rule{
		trace(allowRule("first", 0)),
		trace(blockRule("second", 1, "Second")),
		trace(blockRule("third", 2, "Third")),
	})

	outcome, name := p.EvaluateNamed(nil, Context{})
	block, ok := outcome.(Block)
	require.True(t, ok)
	assert.Equal(t, "Second", block.Title)
	assert.Equal(t, "second", name)
	assert.Equal(t, []string{"first", "second"}, evaluated, "third rule must not run")
}

func TestPipeline_OrdersByPriorityNotInsertionOrder(t *testing.T) {
	p := NewPipeline([]Rule{
		blockRule("later", 5, "Later"),
		blockRule("earlier", 1, "Earlier"),
	})

	block, ok := p.Evaluate(nil, Context{}).(Block)
	require.True(t, ok)
	assert.Equal(t, "Earlier", block.Title)
}

func TestPipeline_StepUpShortCircuitsLikeBlock(t *testing.T) {
	stepUp := Rule{
		Name:     "untrusted_device",
		Priority: 0,
		Evaluate: func([]risk.Finding, Context) Outcome {
			return RequireStepUp{Reason: "untrusted installation"}
		},
	}
	p := NewPipeline([]Rule{stepUp, blockRule("never", 1, "Never")})

	outcome := p.Evaluate(nil, Context{})
	su, ok := outcome.(RequireStepUp)
	require.True(t, ok)
	assert.Equal(t, "untrusted installation", su.Reason)
}

func TestPipeline_EvaluationIsIdempotent(t *testing.T) {
	findings := []risk.Finding{
		{Risk: risk.SpecificRisk{Name: risk.RiskMalware, Category: risk.CategoryApplication}, Status: risk.StatusUnsafe},
	}
	ctx := Context{RiskScore: 80, HighRiskThreshold: 50}
	p := NewPipeline(TransactionRules())

	first := p.Evaluate(findings, ctx)
	second := p.Evaluate(findings, ctx)
	assert.Equal(t, first, second)
}

func TestPipeline_ContextOnlyRuleFiresOnEmptyFindings(t *testing.T) {
	p := NewPipeline(TransactionRules())

	outcome := p.Evaluate(nil, Context{IdentityCompromised: true})
	block, ok := outcome.(Block)
	require.True(t, ok)
	assert.Equal(t, "Identity Compromised", block.Title)
}
