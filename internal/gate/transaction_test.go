package gate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"moneyguard/internal/risk"
)

// TransactionGateSuite exercises the canonical funds-debit rule register:
// priority ordering, posture rules on an empty register, and the first-match
// message contract.
type TransactionGateSuite struct {
	suite.Suite
	pipeline *Pipeline
}

func (s *TransactionGateSuite) SetupTest() {
	s.pipeline = NewPipeline(TransactionRules())
}

func TestTransactionGateSuite(t *testing.T) {
	suite.Run(t, new(TransactionGateSuite))
}

func finding(name string, cat risk.Category, status risk.Status) risk.Finding {
	return risk.Finding{
		Risk:   risk.SpecificRisk{Name: name, Category: cat},
		Status: status,
	}
}

func (s *TransactionGateSuite) safeCtx() Context {
	return Context{RiskScore: 80, HighRiskThreshold: 50}
}

func (s *TransactionGateSuite) TestPriorityOrdering() {
	s.Run("malware beats rooted device", func() {
		findings := []risk.Finding{
			finding(risk.RiskRootedDevice, risk.CategoryDevice, risk.StatusUnsafe),
			finding(risk.RiskMalware, risk.CategoryApplication, risk.StatusUnsafe),
		}
		block, ok := s.pipeline.Evaluate(findings, s.safeCtx()).(Block)
		s.Require().True(ok)
		s.Equal("Malware Detected", block.Title)
	})

	s.Run("identity flag beats every register finding", func() {
		ctx := s.safeCtx()
		ctx.IdentityCompromised = true
		findings := []risk.Finding{
			finding(risk.RiskMalware, risk.CategoryApplication, risk.StatusUnsafe),
			finding(risk.RiskMITM, risk.CategoryNetwork, risk.StatusUnsafe),
		}
		block, ok := s.pipeline.Evaluate(findings, ctx).(Block)
		s.Require().True(ok)
		s.Equal("Identity Compromised", block.Title)
	})

	s.Run("unsecure wifi beats mitm", func() {
		findings := []risk.Finding{
			finding(risk.RiskMITM, risk.CategoryNetwork, risk.StatusUnsafe),
			finding(risk.RiskUnsecuredWifi, risk.CategoryNetwork, risk.StatusWarn),
		}
		block, ok := s.pipeline.Evaluate(findings, s.safeCtx()).(Block)
		s.Require().True(ok)
		s.Equal("Unsecure Network", block.Title)
	})
}

func (s *TransactionGateSuite) TestLowRiskPosture() {
	s.Run("score below threshold blocks even with empty register", func() {
		ctx := Context{RiskScore: 30, HighRiskThreshold: 50}
		block, ok := s.pipeline.Evaluate(nil, ctx).(Block)
		s.Require().True(ok)
		s.Equal("Low Risk Posture", block.Title)
	})

	s.Run("zero score means no posture recorded and does not block", func() {
		ctx := Context{RiskScore: 0, HighRiskThreshold: 50}
		s.IsType(Allow{}, s.pipeline.Evaluate(nil, ctx))
	})

	s.Run("score at threshold allows", func() {
		ctx := Context{RiskScore: 50, HighRiskThreshold: 50}
		s.IsType(Allow{}, s.pipeline.Evaluate(nil, ctx))
	})
}

func (s *TransactionGateSuite) TestNoMatchAllows() {
	findings := []risk.Finding{
		finding(risk.RiskOutdatedOS, risk.CategoryDevice, risk.StatusWarn),
	}
	s.IsType(Allow{}, s.pipeline.Evaluate(findings, s.safeCtx()))
}

func TestTransactionRules_PrioritiesAreUniqueAndOrdered(t *testing.T) {
	p := NewPipeline(TransactionRules())
	seen := map[int]bool{}
	last := -1
	for _, r := range p.Rules() {
		require.False(t, seen[r.Priority], "duplicate priority %d", r.Priority)
		require.Greater(t, r.Priority, last)
		seen[r.Priority] = true
		last = r.Priority
	}
}
