package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the orchestrator and gates.
type Metrics struct {
	GateOutcomes         *prometheus.CounterVec
	OrchestrationsEnded  *prometheus.CounterVec
	CollaboratorFailures *prometheus.CounterVec
	EffectsDropped       prometheus.Counter
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		GateOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_gate_outcomes_total",
			Help: "Gate pipeline outcomes by deciding rule and outcome kind",
		}, []string{"rule", "outcome"}),
		OrchestrationsEnded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_orchestrations_ended_total",
			Help: "Login orchestrations reaching a terminal state, by result",
		}, []string{"result"}),
		CollaboratorFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_collaborator_failures_total",
			Help: "External collaborator failures by step and applied policy",
		}, []string{"step", "policy"}),
		EffectsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneyguard_effects_dropped_total",
			Help: "Effects dropped because the attempt was abandoned",
		}),
	}
}

// NewForTest creates collectors on a private registry so parallel tests do
// not collide on the default registerer.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		GateOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_gate_outcomes_total",
			Help: "Gate pipeline outcomes by deciding rule and outcome kind",
		}, []string{"rule", "outcome"}),
		OrchestrationsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_orchestrations_ended_total",
			Help: "Login orchestrations reaching a terminal state, by result",
		}, []string{"result"}),
		CollaboratorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moneyguard_collaborator_failures_total",
			Help: "External collaborator failures by step and applied policy",
		}, []string{"step", "policy"}),
		EffectsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "moneyguard_effects_dropped_total",
			Help: "Effects dropped because the attempt was abandoned",
		}),
	}
}
