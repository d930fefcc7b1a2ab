package gate

// Outcome is the closed result set of a gate evaluation. Consumers switch
// exhaustively over the three variants; there is no fourth case.
type Outcome interface {
	isOutcome()
}

// Allow lets the guarded operation proceed.
type Allow struct{}

// Block halts the guarded operation. Title and Message are user-facing.
type Block struct {
	Title   string
	Message string
}

// RequireStepUp degrades the operation: it may proceed only after a stronger
// identity verification completes.
type RequireStepUp struct {
	Reason string
}

func (Allow) isOutcome()         {}
func (Block) isOutcome()         {}
func (RequireStepUp) isOutcome() {}

// Kind returns a stable label for metrics and audit records.
func Kind(o Outcome) string {
	switch o.(type) {
	case Allow:
		return "allow"
	case Block:
		return "block"
	case RequireStepUp:
		return "step_up"
	}
	return "unknown"
}
