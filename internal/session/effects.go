package session

import (
	"sync"

	"moneyguard/internal/risk"
)

// Effect is the closed set of UI-directed instructions the orchestrator
// emits. Consumers switch exhaustively; there is no catch-all case.
type Effect interface {
	isEffect()
}

// ShowRiskDialog presents one prelaunch finding. Dialogs are sequential: the
// next is emitted only after the caller acknowledges this one.
type ShowRiskDialog struct {
	Finding risk.Finding
	Message string
}

// ShowCredentialResult surfaces a definitive credential-check answer.
type ShowCredentialResult struct {
	Text string
}

// ShowUnusualLocationPrompt asks the caller to verify or proceed.
type ShowUnusualLocationPrompt struct {
	Findings []LocationFinding
}

// ShowUntrustedDeviceStepUp signals that a second factor must complete
// before the session continues.
type ShowUntrustedDeviceStepUp struct {
	Reason string
}

// NavigateAuthorized routes the caller to the dashboard.
type NavigateAuthorized struct{}

// NavigateBlocked routes the caller to a blocking overlay.
type NavigateBlocked struct {
	Title   string
	Message string
}

func (ShowRiskDialog) isEffect()            {}
func (ShowCredentialResult) isEffect()      {}
func (ShowUnusualLocationPrompt) isEffect() {}
func (ShowUntrustedDeviceStepUp) isEffect() {}
func (NavigateAuthorized) isEffect()        {}
func (NavigateBlocked) isEffect()           {}

// EffectQueue is the ordered, single-producer single-consumer channel
// between orchestrator and caller. The queue is index-bounded in practice
// (at most one dialog outstanding at a time), so a slice under a mutex is
// enough; there is no back-pressure concern.
type EffectQueue struct {
	mu      sync.Mutex
	pending []Effect
	closed  bool
	dropped func()
}

// NewEffectQueue builds a queue. onDrop is invoked for every effect emitted
// after Close; it may be nil.
func NewEffectQueue(onDrop func()) *EffectQueue {
	return &EffectQueue{dropped: onDrop}
}

// Emit appends an effect in emission order. Effects emitted after Close are
// discarded: an abandoned attempt must not keep surfacing UI.
func (q *EffectQueue) Emit(e Effect) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		if q.dropped != nil {
			q.dropped()
		}
		return
	}
	q.pending = append(q.pending, e)
}

// Drain returns all undelivered effects in emission order and clears them.
func (q *EffectQueue) Drain() []Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Close stops delivery. Already-queued effects remain drainable.
func (q *EffectQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
