package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher assigns event identity and hands events to the store, either
// synchronously or through a buffered worker. Emission never fails the
// caller's flow: audit is an observation, not a gate.
type Publisher struct {
	store  Store
	logger *slog.Logger

	inbox  chan Event
	wg     sync.WaitGroup
	closed sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer switches emission to a background worker with the given
// buffer size. A full buffer drops the event rather than blocking the
// orchestration.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.inbox {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Warn("audit append failed", "action", event.Action, "error", err)
		}
	}
}

// Emit records one event. In async mode a full buffer drops the event with a
// warning; in sync mode store errors are logged and swallowed.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
			p.logger.Warn("audit buffer full, dropping event", "action", event.Action)
		}
		return
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.Warn("audit append failed", "action", event.Action, "error", err)
	}
}

// Close drains the async worker. Safe to call multiple times.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}
