package audit

import "context"

// Store is an append-only event sink. Implementations must preserve append
// order within a username.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, username string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
