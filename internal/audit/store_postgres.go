package audit

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the postgres driver used by the audit_events table.
	_ "github.com/lib/pq"
)

// PostgresStore persists audit events in PostgreSQL. Pure I/O: ID and
// timestamp assignment belong to the publisher.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events
			(id, category, occurred_at, username, attempt_id, action, rule, outcome, reason, device_fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID, string(event.Category), event.Timestamp, event.Username,
		event.AttemptID, event.Action, event.Rule, event.Outcome, event.Reason,
		event.DeviceFingerprint,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, username string) ([]Event, error) {
	query := `
		SELECT id, category, occurred_at, username, attempt_id, action, rule, outcome, reason, device_fingerprint
		FROM audit_events
		WHERE username = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, category, occurred_at, username, attempt_id, action, rule, outcome, reason, device_fingerprint
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var category string
		if err := rows.Scan(&e.ID, &category, &e.Timestamp, &e.Username,
			&e.AttemptID, &e.Action, &e.Rule, &e.Outcome, &e.Reason,
			&e.DeviceFingerprint); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = Category(category)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
