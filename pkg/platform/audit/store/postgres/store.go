package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"

	audit "carteira/pkg/platform/audit"
)

// Store implements audit.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an audit event into the audit_events table. Replaying an
// event with the same ID is a no-op.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, timestamp, action, registration, city,
			decision, reason, request_id, client_device, client_ip
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	eventID := event.ID
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		event.Timestamp,
		event.Action,
		event.Registration,
		event.City,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ClientDevice,
		event.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListRecent returns the newest events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, action, registration, city, decision, reason, request_id, client_device, client_ip
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Registration, &e.City,
			&e.Decision, &e.Reason, &e.RequestID, &e.ClientDevice, &e.ClientIP); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// clampLimit keeps the limit inside int32 so pgx never sees an overflowing value.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	if limit > math.MaxInt32 {
		return math.MaxInt32
	}
	return limit
}
