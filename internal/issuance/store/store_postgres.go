package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carteira/pkg/platform/middleware/requesttime"
)

// Postgres stores the ledger in the issuance_ledger table. An expired
// pending row is taken over by the next reservation.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Reserve(ctx context.Context, registration, token string, ttl time.Duration) error {
	now := requesttime.Now(ctx)
	query := `
		INSERT INTO issuance_ledger (registration_number, status, reservation_token, reserved_at, expires_at)
		VALUES ($1, 'pending', $2, $3, $4)
		ON CONFLICT (registration_number) DO UPDATE SET
			reservation_token = EXCLUDED.reservation_token,
			reserved_at = EXCLUDED.reserved_at,
			expires_at = EXCLUDED.expires_at
		WHERE issuance_ledger.status = 'pending'
			AND issuance_ledger.expires_at <= EXCLUDED.reserved_at
		RETURNING registration_number
	`
	var reserved string
	err := s.db.QueryRowContext(ctx, query, registration, token, now, now.Add(ttl)).Scan(&reserved)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reserve issuance: %w", err)
	}

	var status string
	err = s.db.QueryRowContext(ctx,
		`SELECT status FROM issuance_ledger WHERE registration_number = $1`, registration,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReserved
		}
		return fmt.Errorf("read issuance ledger: %w", err)
	}
	if status == "issued" {
		return ErrIssued
	}
	return ErrReserved
}

func (s *Postgres) Confirm(ctx context.Context, registration string) error {
	now := requesttime.Now(ctx)
	query := `
		INSERT INTO issuance_ledger (registration_number, status, reserved_at, confirmed_at)
		VALUES ($1, 'issued', $2, $2)
		ON CONFLICT (registration_number) DO UPDATE SET
			status = 'issued',
			reservation_token = NULL,
			expires_at = NULL,
			confirmed_at = COALESCE(issuance_ledger.confirmed_at, EXCLUDED.confirmed_at)
	`
	if _, err := s.db.ExecContext(ctx, query, registration, now); err != nil {
		return fmt.Errorf("confirm issuance: %w", err)
	}
	return nil
}

func (s *Postgres) Release(ctx context.Context, registration, token string) error {
	query := `
		DELETE FROM issuance_ledger
		WHERE registration_number = $1 AND status = 'pending' AND reservation_token = $2
	`
	if _, err := s.db.ExecContext(ctx, query, registration, token); err != nil {
		return fmt.Errorf("release issuance: %w", err)
	}
	return nil
}

func (s *Postgres) IsIssued(ctx context.Context, registration string) (bool, error) {
	var issued bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM issuance_ledger WHERE registration_number = $1 AND status = 'issued')`,
		registration,
	).Scan(&issued)
	if err != nil {
		return false, fmt.Errorf("read issuance ledger: %w", err)
	}
	return issued, nil
}
