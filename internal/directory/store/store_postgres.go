package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"carteira/internal/directory"
)

// Postgres reads student records from the students table.
type Postgres struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

// NewPostgres constructs a PostgreSQL-backed directory.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, typeMap: pgtype.NewMap()}
}

func (s *Postgres) Lookup(ctx context.Context, registration string) (*directory.StudentRecord, error) {
	query := `
		SELECT registration_number, full_name, cpf, rg, institution, course, city, transport_providers
		FROM students
		WHERE registration_number = $1
	`
	var (
		rec       directory.StudentRecord
		city      string
		providers []string
	)
	err := s.db.QueryRowContext(ctx, query, registration).Scan(
		&rec.RegistrationNumber,
		&rec.FullName,
		&rec.CPF,
		&rec.RG,
		&rec.Institution,
		&rec.Course,
		&city,
		s.typeMap.SQLScanner(&providers),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, directory.ErrNotFound
		}
		return nil, fmt.Errorf("lookup student: %w", err)
	}
	rec.City = directory.City(city)
	if len(providers) > 0 {
		rec.TransportProviders = providers
	}
	return &rec, nil
}

// Seed upserts records in a single transaction. Existing rows are
// replaced so a re-seed reflects the latest file.
func (s *Postgres) Seed(ctx context.Context, records []directory.StudentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO students (registration_number, full_name, cpf, rg, institution, course, city, transport_providers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (registration_number) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			cpf = EXCLUDED.cpf,
			rg = EXCLUDED.rg,
			institution = EXCLUDED.institution,
			course = EXCLUDED.course,
			city = EXCLUDED.city,
			transport_providers = EXCLUDED.transport_providers
	`
	for _, rec := range records {
		providers := rec.TransportProviders
		if providers == nil {
			providers = []string{}
		}
		if _, err := tx.ExecContext(ctx, query,
			rec.RegistrationNumber,
			rec.FullName,
			rec.CPF,
			rec.RG,
			rec.Institution,
			rec.Course,
			string(rec.City),
			providers,
		); err != nil {
			return fmt.Errorf("seed student %s: %w", rec.RegistrationNumber, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

var _ directory.Repository = (*Postgres)(nil)
