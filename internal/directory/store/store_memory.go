package store

import (
	"context"
	"fmt"

	"carteira/internal/directory"
)

// InMemory is an immutable directory built once from seed records.
// Safe for concurrent reads; there are no writers after construction.
type InMemory struct {
	records map[string]*directory.StudentRecord
}

// NewInMemory indexes records by registration number. Duplicate
// registrations are rejected.
func NewInMemory(records []directory.StudentRecord) (*InMemory, error) {
	idx := make(map[string]*directory.StudentRecord, len(records))
	for i := range records {
		rec := records[i]
		if _, dup := idx[rec.RegistrationNumber]; dup {
			return nil, fmt.Errorf("duplicate registration %s", rec.RegistrationNumber)
		}
		idx[rec.RegistrationNumber] = rec.Clone()
	}
	return &InMemory{records: idx}, nil
}

// Lookup returns a copy of the record or directory.ErrNotFound.
func (s *InMemory) Lookup(_ context.Context, registration string) (*directory.StudentRecord, error) {
	rec, ok := s.records[registration]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return rec.Clone(), nil
}

// Len returns the number of indexed records.
func (s *InMemory) Len() int {
	return len(s.records)
}

var _ directory.Repository = (*InMemory)(nil)
