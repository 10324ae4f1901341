package store

import (
	"context"
	"sync"
	"time"

	"carteira/pkg/platform/middleware/requesttime"
	keyed "carteira/pkg/platform/sync"
)

type memoryEntry struct {
	issued    bool
	token     string
	expiresAt time.Time
}

// InMemory is a process-local ledger. Entries live for the process lifetime.
type InMemory struct {
	locks   *keyed.KeyedMutex
	entries sync.Map // registration -> memoryEntry
}

func NewInMemory() *InMemory {
	return &InMemory{locks: keyed.NewKeyedMutex(0)}
}

func (s *InMemory) Reserve(ctx context.Context, registration, token string, ttl time.Duration) error {
	now := requesttime.Now(ctx)
	return s.locks.WithLock(registration, func() error {
		if v, ok := s.entries.Load(registration); ok {
			e := v.(memoryEntry)
			if e.issued {
				return ErrIssued
			}
			if now.Before(e.expiresAt) {
				return ErrReserved
			}
		}
		s.entries.Store(registration, memoryEntry{token: token, expiresAt: now.Add(ttl)})
		return nil
	})
}

func (s *InMemory) Confirm(_ context.Context, registration string) error {
	return s.locks.WithLock(registration, func() error {
		s.entries.Store(registration, memoryEntry{issued: true})
		return nil
	})
}

func (s *InMemory) Release(_ context.Context, registration, token string) error {
	return s.locks.WithLock(registration, func() error {
		if v, ok := s.entries.Load(registration); ok {
			e := v.(memoryEntry)
			if !e.issued && e.token == token {
				s.entries.Delete(registration)
			}
		}
		return nil
	})
}

func (s *InMemory) IsIssued(_ context.Context, registration string) (bool, error) {
	v, ok := s.entries.Load(registration)
	if !ok {
		return false, nil
	}
	return v.(memoryEntry).issued, nil
}
