package memory

import (
	"context"
	"sync"

	audit "carteira/pkg/platform/audit"
)

// InMemoryStore keeps audit events in process memory. Used for tests and
// single-node deployments without Kafka.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByRegistration returns events for a masked registration, oldest first.
func (s *InMemoryStore) ListByRegistration(_ context.Context, registration string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Registration == registration {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns up to limit of the newest events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]audit.Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
