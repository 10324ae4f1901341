// Package circuit tracks consecutive failures of an optional dependency so
// callers can stop leaning on it while it is unhealthy.
package circuit

import "sync"

type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Transition reports whether a Record call flipped the state.
type Transition struct {
	Opened bool
	Closed bool
}

// Breaker is a two-state breaker. It opens after failureThreshold
// consecutive failures and closes after successThreshold consecutive
// successes while open. Callers keep probing the dependency while open.
type Breaker struct {
	name             string
	failureThreshold int
	successThreshold int

	mu        sync.Mutex
	state     State
	failures  int
	successes int
}

type Option func(*Breaker)

// WithFailureThreshold defaults to 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold defaults to 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{name: name, failureThreshold: 5, successThreshold: 3}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool { return b.State() == StateOpen }

// RecordFailure counts a failed call.
func (b *Breaker) RecordFailure() Transition {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	if b.state == StateOpen {
		return Transition{}
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = StateOpen
		return Transition{Opened: true}
	}
	return Transition{}
}

// RecordSuccess counts a successful call.
func (b *Breaker) RecordSuccess() Transition {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		b.failures = 0
		return Transition{}
	}
	b.successes++
	if b.successes >= b.successThreshold {
		b.state = StateClosed
		b.failures = 0
		b.successes = 0
		return Transition{Closed: true}
	}
	return Transition{}
}
