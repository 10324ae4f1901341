package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "carteira/pkg/domain-errors"
	audit "carteira/pkg/platform/audit"
	"carteira/pkg/platform/audit/metrics"
)

// Publisher captures structured audit events. It is append-only and hands
// persistence to the store so sinks can be swapped.
type Publisher struct {
	store   audit.Store
	events  chan audit.Event
	wg      sync.WaitGroup
	logger  *slog.Logger
	metrics *metrics.Metrics
	async   bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
// Events are queued and persisted in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan audit.Event, size)
			p.async = true
		}
	}
}

// WithPublisherLogger sets a logger for async error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(store audit.Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		if p.metrics != nil {
			p.metrics.QueueDepth.Dec()
		}
		// Detached from the request that produced the event.
		if err := p.persist(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event",
				"error", err,
				"action", event.Action,
				"event_id", event.ID.String(),
			)
		}
	}
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	start := time.Now()
	err := p.store.Append(ctx, event)
	if p.metrics != nil {
		p.metrics.PersistDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			p.metrics.PersistFailures.Inc()
		}
	}
	return err
}

// Close shuts down the async publisher and waits for pending events to drain.
func (p *Publisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if !p.async {
		return p.persist(ctx, event)
	}

	select {
	case p.events <- event:
		if p.metrics != nil {
			p.metrics.QueueDepth.Inc()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		if p.metrics != nil {
			p.metrics.EventsDropped.Inc()
		}
		if p.logger != nil {
			p.logger.Warn("audit buffer full, event dropped",
				"action", event.Action,
				"event_id", event.ID.String(),
			)
		}
		return dErrors.New(dErrors.CodeUnavailable, "audit buffer full")
	}
}
