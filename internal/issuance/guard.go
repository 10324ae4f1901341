// Package issuance gates credential production: a registration is issued
// once unless an operator supplies the override secret.
package issuance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carteira/internal/issuance/metrics"
	"carteira/internal/issuance/store"
	"carteira/internal/registration"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/tracer"
)

const (
	MsgAlreadyIssued = "Carteira já emitida para esta matrícula. Informe a senha de administrador para gerar novamente."
	MsgInFlight      = "Já existe uma emissão em andamento para esta matrícula. Aguarde alguns instantes."
	MsgWrongSecret   = "Senha de administrador incorreta"

	defaultReservationTTL = 2 * time.Minute
)

// Ledger records issued registrations and in-flight reservations.
// Error Contract:
// - Reserve returns store.ErrIssued or store.ErrReserved when the key is taken
// - Confirm is idempotent and unconditional
// - Release only drops a pending reservation holding token
type Ledger interface {
	Reserve(ctx context.Context, registration, token string, ttl time.Duration) error
	Confirm(ctx context.Context, registration string) error
	Release(ctx context.Context, registration, token string) error
	IsIssued(ctx context.Context, registration string) (bool, error)
}

// Decision is the outcome of a successful guard check. It must be passed
// back to Confirm or Release.
type Decision struct {
	Registration registration.Number
	Override     bool
	token        string
}

type Option func(*Guard)

func WithReservationTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(g *Guard) {
		g.tracer = t
	}
}

// Guard wraps a Ledger with the override policy.
type Guard struct {
	ledger     Ledger
	authorizer Authorizer
	ttl        time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     tracer.Tracer
}

func NewGuard(ledger Ledger, authorizer Authorizer, opts ...Option) *Guard {
	if authorizer == nil {
		authorizer = DenyAll{}
	}
	g := &Guard{
		ledger:     ledger,
		authorizer: authorizer,
		ttl:        defaultReservationTTL,
		logger:     slog.Default(),
		tracer:     tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAndReserve atomically claims reg for one issuance. A registration
// already issued, or held by another in-flight issuance, is already_issued.
func (g *Guard) CheckAndReserve(ctx context.Context, reg registration.Number) (_ Decision, err error) {
	ctx, span := g.tracer.Start(ctx, tracer.SpanGuard,
		tracer.String(tracer.AttrRegistration, tracer.HashRegistration(reg.String())),
	)
	defer func() { span.End(err) }()

	token := uuid.NewString()
	start := time.Now()
	err = g.ledger.Reserve(ctx, reg.String(), token, g.ttl)
	g.observe("reserve", start)
	switch {
	case err == nil:
		g.decision(metrics.DecisionAllowed)
		return Decision{Registration: reg, token: token}, nil
	case errors.Is(err, store.ErrIssued):
		g.decision(metrics.DecisionAlreadyIssued)
		return Decision{}, dErrors.New(dErrors.CodeAlreadyIssued, MsgAlreadyIssued)
	case errors.Is(err, store.ErrReserved):
		g.decision(metrics.DecisionInFlight)
		return Decision{}, dErrors.New(dErrors.CodeAlreadyIssued, MsgInFlight)
	default:
		g.ledgerError("reserve")
		return Decision{}, dErrors.Wrap(err, dErrors.CodeInternal, "issuance ledger unavailable")
	}
}

// OverrideWithSecret grants a one-time Allowed for reg when the secret is
// accepted. The guard stays active for later requests.
func (g *Guard) OverrideWithSecret(ctx context.Context, reg registration.Number, secret string) (Decision, error) {
	if !g.authorizer.Authorize(ctx, secret) {
		g.decision(metrics.DecisionOverrideDenied)
		return Decision{}, dErrors.New(dErrors.CodeWrongSecret, MsgWrongSecret)
	}
	g.decision(metrics.DecisionOverrideGranted)
	return Decision{Registration: reg, Override: true}, nil
}

// Confirm records the registration as issued. Call only after the
// document was produced.
func (g *Guard) Confirm(ctx context.Context, d Decision) error {
	start := time.Now()
	err := g.ledger.Confirm(ctx, d.Registration.String())
	g.observe("confirm", start)
	if err != nil {
		g.ledgerError("confirm")
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not record issuance")
	}
	if g.metrics != nil {
		g.metrics.Confirmations.Inc()
	}
	return nil
}

// Release drops the reservation held by d after a failed issuance.
// Override decisions hold no reservation.
func (g *Guard) Release(ctx context.Context, d Decision) {
	if d.Override || d.token == "" {
		return
	}
	start := time.Now()
	err := g.ledger.Release(ctx, d.Registration.String(), d.token)
	g.observe("release", start)
	if err != nil {
		g.ledgerError("release")
		g.logger.WarnContext(ctx, "failed to release issuance reservation", "error", err)
		return
	}
	if g.metrics != nil {
		g.metrics.Releases.Inc()
	}
}

// IsIssued reports whether reg already has a credential.
func (g *Guard) IsIssued(ctx context.Context, reg registration.Number) (bool, error) {
	issued, err := g.ledger.IsIssued(ctx, reg.String())
	if err != nil {
		g.ledgerError("is_issued")
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "issuance ledger unavailable")
	}
	return issued, nil
}

func (g *Guard) decision(label string) {
	if g.metrics != nil {
		g.metrics.IncDecision(label)
	}
}

func (g *Guard) ledgerError(op string) {
	if g.metrics != nil {
		g.metrics.IncLedgerError(op)
	}
}

func (g *Guard) observe(op string, start time.Time) {
	if g.metrics != nil {
		g.metrics.ObserveLedgerOp(op, time.Since(start).Seconds())
	}
}
