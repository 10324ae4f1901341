// Package registration resolves a registration number to the student it
// identifies: format and city derivation, directory lookup and the transport
// options the student may choose from.
package registration

import (
	"context"
	"errors"
	"log/slog"

	"carteira/internal/directory"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/tracer"
)

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// Service is the resolver. It holds no mutable state; repeated calls with
// the same input return equal results.
type Service struct {
	repo   directory.Repository
	logger *slog.Logger
	tracer tracer.Tracer
}

func NewService(repo directory.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve parses raw, looks the number up, and derives transport options.
// Errors: invalid_format for blank or unmatched input, not_found for an
// absent record, internal_error when the directory fails.
func (s *Service) Resolve(ctx context.Context, raw string) (_ *ResolvedStudent, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanResolve)
	defer func() { span.End(err) }()

	number, city, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		tracer.String(tracer.AttrRegistration, tracer.HashRegistration(number.String())),
		tracer.String(tracer.AttrCity, city.String()),
	)

	rec, err := s.repo.Lookup(ctx, number.String())
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, MsgNotFound)
		}
		s.logger.ErrorContext(ctx, "directory lookup failed", "city", city, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "directory lookup failed")
	}

	options := TransportOptions(city, rec)
	resolved := &ResolvedStudent{
		RegistrationNumber: number,
		City:               city,
		FullName:           rec.FullName,
		CPF:                rec.CPF,
		RG:                 rec.RG,
		Institution:        rec.Institution,
		Course:             rec.Course,
		TransportOptions:   options,
		TransportLocked:    len(options) == 1,
	}
	if resolved.TransportLocked {
		resolved.TransportType = options[0]
	}
	span.SetAttributes(tracer.Bool(tracer.AttrTransport, resolved.TransportLocked))
	return resolved, nil
}
