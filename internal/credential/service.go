// Package credential runs the issuance pipeline: validate the submission,
// resolve the registration, pass the issuance guard, compose and emit the
// card, record the issuance, then deliver it.
package credential

import (
	"context"
	"log/slog"
	"time"

	"carteira/internal/card/assets"
	"carteira/internal/card/canvas"
	"carteira/internal/card/styling"
	"carteira/internal/credential/delivery"
	"carteira/internal/credential/metrics"
	"carteira/internal/directory"
	"carteira/internal/issuance"
	"carteira/internal/platform/privacy"
	"carteira/internal/registration"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/audit"
	keyed "carteira/pkg/platform/sync"
	"carteira/pkg/platform/tracer"
)

const MsgRenderFailed = "Erro ao gerar PDF. Verifique os dados e tente novamente."

// Resolver maps a raw registration number to a resolved student.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*registration.ResolvedStudent, error)
}

// Guard decides whether a registration may receive a credential.
type Guard interface {
	CheckAndReserve(ctx context.Context, reg registration.Number) (issuance.Decision, error)
	OverrideWithSecret(ctx context.Context, reg registration.Number, secret string) (issuance.Decision, error)
	Confirm(ctx context.Context, d issuance.Decision) error
	Release(ctx context.Context, d issuance.Decision)
	IsIssued(ctx context.Context, reg registration.Number) (bool, error)
}

type Compositor interface {
	Compose(ctx context.Context, s *registration.ResolvedStudent, scheme styling.Scheme) (*canvas.Canvas, []assets.Warning)
}

type Emitter interface {
	Emit(ctx context.Context, cv *canvas.Canvas) ([]byte, error)
}

// IssueRequest is one issuance attempt. OverrideSecret is only consulted
// when the registration was already issued.
type IssueRequest struct {
	Submission     Submission
	OverrideSecret string
}

type IssueResult struct {
	Student     *registration.ResolvedStudent
	Document    []byte
	Filename    string
	ContentType string
	Delivery    delivery.Method
	Override    bool
	Warnings    []assets.Warning
}

// LookupResult prefills the issuance form.
type LookupResult struct {
	Student      *registration.ResolvedStudent
	Institutions []string
	Issued       bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditor(a *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithDeliverer(d delivery.Deliverer) Option {
	return func(s *Service) {
		s.deliverer = d
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

type Service struct {
	resolver   Resolver
	guard      Guard
	compositor Compositor
	emitter    Emitter
	deliverer  delivery.Deliverer
	locks      *keyed.KeyedMutex
	auditor    *audit.Logger
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     tracer.Tracer
}

func NewService(resolver Resolver, guard Guard, compositor Compositor, emitter Emitter, opts ...Option) *Service {
	s := &Service{
		resolver:   resolver,
		guard:      guard,
		compositor: compositor,
		emitter:    emitter,
		deliverer:  delivery.NewRouter(nil),
		locks:      keyed.NewKeyedMutex(0),
		logger:     slog.Default(),
		tracer:     tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves raw for the form prefill and reports whether the
// registration already has a credential.
func (s *Service) Lookup(ctx context.Context, raw string) (*LookupResult, error) {
	student, err := s.resolver.Resolve(ctx, raw)
	if err != nil {
		s.lookup(string(dErrors.CodeOf(err)))
		return nil, err
	}
	issued, err := s.guard.IsIssued(ctx, student.RegistrationNumber)
	if err != nil {
		s.lookup(string(dErrors.CodeInternal))
		return nil, err
	}
	s.lookup("found")
	return &LookupResult{
		Student:      student,
		Institutions: directory.InstitutionsFor(student.City),
		Issued:       issued,
	}, nil
}

// Issue runs the pipeline. A failure after the guard reserved the
// registration releases the reservation; the registration is recorded as
// issued only once the document exists.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (_ *IssueResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanIssue)
	defer func() { span.End(err) }()

	sub := req.Submission
	sub.Normalize()
	if sub.RegistrationNumber == "" {
		return nil, s.reject(ctx, "", "", sub.Validate())
	}

	student, err := s.resolver.Resolve(ctx, sub.RegistrationNumber)
	if err != nil {
		return nil, s.reject(ctx, sub.RegistrationNumber, "", err)
	}
	reg := student.RegistrationNumber
	span.SetAttributes(
		tracer.String(tracer.AttrRegistration, tracer.HashRegistration(reg.String())),
		tracer.String(tracer.AttrCity, student.City.String()),
	)

	sub.prefill(student)
	if err := sub.Validate(); err != nil {
		return nil, s.reject(ctx, reg.String(), student.City.String(), err)
	}
	merged, err := student.ApplySubmission(sub.callerFields())
	if err != nil {
		return nil, s.reject(ctx, reg.String(), student.City.String(), err)
	}
	student = merged

	s.locks.Lock(reg.String())
	defer s.locks.Unlock(reg.String())

	decision, err := s.admit(ctx, student, req.OverrideSecret)
	if err != nil {
		return nil, s.reject(ctx, reg.String(), student.City.String(), err)
	}
	span.SetAttributes(tracer.Bool(tracer.AttrOverride, decision.Override))

	doc, warnings, err := s.render(ctx, student)
	if err != nil {
		s.guard.Release(ctx, decision)
		return nil, s.reject(ctx, reg.String(), student.City.String(), err)
	}
	if err := s.guard.Confirm(ctx, decision); err != nil {
		s.guard.Release(ctx, decision)
		return nil, s.reject(ctx, reg.String(), student.City.String(), err)
	}

	result := &IssueResult{
		Student:     student,
		Document:    doc,
		Filename:    delivery.Filename(student.FullName),
		ContentType: delivery.ContentTypePDF,
		Delivery:    sub.DeliveryMethod,
		Override:    decision.Override,
		Warnings:    warnings,
	}
	if result.Delivery == "" {
		result.Delivery = delivery.MethodDownload
	}
	s.outcome(decision)
	s.auditor.Log(ctx, audit.Event{
		Action:       string(audit.EventCredentialIssued),
		Registration: privacy.MaskRegistration(reg.String()),
		City:         student.City.String(),
		Decision:     decisionLabel(decision),
	})

	if err := s.deliver(ctx, result, sub.Email); err != nil {
		return nil, err
	}
	return result, nil
}

// admit applies the guard. An already issued registration is admitted
// once when the override secret is accepted.
func (s *Service) admit(ctx context.Context, student *registration.ResolvedStudent, secret string) (issuance.Decision, error) {
	reg := student.RegistrationNumber
	decision, err := s.guard.CheckAndReserve(ctx, reg)
	if err == nil {
		return decision, nil
	}
	if !dErrors.HasCode(err, dErrors.CodeAlreadyIssued) || secret == "" {
		return issuance.Decision{}, err
	}

	decision, err = s.guard.OverrideWithSecret(ctx, reg, secret)
	event := audit.Event{
		Action:       string(audit.EventOverrideGranted),
		Registration: privacy.MaskRegistration(reg.String()),
		City:         student.City.String(),
	}
	if err != nil {
		event.Action = string(audit.EventOverrideDenied)
		event.Reason = string(dErrors.CodeOf(err))
	}
	s.auditor.Log(ctx, event)
	return decision, err
}

// render composes and serializes the card. Only serialization can fail;
// asset problems come back as warnings.
func (s *Service) render(ctx context.Context, student *registration.ResolvedStudent) ([]byte, []assets.Warning, error) {
	start := time.Now()
	scheme := styling.ColorFor(student.TransportType, student.City)
	cv, warnings := s.compositor.Compose(ctx, student, scheme)
	for _, w := range warnings {
		s.logger.WarnContext(ctx, "card asset degraded",
			"asset", string(w.Asset),
			"reason", w.Reason,
			"registration", privacy.MaskRegistration(student.RegistrationNumber.String()),
		)
		if s.metrics != nil {
			s.metrics.IncDegradation(string(w.Asset))
		}
	}
	if cv == nil {
		return nil, warnings, dErrors.New(dErrors.CodeRenderFailed, MsgRenderFailed)
	}

	doc, err := s.emitter.Emit(ctx, cv)
	if err != nil {
		s.logger.ErrorContext(ctx, "card serialization failed",
			"error", err,
			"registration", privacy.MaskRegistration(student.RegistrationNumber.String()),
		)
		return nil, warnings, dErrors.NewWithCause(err, dErrors.CodeRenderFailed, MsgRenderFailed)
	}
	if s.metrics != nil {
		s.metrics.ObserveRender(time.Since(start).Seconds(), len(doc))
	}
	return doc, warnings, nil
}

func (s *Service) deliver(ctx context.Context, result *IssueResult, recipient string) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDeliver)
	err := s.deliverer.Deliver(ctx, delivery.Delivery{
		Method:      result.Delivery,
		Recipient:   recipient,
		StudentName: result.Student.FullName,
		Filename:    result.Filename,
		Document:    result.Document,
	})
	span.End(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "credential delivery failed", "error", err, "method", string(result.Delivery))
		return err
	}
	if result.Delivery == delivery.MethodEmail {
		s.auditor.Log(ctx, audit.Event{
			Action:       string(audit.EventCredentialDelivered),
			Registration: privacy.MaskRegistration(result.Student.RegistrationNumber.String()),
			City:         result.Student.City.String(),
			Decision:     string(delivery.MethodEmail),
		})
	}
	return nil
}

// reject records a failed issuance and returns err unchanged.
func (s *Service) reject(ctx context.Context, reg, city string, err error) error {
	if err == nil {
		return nil
	}
	code := dErrors.CodeOf(err)
	if s.metrics != nil {
		s.metrics.IncOutcome(string(code))
	}
	if code == dErrors.CodeInternal || code == dErrors.CodeRenderFailed {
		s.logger.ErrorContext(ctx, "issuance failed", "error", err, "registration", privacy.MaskRegistration(reg))
	}
	s.auditor.Log(ctx, audit.Event{
		Action:       string(audit.EventCredentialRejected),
		Registration: privacy.MaskRegistration(reg),
		City:         city,
		Reason:       string(code),
	})
	return err
}

func (s *Service) outcome(d issuance.Decision) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncOutcome(decisionLabel(d))
}

func (s *Service) lookup(result string) {
	if s.metrics != nil {
		s.metrics.IncLookup(result)
	}
}

func decisionLabel(d issuance.Decision) string {
	if d.Override {
		return metrics.OutcomeOverridden
	}
	return metrics.OutcomeIssued
}
