package credential

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"carteira/internal/card/assets"
	"carteira/internal/card/canvas"
	"carteira/internal/credential/delivery"
	"carteira/internal/credential/metrics"
	"carteira/internal/credential/mocks"
	"carteira/internal/directory"
	"carteira/internal/issuance"
	"carteira/internal/registration"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/audit"
	"carteira/pkg/platform/audit/publisher"
	auditmemory "carteira/pkg/platform/audit/store/memory"
	"carteira/pkg/platform/middleware/requesttime"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Resolver,Guard,Compositor,Emitter

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	resolver   *mocks.MockResolver
	guard      *mocks.MockGuard
	compositor *mocks.MockCompositor
	emitter    *mocks.MockEmitter
	events     *auditmemory.InMemoryStore
	metrics    *metrics.Metrics
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requesttime.WithTime(context.Background(), time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC))
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockResolver(s.ctrl)
	s.guard = mocks.NewMockGuard(s.ctrl)
	s.compositor = mocks.NewMockCompositor(s.ctrl)
	s.emitter = mocks.NewMockEmitter(s.ctrl)
	s.events = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = NewService(s.resolver, s.guard, s.compositor, s.emitter,
		WithAuditor(audit.NewLogger(nil, publisher.NewPublisher(s.events))),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testPhoto() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4)))
	return buf.Bytes()
}

func validSubmission() Submission {
	return Submission{
		BirthDate:          "2004-05-17",
		GradeLevel:         "Superior",
		RegistrationNumber: "101050",
		ContactInfo:        "(34) 99999-0000",
		Photo:              testPhoto(),
	}
}

func resolvedMaria() *registration.ResolvedStudent {
	return &registration.ResolvedStudent{
		RegistrationNumber: "101050",
		City:               directory.CityUberaba,
		FullName:           "Maria Silva",
		Institution:        "UNIUBE",
		Course:             "Engenharia",
		TransportType:      "Ônibus Municipal",
		TransportOptions:   []string{"Ônibus Municipal"},
		TransportLocked:    true,
	}
}

func (s *ServiceSuite) actions(registration string) []string {
	events, err := s.events.ListByRegistration(s.ctx, registration)
	s.Require().NoError(err)
	var out []string
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

func (s *ServiceSuite) TestIssueHappyPath() {
	decision := issuance.Decision{Registration: "101050"}
	cv := canvas.New(requesttime.Now(s.ctx), "x")

	s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
	s.guard.EXPECT().CheckAndReserve(gomock.Any(), registration.Number("101050")).Return(decision, nil)
	s.compositor.EXPECT().Compose(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, st *registration.ResolvedStudent, _ any) (*canvas.Canvas, []assets.Warning) {
			s.Equal("Ônibus Municipal", st.TransportType)
			s.Equal("Superior", st.GradeLevel)
			return cv, nil
		})
	s.emitter.EXPECT().Emit(gomock.Any(), cv).Return([]byte("%PDF-1.3"), nil)
	s.guard.EXPECT().Confirm(gomock.Any(), decision).Return(nil)

	result, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission()})
	s.Require().NoError(err)
	s.Equal("maria-silva.pdf", result.Filename)
	s.Equal(delivery.ContentTypePDF, result.ContentType)
	s.Equal(delivery.MethodDownload, result.Delivery)
	s.False(result.Override)
	s.Equal([]string{string(audit.EventCredentialIssued)}, s.actions("10****"))
	s.InDelta(1, testutil.ToFloat64(s.metrics.IssuanceOutcomes.WithLabelValues(metrics.OutcomeIssued)), 0)
}

func (s *ServiceSuite) TestIssueMissingFields() {
	s.Run("blank registration reports every missing field without a lookup", func() {
		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: Submission{}})
		s.Require().Error(err)

		var de *dErrors.Error
		s.Require().True(errors.As(err, &de))
		s.Equal(dErrors.CodeMissingFields, de.Code)
		s.Equal([]string{
			"Nome completo", "Data de nascimento", "Nome da escola", "Nível de ensino",
			"Nome do curso", "Número de matrícula", "Informações de contato", "Cidade",
			"Tipo de transporte", "Foto",
		}, de.Fields)
	})

	s.Run("directory fields count as present", func() {
		sub := validSubmission()
		sub.Photo = nil
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)

		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: sub})
		var de *dErrors.Error
		s.Require().True(errors.As(err, &de))
		s.Equal([]string{"Foto"}, de.Fields)
	})

	s.Run("email required when sending by email", func() {
		sub := validSubmission()
		sub.DeliveryMethod = delivery.MethodEmail
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)

		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: sub})
		var de *dErrors.Error
		s.Require().True(errors.As(err, &de))
		s.Equal([]string{"E-mail"}, de.Fields)
	})

	s.Run("malformed email", func() {
		sub := validSubmission()
		sub.DeliveryMethod = delivery.MethodEmail
		sub.Email = "not-an-email"
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)

		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: sub})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestIssueResolverErrorsPassThrough() {
	s.resolver.EXPECT().Resolve(gomock.Any(), "999999").
		Return(nil, dErrors.New(dErrors.CodeInvalidFormat, registration.MsgFormat))

	sub := validSubmission()
	sub.RegistrationNumber = "999999"
	_, err := s.service.Issue(s.ctx, IssueRequest{Submission: sub})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	s.Equal([]string{string(audit.EventCredentialRejected)}, s.actions("99****"))
}

func (s *ServiceSuite) TestIssueTransportOutsideOptions() {
	student := resolvedMaria()
	student.TransportLocked = false
	student.TransportOptions = []string{"Ônibus Municipal", "Van Escolar"}
	student.TransportType = ""
	s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(student, nil)

	sub := validSubmission()
	sub.TransportType = "Novatur Ltda"
	_, err := s.service.Issue(s.ctx, IssueRequest{Submission: sub})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestIssueAlreadyIssued() {
	issued := dErrors.New(dErrors.CodeAlreadyIssued, issuance.MsgAlreadyIssued)

	s.Run("no secret", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
		s.guard.EXPECT().CheckAndReserve(gomock.Any(), gomock.Any()).Return(issuance.Decision{}, issued)

		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission()})
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyIssued))
	})

	s.Run("wrong secret", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
		s.guard.EXPECT().CheckAndReserve(gomock.Any(), gomock.Any()).Return(issuance.Decision{}, issued)
		s.guard.EXPECT().OverrideWithSecret(gomock.Any(), registration.Number("101050"), "nope").
			Return(issuance.Decision{}, dErrors.New(dErrors.CodeWrongSecret, issuance.MsgWrongSecret))

		_, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission(), OverrideSecret: "nope"})
		s.True(dErrors.HasCode(err, dErrors.CodeWrongSecret))
	})

	s.Run("accepted secret issues once", func() {
		override := issuance.Decision{Registration: "101050", Override: true}
		cv := canvas.New(requesttime.Now(s.ctx), "x")
		s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
		s.guard.EXPECT().CheckAndReserve(gomock.Any(), gomock.Any()).Return(issuance.Decision{}, issued)
		s.guard.EXPECT().OverrideWithSecret(gomock.Any(), registration.Number("101050"), "segredo").Return(override, nil)
		s.compositor.EXPECT().Compose(gomock.Any(), gomock.Any(), gomock.Any()).Return(cv, nil)
		s.emitter.EXPECT().Emit(gomock.Any(), cv).Return([]byte("%PDF"), nil)
		s.guard.EXPECT().Confirm(gomock.Any(), override).Return(nil)

		result, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission(), OverrideSecret: "segredo"})
		s.Require().NoError(err)
		s.True(result.Override)
	})

	s.Equal([]string{
		string(audit.EventCredentialRejected),
		string(audit.EventOverrideDenied),
		string(audit.EventCredentialRejected),
		string(audit.EventOverrideGranted),
		string(audit.EventCredentialIssued),
	}, s.actions("10****"))
}

func (s *ServiceSuite) TestIssueSerializationFailureReleases() {
	decision := issuance.Decision{Registration: "101050"}
	cv := canvas.New(requesttime.Now(s.ctx), "x")

	s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
	s.guard.EXPECT().CheckAndReserve(gomock.Any(), gomock.Any()).Return(decision, nil)
	s.compositor.EXPECT().Compose(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(cv, []assets.Warning{{Asset: assets.KindQR, Reason: "payload too long"}})
	s.emitter.EXPECT().Emit(gomock.Any(), cv).Return(nil, errors.New("fpdf: broken image"))
	s.guard.EXPECT().Release(gomock.Any(), decision)

	_, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission()})
	s.True(dErrors.HasCode(err, dErrors.CodeRenderFailed))
	s.EqualError(err, MsgRenderFailed)
	s.InDelta(1, testutil.ToFloat64(s.metrics.AssetDegradations.WithLabelValues(string(assets.KindQR))), 0)
	s.InDelta(1, testutil.ToFloat64(s.metrics.IssuanceOutcomes.WithLabelValues(string(dErrors.CodeRenderFailed))), 0)
}

func (s *ServiceSuite) TestIssueConfirmFailureReleases() {
	decision := issuance.Decision{Registration: "101050"}
	cv := canvas.New(requesttime.Now(s.ctx), "x")

	s.resolver.EXPECT().Resolve(gomock.Any(), "101050").Return(resolvedMaria(), nil)
	s.guard.EXPECT().CheckAndReserve(gomock.Any(), gomock.Any()).Return(decision, nil)
	s.compositor.EXPECT().Compose(gomock.Any(), gomock.Any(), gomock.Any()).Return(cv, nil)
	s.emitter.EXPECT().Emit(gomock.Any(), cv).Return([]byte("%PDF"), nil)
	s.guard.EXPECT().Confirm(gomock.Any(), decision).Return(dErrors.New(dErrors.CodeInternal, "could not record issuance"))
	s.guard.EXPECT().Release(gomock.Any(), decision)

	_, err := s.service.Issue(s.ctx, IssueRequest{Submission: validSubmission()})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestLookup() {
	s.Run("found", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "303051").Return(&registration.ResolvedStudent{
			RegistrationNumber: "303051",
			City:               directory.CityMonteCarmelo,
		}, nil)
		s.guard.EXPECT().IsIssued(gomock.Any(), registration.Number("303051")).Return(true, nil)

		result, err := s.service.Lookup(s.ctx, "303051")
		s.Require().NoError(err)
		s.True(result.Issued)
		s.Contains(result.Institutions, "Unifucamp")
	})

	s.Run("not found", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "109999").
			Return(nil, dErrors.New(dErrors.CodeNotFound, registration.MsgNotFound))

		_, err := s.service.Lookup(s.ctx, "109999")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.InDelta(1, testutil.ToFloat64(s.metrics.Lookups.WithLabelValues(string(dErrors.CodeNotFound))), 0)
	})
}
