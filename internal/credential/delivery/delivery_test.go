package delivery

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "carteira/pkg/domain-errors"
)

type captureMailer struct {
	sent []Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type DeliverySuite struct {
	suite.Suite
	ctx context.Context
}

func TestDeliverySuite(t *testing.T) {
	suite.Run(t, new(DeliverySuite))
}

func (s *DeliverySuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *DeliverySuite) TestFilename() {
	cases := map[string]string{
		"João da Silva":         "joao-da-silva.pdf",
		"  Maria   Silva ":      "maria-silva.pdf",
		"Lucas Oliveira Santos": "lucas-oliveira-santos.pdf",
		"Ana (Bia) Marques!":    "ana-bia-marques.pdf",
		"":                      DefaultFilename,
		"***":                   DefaultFilename,
	}
	for in, want := range cases {
		s.Equal(want, Filename(in), in)
	}
}

func (s *DeliverySuite) TestParseMethod() {
	s.Equal(MethodEmail, ParseMethod("true"))
	s.Equal(MethodDownload, ParseMethod("false"))
	s.Equal(MethodDownload, ParseMethod(""))
}

func (s *DeliverySuite) TestRouter() {
	s.Run("download is a no-op", func() {
		mailer := &captureMailer{}
		s.Require().NoError(NewRouter(mailer).Deliver(s.ctx, Delivery{Method: MethodDownload}))
		s.Empty(mailer.sent)
	})

	s.Run("email carries the attachment", func() {
		mailer := &captureMailer{}
		err := NewRouter(mailer, WithSender("carteira@example.org")).Deliver(s.ctx, Delivery{
			Method:      MethodEmail,
			Recipient:   "maria@example.org",
			StudentName: "Maria Silva",
			Document:    []byte("%PDF-1.3"),
		})
		s.Require().NoError(err)
		s.Require().Len(mailer.sent, 1)
		msg := mailer.sent[0]
		s.Equal("carteira@example.org", msg.From)
		s.Equal("maria@example.org", msg.To)
		s.Equal("maria-silva.pdf", msg.AttachmentName)
		s.Contains(msg.Body, "Olá Maria Silva")
		s.Equal([]byte("%PDF-1.3"), msg.Attachment)
	})

	s.Run("email without recipient", func() {
		err := NewRouter(&captureMailer{}).Deliver(s.ctx, Delivery{Method: MethodEmail})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("mailer failure is unavailable", func() {
		mailer := &captureMailer{err: errors.New("smtp down")}
		err := NewRouter(mailer).Deliver(s.ctx, Delivery{Method: MethodEmail, Recipient: "a@b.co"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Equal(MsgEmailFailed, err.Error())
	})

	s.Run("unknown method", func() {
		err := NewRouter(nil).Deliver(s.ctx, Delivery{Method: "fax"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *DeliverySuite) TestLogMailer() {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewTextHandler(&buf, nil)))
	s.Require().NoError(m.Send(s.ctx, Message{To: "a@b.co", Attachment: make([]byte, 42)}))
	s.Contains(buf.String(), "to=a@b.co")
	s.Contains(buf.String(), "bytes=42")
}
