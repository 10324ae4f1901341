// Package delivery hands a finished credential to the student: either back
// to the caller as a download or by e-mail.
package delivery

import (
	"context"
	"fmt"
	"log/slog"

	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/text"
)

const (
	DefaultFilename = "carteira-estudante.pdf"
	ContentTypePDF  = "application/pdf"

	MsgEmailFailed = "Erro ao enviar e-mail. Tente novamente ou baixe diretamente."
	MsgEmailSent   = "Carteira enviada por e-mail com sucesso"

	defaultSender  = "noreply@novaponte.mg.gov.br"
	defaultSubject = "Carteira de Estudante Digital - Nova Ponte/MG"
)

type Method string

const (
	MethodDownload Method = "download"
	MethodEmail    Method = "email"
)

// ParseMethod maps the form's sendByEmail flag to a Method.
func ParseMethod(sendByEmail string) Method {
	if sendByEmail == "true" || sendByEmail == "on" || sendByEmail == "1" {
		return MethodEmail
	}
	return MethodDownload
}

// Filename derives the attachment name from the student's name.
// "João da Silva" becomes "joao-da-silva.pdf".
func Filename(fullName string) string {
	stem := text.Slug(fullName)
	if stem == "" || stem == "-" {
		return DefaultFilename
	}
	return stem + ".pdf"
}

type Delivery struct {
	Method      Method
	Recipient   string
	StudentName string
	Filename    string
	Document    []byte
}

type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

// Message is an outgoing e-mail with one PDF attachment.
type Message struct {
	From           string
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer records the message in the log and sends nothing.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "credential e-mail sent",
		"to", msg.To,
		"subject", msg.Subject,
		"attachment", msg.AttachmentName,
		"bytes", len(msg.Attachment),
	)
	return nil
}

type Option func(*Router)

func WithSender(from string) Option {
	return func(r *Router) {
		if from != "" {
			r.from = from
		}
	}
}

// Router dispatches on the delivery method. Downloads are written by the
// transport layer, so routing one is a no-op.
type Router struct {
	mailer Mailer
	from   string
}

func NewRouter(mailer Mailer, opts ...Option) *Router {
	r := &Router{mailer: mailer, from: defaultSender}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Deliver(ctx context.Context, d Delivery) error {
	switch d.Method {
	case MethodDownload, "":
		return nil
	case MethodEmail:
		if d.Recipient == "" {
			return dErrors.New(dErrors.CodeValidation, "E-mail é obrigatório para envio por e-mail")
		}
		if r.mailer == nil {
			return dErrors.New(dErrors.CodeUnavailable, MsgEmailFailed)
		}
		if err := r.mailer.Send(ctx, r.message(d)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, MsgEmailFailed)
		}
		return nil
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("forma de entrega desconhecida: %s", d.Method))
	}
}

func (r *Router) message(d Delivery) Message {
	body := fmt.Sprintf("Olá %s,\n\n"+
		"Sua carteira de estudante digital foi gerada com sucesso e está anexada a este e-mail em formato PDF.\n\n"+
		"Importante: esta carteira é válida até 31 de março do próximo ano, conforme Lei Federal nº 12.933/2013.\n\n"+
		"Atenciosamente,\nPrefeitura Municipal de Nova Ponte - MG\n", d.StudentName)
	name := d.Filename
	if name == "" {
		name = Filename(d.StudentName)
	}
	return Message{
		From:           r.from,
		To:             d.Recipient,
		Subject:        defaultSubject,
		Body:           body,
		AttachmentName: name,
		Attachment:     d.Document,
	}
}
