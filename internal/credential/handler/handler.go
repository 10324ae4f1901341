package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"carteira/internal/credential"
	"carteira/internal/credential/delivery"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/httputil"
	"carteira/pkg/platform/middleware/request"
	"carteira/pkg/validation"
)

const defaultMaxMemory = 8 << 20

// Service is the issuance pipeline as seen by the transport.
type Service interface {
	Lookup(ctx context.Context, raw string) (*credential.LookupResult, error)
	Issue(ctx context.Context, req credential.IssueRequest) (*credential.IssueResult, error)
}

type Option func(*Handler)

// WithMaxPhotoBytes bounds the uploaded photo size.
func WithMaxPhotoBytes(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxPhoto = n
		}
	}
}

type Handler struct {
	service  Service
	logger   *slog.Logger
	maxPhoto int
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:  service,
		logger:   logger,
		maxPhoto: validation.MaxPhotoBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the credential routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registrations/{number}", h.HandleLookup)
	r.Post("/credentials", h.HandleIssue)
}

func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	result, err := h.service.Lookup(ctx, chi.URLParam(r, "number"))
	if err != nil {
		h.logger.WarnContext(ctx, "registration lookup failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLookupResponse(result))
}

func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	form, ok := httputil.ParseMultipart(w, r, defaultMaxMemory, h.logger, requestID)
	if !ok {
		return
	}
	req, err := h.issueRequest(form)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid issuance form",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Issue(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "credential issuance refused",
			"request_id", requestID,
			"code", string(dErrors.CodeOf(err)),
		)
		httputil.WriteError(w, err)
		return
	}

	if result.Delivery == delivery.MethodEmail {
		httputil.WriteJSON(w, http.StatusOK, EmailResponse{Success: true, Message: delivery.MsgEmailSent})
		return
	}
	if len(result.Warnings) > 0 {
		kinds := make([]string, 0, len(result.Warnings))
		for _, warn := range result.Warnings {
			kinds = append(kinds, string(warn.Asset))
		}
		w.Header().Set("X-Card-Degraded", strings.Join(kinds, ","))
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Document)
}

func (h *Handler) issueRequest(form *multipart.Form) (credential.IssueRequest, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	photo, err := h.readPhoto(form)
	if err != nil {
		return credential.IssueRequest{}, err
	}

	return credential.IssueRequest{
		Submission: credential.Submission{
			FullName:                value("fullName"),
			BirthDate:               value("birthDate"),
			Institution:             value("schoolName"),
			GradeLevel:              value("gradeLevel"),
			Course:                  value("course"),
			RegistrationNumber:      value("studentIdNumber"),
			ContactInfo:             value("contactInfo"),
			City:                    value("city"),
			TransportType:           value("transportType"),
			Photo:                   photo,
			SchoolAddress:           value("schoolAddress"),
			RegistrationNumberExtra: value("registrationNumber"),
			DeliveryMethod:          delivery.ParseMethod(value("sendByEmail")),
			Email:                   value("emailAddress"),
		},
		OverrideSecret: value("overrideSecret"),
	}, nil
}

func (h *Handler) readPhoto(form *multipart.Form) ([]byte, error) {
	files := form.File["photo"]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]
	if err := validation.CheckByteSize("Foto", int(header.Size), h.maxPhoto); err != nil {
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "não foi possível ler a foto")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(h.maxPhoto)+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "não foi possível ler a foto")
	}
	if err := validation.CheckByteSize("Foto", len(data), h.maxPhoto); err != nil {
		return nil, err
	}
	return data, nil
}
