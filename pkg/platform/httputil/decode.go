package httputil

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	dErrors "carteira/pkg/domain-errors"
)

// ParseMultipart parses a multipart/form-data body, keeping up to maxMemory
// bytes in memory. On failure it writes the error response and returns nil, false.
//
// Usage:
//
//	form, ok := httputil.ParseMultipart(w, r, h.maxUpload, h.logger, requestID)
//	if !ok {
//	    return
//	}
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxMemory int64, logger *slog.Logger, requestID string) (*multipart.Form, bool) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		logger.WarnContext(ctx, "failed to parse multipart body",
			"error", err,
			"request_id", requestID,
		)
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			WriteError(w, dErrors.New(dErrors.CodePayloadTooBig, "arquivo muito grande"))
			return nil, false
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "corpo da requisição inválido"))
		return nil, false
	}
	return r.MultipartForm, true
}
