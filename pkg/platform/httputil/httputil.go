package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "carteira/pkg/domain-errors"
)

// InternalErrorMessage is the only description clients see for internal failures.
const InternalErrorMessage = "Erro interno do servidor. Tente novamente em alguns instantes."

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description,omitempty"`
	Fields      []string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
// Internal failures never expose their cause. Render failures are a 500
// that carries the fixed message set by the pipeline.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) || domainErr.Code == dErrors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:       string(dErrors.CodeInternal),
			Description: InternalErrorMessage,
		})
		return
	}

	WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), ErrorResponse{
		Error:       DomainCodeToHTTPCode(domainErr.Code),
		Description: domainErr.Message,
		Fields:      domainErr.Fields,
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidFormat, dErrors.CodeMissingFields, dErrors.CodeValidation,
		dErrors.CodeBadRequest, dErrors.CodeInvariantBreak:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeAlreadyIssued:
		return http.StatusConflict
	case dErrors.CodeWrongSecret:
		return http.StatusForbidden
	case dErrors.CodePayloadTooBig:
		return http.StatusRequestEntityTooLarge
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeRenderFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the "error" field of the envelope.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeInvalidFormat, dErrors.CodeNotFound, dErrors.CodeMissingFields,
		dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeAlreadyIssued,
		dErrors.CodeWrongSecret, dErrors.CodePayloadTooBig, dErrors.CodeTimeout,
		dErrors.CodeUnavailable, dErrors.CodeRenderFailed:
		return string(code)
	case dErrors.CodeInvariantBreak:
		return string(dErrors.CodeValidation)
	default:
		return string(dErrors.CodeInternal)
	}
}
