package request

import (
	"fmt"
	"net/http"

	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/httputil"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused with 413 before the handler runs; undeclared bodies are
// wrapped in http.MaxBytesReader so the handler sees the overflow on read.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				httputil.WriteError(w, dErrors.New(dErrors.CodePayloadTooBig,
					fmt.Sprintf("requisição excede o limite de %d bytes", maxBytes)))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
