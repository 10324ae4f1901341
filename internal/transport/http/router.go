// Package httptransport assembles the public HTTP surface: middleware
// stack, credential routes, health checks and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"carteira/internal/credential/handler"
	"carteira/internal/platform/health"
	"carteira/internal/platform/metrics"
	"carteira/pkg/platform/middleware/metadata"
	"carteira/pkg/platform/middleware/request"
	"carteira/pkg/platform/middleware/requesttime"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 8 << 20
)

// Deps carries everything the router mounts. Nil optional fields are skipped.
type Deps struct {
	Logger      *slog.Logger
	Credentials *handler.Handler
	Health      *health.Handler
	Registry    *metrics.Registry
	Metadata    *metadata.Middleware
	Latency     *request.Metrics

	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultTimeout
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = defaultMaxBytes
	}
	if d.Metadata == nil {
		d.Metadata = metadata.New(nil)
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(d.Metadata.Handler)
	r.Use(request.Logger(d.Logger))
	r.Use(request.LatencyMiddleware(d.Latency, routePattern))

	if d.Health != nil {
		d.Health.Register(r)
	}
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", d.Registry.Handler())
	}
	if d.Credentials != nil {
		r.Group(func(api chi.Router) {
			api.Use(request.BodyLimit(d.MaxBodyBytes))
			api.Use(request.Timeout(d.RequestTimeout))
			d.Credentials.Register(api)
		})
	}
	return r
}

// routePattern labels latency by route template, never by raw path.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return r.Method + " " + p
		}
	}
	return "unmatched"
}
