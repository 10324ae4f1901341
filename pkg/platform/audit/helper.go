package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"carteira/internal/platform/privacy"
	"carteira/pkg/platform/middleware/metadata"
	"carteira/pkg/platform/middleware/request"
	"carteira/pkg/platform/middleware/requesttime"
)

// Emitter is the interface for audit event emission.
// Satisfied by publisher.Publisher.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Logger writes every audit event to the structured log and, when an
// emitter is configured, to the audit store.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger. Both arguments are optional.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Log enriches event with an ID, timestamp, request ID, client device and
// anonymized client IP taken from ctx, then logs and emits it. Emission failures are logged and
// never returned; auditing must not fail an issuance.
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requesttime.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = request.GetRequestID(ctx)
	}
	if event.ClientDevice == "" {
		event.ClientDevice = metadata.GetDevice(ctx)
	}
	if ip := metadata.GetClientIP(ctx); event.ClientIP == "" && ip != "" {
		event.ClientIP = privacy.AnonymizeIP(ip)
	}

	if l.textLogger != nil {
		l.textLogger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"event_id", event.ID.String(),
			"registration", event.Registration,
			"city", event.City,
			"decision", event.Decision,
			"reason", event.Reason,
			"request_id", event.RequestID,
			"client_device", event.ClientDevice,
			"client_ip", event.ClientIP,
		)
	}

	if l.emitter == nil {
		return
	}
	if err := l.emitter.Emit(ctx, event); err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"event", event.Action,
		)
	}
}
