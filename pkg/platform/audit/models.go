package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is emitted from the issuance pipeline to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. Registration holds the
// masked registration number; raw student data never enters an event.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Action       string    `json:"action"`
	Registration string    `json:"registration"`
	City         string    `json:"city,omitempty"`
	Decision     string    `json:"decision,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	ClientDevice string    `json:"client_device,omitempty"`
	ClientIP     string    `json:"client_ip,omitempty"`
}

type AuditEvent string

const (
	EventCredentialIssued    AuditEvent = "credential_issued"
	EventCredentialRejected  AuditEvent = "credential_rejected"
	EventOverrideGranted     AuditEvent = "override_granted"
	EventOverrideDenied      AuditEvent = "override_denied"
	EventCredentialDelivered AuditEvent = "credential_delivered"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
