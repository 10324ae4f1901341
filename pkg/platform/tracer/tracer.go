// Package tracer is a small tracing abstraction used across the issuance
// pipeline. Services depend on this interface, not on OpenTelemetry, so tests
// can run with NoopTracer and production wires OTelTracer.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child operations.
	//
	// Example:
	//   ctx, span := t.Start(ctx, tracer.SpanResolve,
	//       tracer.String(tracer.AttrRegistration, tracer.HashRegistration(raw)),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashRegistration returns a short SHA-256 prefix of a registration number so
// traces can be correlated without carrying the number itself.
func HashRegistration(number string) string {
	if number == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(number))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanLookup    = "directory.lookup"
	SpanResolve   = "registration.resolve"
	SpanGuard     = "issuance.guard"
	SpanCompose   = "card.compose"
	SpanAssets    = "card.assets"
	SpanEmit      = "card.emit"
	SpanIssue     = "credential.issue"
	SpanDeliver   = "credential.deliver"
	SpanCacheRead = "directory.cache.read"
)

// Attribute keys.
const (
	AttrRegistration = "registration_hash"
	AttrCity         = "city"
	AttrCacheHit     = "cache.hit"
	AttrOverride     = "override"
	AttrDegraded     = "assets.degraded"
	AttrBytes        = "document.bytes"
	AttrTransport    = "transport.locked"
)
