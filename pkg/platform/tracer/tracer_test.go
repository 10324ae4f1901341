package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"carteira/pkg/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanResolve,
		tracer.String(tracer.AttrCity, "uberaba"),
		tracer.Bool(tracer.AttrCacheHit, true),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int64(tracer.AttrBytes, 42))
	span.AddEvent("guard.reserved")
	span.End(errors.New("boom"))
}

func TestOTelTracer_StartWithInjectedTracer(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), tracer.SpanEmit,
		tracer.String("s", "v"),
		tracer.Bool("b", true),
		tracer.Int64("i", 1),
		tracer.Float64("f", 1.5),
		tracer.Duration("d", 1500*time.Millisecond),
		tracer.Attribute{Key: "ignored", Value: struct{}{}},
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		span.SetAttributes(tracer.String("k", "v"))
		span.AddEvent("e", tracer.Int64("n", 2))
		span.End(errors.New("failed"))
	})
}

func TestOTelTracer_DefaultsToGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()
	_, span := tr.Start(context.Background(), tracer.SpanIssue)
	assert.NotPanics(t, func() { span.End(nil) })
}

func TestDuration(t *testing.T) {
	assert.Equal(t, int64(1500), tracer.Duration("d", 1500*time.Millisecond).Value)
}

func TestHashRegistration(t *testing.T) {
	assert.Equal(t, "", tracer.HashRegistration(""))

	h := tracer.HashRegistration("101050")
	assert.Len(t, h, 16)
	assert.Equal(t, h, tracer.HashRegistration("101050"))
	assert.NotEqual(t, h, tracer.HashRegistration("101051"))
	assert.NotContains(t, h, "101050")
}
