package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTracingTest creates a span manager backed by an in-memory exporter.
func setupTracingTest(t *testing.T) (SpanManager, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})
	return NewSpanManagerWithProvider(tp), exporter
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartResolveSpan(t *testing.T) {
	sm, exporter := setupTracingTest(t)

	ctx, span := sm.StartResolveSpan(context.Background(), "res-1", "Bean(db)", 2)
	require.NotNil(t, span)
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "beans.resolve", s.Name)
	assert.Equal(t, trace.SpanKindInternal, s.SpanKind)
	assert.Equal(t, codes.Ok, s.Status.Code)

	v, ok := attrValue(s.Attributes, "resolution.id")
	require.True(t, ok)
	assert.Equal(t, "res-1", v.AsString())
	v, ok = attrValue(s.Attributes, "bean")
	require.True(t, ok)
	assert.Equal(t, "Bean(db)", v.AsString())
	v, ok = attrValue(s.Attributes, "depth")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.AsInt64())
}

func TestStartResolveSpan_NestedFramesAreChildren(t *testing.T) {
	sm, exporter := setupTracingTest(t)

	ctx, parent := sm.StartResolveSpan(context.Background(), "res-1", "Bean(users)", 1)
	_, child := sm.StartResolveSpan(ctx, "res-1", "Bean(db)", 2)
	sm.EndSpanWithError(child, nil)
	sm.EndSpanWithError(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestEndSpanWithError(t *testing.T) {
	sm, exporter := setupTracingTest(t)

	_, span := sm.StartResolveSpan(context.Background(), "res-1", "Bean(db)", 1)
	sm.EndSpanWithError(span, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)

	assert.NotPanics(t, func() { sm.EndSpanWithError(nil, nil) })
}

func TestAddSpanEvent(t *testing.T) {
	sm, exporter := setupTracingTest(t)

	ctx, span := sm.StartResolveSpan(context.Background(), "res-1", "Bean(db)", 1)
	sm.AddSpanEvent(ctx, "cache_hit", attribute.String("bean", "Bean(db)"))
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "cache_hit", spans[0].Events[0].Name)

	// No recording span in context: nothing happens.
	assert.NotPanics(t, func() {
		sm.AddSpanEvent(context.Background(), "ignored")
	})
}

func TestNewSpanManager_UsesGlobalProvider(t *testing.T) {
	sm := NewSpanManager()
	require.NotNil(t, sm)

	ctx, span := sm.StartResolveSpan(context.Background(), "res-1", "Bean(db)", 1)
	assert.NotNil(t, ctx)
	sm.EndSpanWithError(span, nil)
}
