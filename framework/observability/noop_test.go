package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordResolution(ctx, "Bean(db)", time.Second, errors.New("boom"))
		m.RecordFactoryCall(ctx, "Bean(db)")
		m.RecordCacheHit(ctx, "Bean(db)")
		m.RecordDiscarded(ctx, "Bean(db)")
	})
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := sm.StartResolveSpan(ctx, "res-1", "Bean(db)", 1)
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		sm.EndSpanWithError(span, errors.New("boom"))
		sm.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
	})
}
