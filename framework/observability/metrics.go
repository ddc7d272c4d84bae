package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records container metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records a finished resolution frame.
	RecordResolution(ctx context.Context, bean string, duration time.Duration, err error)

	// RecordFactoryCall records one factory invocation.
	RecordFactoryCall(ctx context.Context, bean string)

	// RecordCacheHit records a singleton served from cache.
	RecordCacheHit(ctx context.Context, bean string)

	// RecordDiscarded records a singleton instance thrown away after
	// losing the publish race.
	RecordDiscarded(ctx context.Context, bean string)
}

type otelMetrics struct {
	resolutions       metric.Int64Counter
	resolutionLatency metric.Float64Histogram
	resolutionErrors  metric.Int64Counter
	factoryCalls      metric.Int64Counter
	cacheHits         metric.Int64Counter
	discarded         metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(mp metric.MeterProvider) (*otelMetrics, error) {
	meter := mp.Meter(instrumentationName)

	resolutions, err := meter.Int64Counter("beans.resolutions",
		metric.WithDescription("Number of bean resolution frames"),
	)
	if err != nil {
		return nil, err
	}

	resolutionLatency, err := meter.Float64Histogram("beans.resolution.latency_ms",
		metric.WithDescription("Bean resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	resolutionErrors, err := meter.Int64Counter("beans.resolution.errors",
		metric.WithDescription("Number of failed bean resolutions"),
	)
	if err != nil {
		return nil, err
	}

	factoryCalls, err := meter.Int64Counter("beans.factory.calls",
		metric.WithDescription("Number of bean factory invocations"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("beans.singleton.cache_hits",
		metric.WithDescription("Number of singletons served from cache"),
	)
	if err != nil {
		return nil, err
	}

	discarded, err := meter.Int64Counter("beans.singleton.discarded",
		metric.WithDescription("Number of singleton instances discarded after a concurrent build"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:       resolutions,
		resolutionLatency: resolutionLatency,
		resolutionErrors:  resolutionErrors,
		factoryCalls:      factoryCalls,
		cacheHits:         cacheHits,
		discarded:         discarded,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithProvider returns a MetricsRecorder whose
// instruments are created from mp.
func NewMetricsRecorderWithProvider(mp metric.MeterProvider) (MetricsRecorder, error) {
	m, err := newOtelMetrics(mp)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *otelMetrics) RecordResolution(ctx context.Context, bean string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("bean", bean),
		attribute.Bool("success", err == nil),
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.resolutionLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
	if err != nil {
		m.resolutionErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("bean", bean)))
	}
}

func (m *otelMetrics) RecordFactoryCall(ctx context.Context, bean string) {
	m.factoryCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("bean", bean)))
}

func (m *otelMetrics) RecordCacheHit(ctx context.Context, bean string) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("bean", bean)))
}

func (m *otelMetrics) RecordDiscarded(ctx context.Context, bean string) {
	m.discarded.Add(ctx, 1, metric.WithAttributes(attribute.String("bean", bean)))
}
