package container

import (
	"log/slog"

	"github.com/km-arc/go-beans/framework/observability"
)

// options holds the collaborators a Container reports to.
type options struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultOptions() options {
	return options{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Container.
type Option func(*options)

// WithLogger sets the logger registrations and resolutions are reported
// to. Default: nil (no logging).
//
//	c := container.New(container.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
//
//	c := container.New(container.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSpanManager sets the span manager. Default: observability.NoopSpanManager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(o *options) {
		if s != nil {
			o.spans = s
		}
	}
}
