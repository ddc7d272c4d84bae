// Package observability provides logging, metrics and tracing hooks for
// bean resolution.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds resolution context to a logger.
//
//	enriched := EnrichLogger(logger, "4f1c...", "Bean(db)")
//	enriched.Debug("building") // includes resolution_id and bean
func EnrichLogger(logger *slog.Logger, resolutionID, bean string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("resolution_id", resolutionID),
		slog.String("bean", bean),
	)
}

// LogRegister logs a new definition.
func LogRegister(logger *slog.Logger, bean, scope string) {
	if logger == nil {
		return
	}
	logger.Debug("bean registered",
		slog.String("bean", bean),
		slog.String("scope", scope),
	)
}

// LogFallbackSuperseded logs the removal of an unnamed fallback by an
// explicit type registration.
func LogFallbackSuperseded(logger *slog.Logger, bean string) {
	if logger == nil {
		return
	}
	logger.Debug("unnamed fallback superseded",
		slog.String("bean", bean),
	)
}

// The Log* helpers below expect a logger from EnrichLogger, which
// already carries resolution_id and bean.

// LogResolveStart logs the start of a resolution frame.
func LogResolveStart(logger *slog.Logger, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("resolving bean", slog.Int("depth", depth))
}

// LogResolveComplete logs a finished resolution frame.
func LogResolveComplete(logger *slog.Logger, durationMs float64, cached bool) {
	if logger == nil {
		return
	}
	logger.Debug("bean resolved",
		slog.Float64("duration_ms", durationMs),
		slog.Bool("cached", cached),
	)
}

// LogResolveError logs a failed resolution frame.
func LogResolveError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("bean resolution failed", slog.String("error", err.Error()))
}

// LogInstanceDiscarded logs a singleton built by a goroutine that lost
// the publish race.
func LogInstanceDiscarded(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Warn("singleton built concurrently, discarding duplicate")
}
