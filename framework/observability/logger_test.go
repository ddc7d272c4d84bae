package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a debug-level JSON logger writing into a buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), buf
}

// records decodes every JSON line written to buf.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds resolution attributes", func(t *testing.T) {
		logger, buf := captureLogger()
		EnrichLogger(logger, "res-1", "Bean(db)").Info("hello")

		recs := records(t, buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "res-1", recs[0]["resolution_id"])
		assert.Equal(t, "Bean(db)", recs[0]["bean"])
	})

	t.Run("nil logger stays nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "res-1", "Bean(db)"))
	})
}

func TestLogHelpers(t *testing.T) {
	logger, buf := captureLogger()

	LogRegister(logger, "Bean(db)", "singleton")
	LogFallbackSuperseded(logger, "Bean(*app.DB)[unnamed]")

	frame := EnrichLogger(logger, "res-1", "Bean(db)")
	LogResolveStart(frame, 1)
	LogResolveComplete(frame, 1.5, true)
	LogResolveError(frame, errors.New("boom"))
	LogInstanceDiscarded(frame)

	recs := records(t, buf)
	require.Len(t, recs, 6)

	for _, rec := range recs[2:] {
		assert.Equal(t, "res-1", rec["resolution_id"])
		assert.Equal(t, "Bean(db)", rec["bean"])
	}
	_, hasID := recs[0]["resolution_id"]
	assert.False(t, hasID)

	assert.Equal(t, "bean registered", recs[0]["msg"])
	assert.Equal(t, "singleton", recs[0]["scope"])

	assert.Equal(t, "unnamed fallback superseded", recs[1]["msg"])

	assert.Equal(t, "resolving bean", recs[2]["msg"])
	assert.EqualValues(t, 1, recs[2]["depth"])

	assert.Equal(t, "bean resolved", recs[3]["msg"])
	assert.EqualValues(t, 1.5, recs[3]["duration_ms"])
	assert.Equal(t, true, recs[3]["cached"])

	assert.Equal(t, "WARN", recs[4]["level"])
	assert.Equal(t, "boom", recs[4]["error"])

	assert.Equal(t, "WARN", recs[5]["level"])
	assert.Equal(t, "singleton built concurrently, discarding duplicate", recs[5]["msg"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRegister(nil, "Bean(db)", "singleton")
		LogFallbackSuperseded(nil, "Bean(db)")
		frame := EnrichLogger(nil, "res-1", "Bean(db)")
		LogResolveStart(frame, 1)
		LogResolveComplete(frame, 0, false)
		LogResolveError(frame, errors.New("boom"))
		LogInstanceDiscarded(frame)
	})
}
