package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── Routes ────────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New(nil)
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodGet, "/hello")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPost, "/hello").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/missing").Code)
}

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	var got string
	r.Get("/beans/{name}", func(w http.ResponseWriter, req *http.Request) {
		got = routing.Param(req, "name")
		w.WriteHeader(http.StatusOK)
	})

	do(t, r, http.MethodGet, "/beans/db")
	assert.Equal(t, "db", got)
}

// ── Groups ───────────────────────────────────────────────────────────────────

func TestRouter_GroupMiddlewareIsScoped(t *testing.T) {
	r := routing.New(nil)
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Group", "yes")
			next.ServeHTTP(w, req)
		})
	}

	r.Group(func(r *routing.Router) {
		r.Middleware(tag)
		r.Get("/inside", okHandler)
	})
	r.Get("/outside", okHandler)

	assert.Equal(t, "yes", do(t, r, http.MethodGet, "/inside").Header().Get("X-Group"))
	assert.Empty(t, do(t, r, http.MethodGet, "/outside").Header().Get("X-Group"))
}

// ── Middleware ───────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/boom").Code)
}

func TestRouter_AccessLog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := routing.New(logger)
	r.Get("/beans", okHandler)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/beans").Code)

	out := buf.String()
	assert.Contains(t, out, `msg="http request"`)
	assert.Contains(t, out, "path=/beans")
	assert.Contains(t, out, "status=200")
}
