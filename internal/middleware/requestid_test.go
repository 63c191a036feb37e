package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonn455/wallet-service/internal/logging"
)

// captureHandler collects log records as flat field maps so tests can
// assert on attrs added via With.
type captureHandler struct {
	sink  *[]map[string]any
	attrs []slog.Attr
}

func (h captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h captureHandler) Handle(_ context.Context, r slog.Record) error {
	fields := map[string]any{"msg": r.Message}
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})
	*h.sink = append(*h.sink, fields)
	return nil
}

func (h captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return captureHandler{sink: h.sink, attrs: merged}
}

func (h captureHandler) WithGroup(string) slog.Handler { return h }

func TestRequestID_EchoesProvidedID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", RequestIDFromContext(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()

	RequestID(inner).ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	rec := httptest.NewRecorder()

	RequestID(inner).ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_SeedsContextLogger(t *testing.T) {
	var entries []map[string]any
	base := slog.New(captureHandler{sink: &entries})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("handling")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req = req.WithContext(logging.WithLogger(req.Context(), base))
	rec := httptest.NewRecorder()

	RequestID(inner).ServeHTTP(rec, req)

	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0]["request_id"])
}
