package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{
		Level:     level,
		Component: ComponentApp,
		Handler:   slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}),
	})
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, slog.LevelInfo).WithComponent(ComponentExport)

	logger.Info("workbook written", FieldRows, 3)

	rec := lastRecord(t, &buf)
	assert.Equal(t, ComponentExport, rec[FieldComponent])
	assert.Equal(t, float64(3), rec[FieldRows])
	assert.Equal(t, ComponentExport, logger.Component())
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Equal(t, "shown", lastRecord(t, &buf)["msg"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, "unknown", logger.Component())
}

func TestMiddlewareChain(t *testing.T) {
	var buf bytes.Buffer
	base := jsonLogger(&buf, slog.LevelInfo)

	handler := Middleware(base)(
		RequestIDMiddleware(func(*http.Request) string { return "req-42" })(
			ComponentMiddleware(ComponentExport)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					FromContext(r.Context()).InfoContext(r.Context(), "handled")
				}))))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/export/transactions.xlsx", nil))

	rec := lastRecord(t, &buf)
	assert.Equal(t, "req-42", rec[FieldRequestID])
	assert.Equal(t, ComponentExport, rec[FieldComponent])
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(jsonLogger(&buf, slog.LevelDebug))
	ctx := context.Background()

	sl.LogCorrection(ctx, "sort", "bogus", "date")
	rec := lastRecord(t, &buf)
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, ComponentLedger, rec[FieldComponent])
	assert.Equal(t, "sort", rec[FieldParam])
	assert.Equal(t, "bogus", rec[FieldGot])
	assert.Equal(t, "date", rec[FieldUsed])

	sl.LogViewComputed(ctx, "coffee", "Food", "amount", "asc", 2, true)
	rec = lastRecord(t, &buf)
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "coffee", rec[FieldSearch])
	assert.Equal(t, float64(2), rec[FieldRows])
	assert.Equal(t, true, rec[FieldCacheHit])

	sl.LogError(ctx, "export failed", errors.New("disk full"), ComponentExport, OpExport,
		NewFields().WithComponent("ignored"))
	rec = lastRecord(t, &buf)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, ComponentExport, rec[FieldComponent])
	assert.Equal(t, "disk full", rec[FieldError])
	assert.Equal(t, OpExport, rec[FieldOperation])
}

func TestStructuredLoggerPrefersContextLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	sl := NewStructuredLogger(jsonLogger(&base, slog.LevelDebug))
	ctx := context.WithValue(context.Background(), LoggerContextKey,
		jsonLogger(&scoped, slog.LevelDebug).With(FieldRequestID, "req-7"))

	sl.LogCorrection(ctx, "dir", "up", "desc")

	assert.Zero(t, base.Len())
	rec := lastRecord(t, &scoped)
	assert.Equal(t, "req-7", rec[FieldRequestID])
	assert.Equal(t, ComponentLedger, rec[FieldComponent])
}
