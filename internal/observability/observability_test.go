package observability

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestWrapSlogHandlerAddsRequestMetadata(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(WrapSlogHandler(slog.NewTextHandler(&buf, nil)))
	ctx := WithRequestMetadata(context.Background(), " req-1 ", "/api/games/:id")

	log.InfoContext(ctx, "hello", "game_id", 3)

	line := buf.String()
	assert.Contains(t, line, "request_id=req-1")
	assert.Contains(t, line, "route=/api/games/:id")
	assert.Contains(t, line, "game_id=3")
	assert.NotContains(t, line, "trace_id")
}

func TestWrapSlogHandlerAddsTraceIDs(t *testing.T) {
	t.Parallel()

	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	ctx, span := provider.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	log := slog.New(WrapSlogHandler(slog.NewTextHandler(&buf, nil))).With("component", "feeds")
	log.InfoContext(ctx, "fetched")

	line := buf.String()
	assert.Contains(t, line, "trace_id="+span.SpanContext().TraceID().String())
	assert.Contains(t, line, "span_id="+span.SpanContext().SpanID().String())
	assert.Contains(t, line, "component=feeds")
}

func TestRequestMetadataIgnoresBlankValues(t *testing.T) {
	t.Parallel()

	ctx := WithRequestMetadata(context.Background(), "  ", "")
	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = RouteFromContext(ctx)
	assert.False(t, ok)
}

func TestSetupOpenTelemetryDisabledIsNoop(t *testing.T) {
	t.Parallel()

	shutdown, err := SetupOpenTelemetry(context.Background(), slog.Default(), OpenTelemetryConfig{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestConfiguredSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "root:AlwaysOnSampler"},
		{ratio: 5, want: "root:AlwaysOnSampler"},
		{ratio: 0, want: "root:AlwaysOffSampler"},
		{ratio: 0.25, want: "root:TraceIDRatioBased{0.25}"},
	}
	for _, tc := range tests {
		desc := configuredSampler(tc.ratio).Description()
		if !strings.Contains(desc, tc.want) {
			t.Fatalf("sampler for %v = %q, want it to contain %q", tc.ratio, desc, tc.want)
		}
	}
}

func TestTraceSkipper(t *testing.T) {
	t.Parallel()

	e := echo.New()
	tests := map[string]bool{
		"/":                   true,
		"/health":             true,
		"/ready":              true,
		"/index.html":         true,
		"/assets/app.js":      true,
		"/api/games":          false,
		"/api/games/populate": false,
	}
	for path, want := range tests {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		c := e.NewContext(req, nil)
		if got := traceSkipper(c); got != want {
			t.Fatalf("traceSkipper(%q) = %v, want %v", path, got, want)
		}
	}
}
