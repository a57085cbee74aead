package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newTestConfig returns a Config backed by an in-memory span recorder.
func newTestConfig(t *testing.T) (*Config, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return &Config{TracerProvider: tp}, rec
}

func assertAttr(t *testing.T, attrs []attribute.KeyValue, key, want string) {
	t.Helper()
	for _, a := range attrs {
		if string(a.Key) == key {
			if got := a.Value.AsString(); got != want {
				t.Fatalf("attribute %s = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Fatalf("attribute %s not found", key)
}

func TestWrapLoader_CreatesSpan(t *testing.T) {
	cfg, rec := newTestConfig(t)

	fn := WrapLoader(cfg, "fetch-user", func(_ context.Context) (string, error) {
		return "ok", nil
	})

	v, err := fn(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "ok" {
		t.Fatalf("expected %q, got %q", "ok", v)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "nutcache.compute fetch-user" {
		t.Fatalf("unexpected span name %q", span.Name())
	}
	if span.SpanKind() != trace.SpanKindInternal {
		t.Fatalf("expected SpanKindInternal, got %v", span.SpanKind())
	}
	if span.Status().Code != codes.Ok {
		t.Fatalf("expected Ok status, got %v", span.Status().Code)
	}
	assertAttr(t, span.Attributes(), "cache.computation", "fetch-user")
}

func TestWrapLoader_RecordsError(t *testing.T) {
	cfg, rec := newTestConfig(t)

	errBoom := errors.New("boom")
	fn := WrapLoader(cfg, "fetch-user", func(_ context.Context) (int, error) {
		return 0, errBoom
	})

	if _, err := fn(t.Context()); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom error, got %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Status().Code != codes.Error {
		t.Fatalf("expected Error status, got %v", span.Status().Code)
	}
	if len(span.Events()) == 0 {
		t.Fatal("expected a recorded error event")
	}
}

func TestWrapLoader_PropagatesSpanContext(t *testing.T) {
	cfg, _ := newTestConfig(t)

	var inner trace.SpanContext
	fn := WrapLoader(cfg, "ctx-check", func(ctx context.Context) (struct{}, error) {
		inner = trace.SpanContextFromContext(ctx)
		return struct{}{}, nil
	})

	if _, err := fn(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inner.IsValid() {
		t.Fatal("loader did not receive a valid span context")
	}
}
