// Package tracing provides OpenTelemetry instrumentation for cache
// computations. It is entirely optional — spans are only created for
// loaders wrapped with [WrapLoader].
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	gonutcache "github.com/Keksclan/goNutCache"
)

// Config holds the OpenTelemetry configuration used by the loader
// wrappers.
type Config struct {
	// TracerProvider supplies the Tracer used to create spans. When nil
	// the global otel.GetTracerProvider() is used.
	TracerProvider trace.TracerProvider
}

// tracer returns a configured [trace.Tracer].
func (c *Config) tracer() trace.Tracer {
	tp := c.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer("github.com/Keksclan/goNutCache/tracing")
}

// WrapLoader wraps a loader so that every execution runs inside a span
// named "nutcache.compute <name>". The span only covers actual
// computations: cache hits and deduplicated waiters never reach the
// loader and therefore produce no span. If cfg is nil a passthrough
// using the global tracer provider is returned.
func WrapLoader[V any](cfg *Config, name string, fn gonutcache.Loader[V]) gonutcache.Loader[V] {
	if cfg == nil {
		cfg = &Config{}
	}
	return func(ctx context.Context) (V, error) {
		ctx, span := cfg.tracer().Start(ctx, "nutcache.compute "+name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("cache.computation", name)),
		)
		defer span.End()

		val, err := fn(ctx)
		recordStatus(span, err)
		return val, err
	}
}

// Middleware returns a [gonutcache.Middleware] applying [WrapLoader],
// for use with gonutcache.Wrap and gonutcache.Chain.
func Middleware[V any](cfg *Config, name string) gonutcache.Middleware[V] {
	return func(next gonutcache.Loader[V]) gonutcache.Loader[V] {
		return WrapLoader(cfg, name, next)
	}
}

// recordStatus sets the span status from the computation outcome.
func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
