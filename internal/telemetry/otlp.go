// Package telemetry records card interactions as OpenTelemetry spans and
// Prometheus counters. Both are optional: spans are exported only when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, counters only when a metrics file is
// requested.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "heartgate/card"

// Tracer hands out an OpenTelemetry tracer backed by an OTLP exporter, or a
// no-op tracer when no endpoint is configured.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewTracer creates an OTLP-backed tracer if OTEL_EXPORTER_OTLP_ENDPOINT is
// set, otherwise a no-op tracer.
func NewTracer(ctx context.Context) (*Tracer, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return NopTracer(), nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "heartgate"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
	}, nil
}

// NopTracer returns a tracer that records nothing.
func NopTracer() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(tracerName)}
}

// NewTracerWithProvider wraps an existing SDK provider (used by tests with
// an in-memory exporter).
func NewTracerWithProvider(p *sdktrace.TracerProvider) *Tracer {
	return &Tracer{provider: p, tracer: p.Tracer(tracerName)}
}

// Enabled reports whether spans leave the process.
func (t *Tracer) Enabled() bool {
	return t != nil && t.provider != nil
}

// Shutdown flushes and closes the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
