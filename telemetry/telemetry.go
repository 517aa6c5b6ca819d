// Package telemetry bootstraps the OpenTelemetry tracer provider used by the
// sweep runner and the art2a command.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// EndpointEnv is consulted when no endpoint is passed to Init.
const EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Config selects the exporter of Init.
//
//   - Endpoint: OTLP/HTTP endpoint URL. Empty falls back to $OTEL_EXPORTER_OTLP_ENDPOINT.
//   - Stdout: when no endpoint is configured, spans are pretty-printed to this
//     writer; nil discards them.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Stdout         io.Writer
}

// Init configures OpenTelemetry tracing and registers the provider globally.
// The returned function must be called before the process exits.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	res, err := resource.Merge(
		resource.Default(),
		// schemaless, so it merges with the default resource of any SDK version
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EndpointEnv)
	}

	if endpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
		}
		return exp, nil
	}

	w := cfg.Stdout
	opts := []stdouttrace.Option{stdouttrace.WithWriter(io.Discard)}
	if w != nil {
		opts = []stdouttrace.Option{stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint()}
	}
	exp, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create stdout exporter: %w", err)
	}

	return exp, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
