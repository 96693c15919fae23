// Package obs wires optional OpenTelemetry tracing around evaluate_law_output.
// Grounded on otel/provider.go's InitProvider, trimmed to the one signal the
// spec's External Interfaces section calls for: a span per top-level
// evaluation, gated by REGELRECHT_OTEL_ENABLED. The full OTLP log/metric
// exporter chain (otlploggrpc/http, otlpmetricgrpc/http, runtime metrics
// gauges) is dropped — this engine has no persistent process to emit
// runtime gauges for, and structured logs already go to stdout via slog
// (see DESIGN.md).
package obs

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
)

// ShutdownFn flushes and closes the tracer provider.
type ShutdownFn func(context.Context) error

// noopShutdown satisfies ShutdownFn when tracing is disabled.
func noopShutdown(context.Context) error { return nil }

// Config controls whether and where spans are exported.
type Config struct {
	Enabled        bool
	Endpoint       string
	ServiceVersion string
}

// ConfigFromEnv reads REGELRECHT_OTEL_ENABLED/REGELRECHT_OTEL_ENDPOINT,
// the way main.go reads REGELRECHT_LOG_LEVEL/REGELRECHT_DEBUG.
func ConfigFromEnv(serviceVersion string) Config {
	return Config{
		Enabled:        os.Getenv(constants.EnvOtelEnabled) == "true",
		Endpoint:       os.Getenv(constants.EnvOtelEndpoint),
		ServiceVersion: serviceVersion,
	}
}

// InitTracerProvider sets the global tracer provider when enabled;
// otherwise it leaves otel's default no-op global provider in place and
// returns a no-op shutdown — callers never need to branch on whether
// tracing is configured.
func InitTracerProvider(ctx context.Context, cfg Config) (ShutdownFn, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(constants.AppName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

// Tracer returns the package-level tracer used to wrap evaluate_law_output.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(constants.AppName)
}

// StartEvaluation opens a span for one top-level EvaluateLawOutput call.
// A disabled/no-op tracer provider makes this a cheap no-op span, so
// service.Service never needs to check whether tracing is on.
func StartEvaluation(ctx context.Context, lawID, outputName string) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, "evaluate_law_output",
		oteltrace.WithAttributes(
			attribute.String("regelrecht.law_id", lawID),
			attribute.String("regelrecht.output_name", outputName),
		),
	)
}
