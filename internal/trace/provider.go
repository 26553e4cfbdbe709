// Package trace installs the process-wide OpenTelemetry tracer provider.
// Tracing is off unless OTEL_EXPORTER_OTLP_ENDPOINT is set.
package trace

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "panedeck"

// Provider owns the installed tracer provider, if any.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// Setup installs an OTLP/HTTP exporting provider as the global one. When no
// endpoint is configured it installs nothing and returns a disabled Provider.
func Setup(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{}, nil
	}

	var opts []otlptracehttp.Option
	if !strings.Contains(endpoint, "://") {
		// Bare host:port, as used for a local collector.
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return Install(sdktrace.WithBatcher(exporter)), nil
}

// Install builds a provider from opts, tags it with the service name and
// makes it global.
func Install(opts ...sdktrace.TracerProviderOption) *Provider {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	tp := sdktrace.NewTracerProvider(append(opts, sdktrace.WithResource(res))...)
	otel.SetTracerProvider(tp)
	return &Provider{sdk: tp}
}

// Enabled reports whether spans are being exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
