// Package telemetry wires OpenTelemetry tracing and metrics and provides a
// trace-aware slog logger. Providers are installed globally so the rest of
// the codebase reaches them through otel.Tracer and otel.Meter.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

var ErrInvalidConfig = errors.New("invalid telemetry configuration")

// Config selects which signals to emit and where to ship them. An empty
// OTLPEndpoint with both signals disabled is a valid no-op configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	EnableTracing  bool
	EnableMetrics  bool
	SampleRate     float64
}

func (c Config) validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidConfig)
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("%w: service version is required", ErrInvalidConfig)
	}
	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("%w: sample rate must be between 0.0 and 1.0", ErrInvalidConfig)
	}
	return nil
}

// Telemetry owns the installed providers and knows how to flush them on the
// way down. Shutdown order is the reverse of initialization.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	shutdowns      []func(context.Context) error
}

type Option func(*options)

type options struct {
	traceExporter  sdktrace.SpanExporter
	metricExporter sdkmetric.Exporter
}

// WithTraceExporter overrides the OTLP trace exporter. Used by tests to
// capture spans without a collector.
func WithTraceExporter(exporter sdktrace.SpanExporter) Option {
	return func(o *options) { o.traceExporter = exporter }
}

// WithMetricExporter overrides the OTLP metric exporter.
func WithMetricExporter(exporter sdkmetric.Exporter) Option {
	return func(o *options) { o.metricExporter = exporter }
}

// Initialize builds the enabled providers, installs them as the global OTel
// providers, and registers W3C trace context propagation.
func Initialize(ctx context.Context, cfg Config, opts ...Option) (*Telemetry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tel := &Telemetry{}

	if cfg.EnableTracing {
		exporter := o.traceExporter
		if exporter == nil {
			// The collector endpoint is plaintext gRPC; TLS is expected to be
			// terminated ahead of the service.
			exporter, err = otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return nil, fmt.Errorf("create trace exporter: %w", err)
			}
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
			sdktrace.WithBatcher(exporter),
		)
		otel.SetTracerProvider(tp)
		tel.tracerProvider = tp
		tel.shutdowns = append(tel.shutdowns, tp.Shutdown, exporter.Shutdown)
	}

	if cfg.EnableMetrics {
		exporter := o.metricExporter
		if exporter == nil {
			exporter, err = otlpmetricgrpc.New(ctx,
				otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				_ = tel.Shutdown(ctx)
				return nil, fmt.Errorf("create metric exporter: %w", err)
			}
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		)
		otel.SetMeterProvider(mp)
		tel.meterProvider = mp
		tel.shutdowns = append(tel.shutdowns, mp.Shutdown, exporter.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tel, nil
}

// Shutdown flushes and stops every provider and exporter that Initialize
// created, collecting all failures.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Telemetry) TracerProvider() *sdktrace.TracerProvider { return t.tracerProvider }

func (t *Telemetry) MeterProvider() *sdkmetric.MeterProvider { return t.meterProvider }

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
	)
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0.0:
		return sdktrace.NeverSample()
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}
