package telemetry

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func validConfig() Config {
	return Config{
		ServiceName:    "test-service",
		ServiceVersion: "0.1.0",
		Environment:    "test",
		EnableTracing:  true,
		EnableMetrics:  true,
		SampleRate:     1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, true},
		{"missing service version", func(c *Config) { c.ServiceVersion = "" }, true},
		{"negative sample rate", func(c *Config) { c.SampleRate = -0.1 }, true},
		{"sample rate above one", func(c *Config) { c.SampleRate = 1.1 }, true},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0.0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected valid config, got: %v", err)
			}
		})
	}
}

func TestInitializeAndShutdown(t *testing.T) {
	ctx := context.Background()

	tel, err := Initialize(ctx, validConfig(),
		WithTraceExporter(NewNoopTraceExporter()),
		WithMetricExporter(NewNoopMetricExporter()),
	)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if tel.TracerProvider() == nil {
		t.Error("expected tracer provider when tracing is enabled")
	}
	if tel.MeterProvider() == nil {
		t.Error("expected meter provider when metrics are enabled")
	}

	if err := tel.Shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestInitializeDisabledSignals(t *testing.T) {
	cfg := validConfig()
	cfg.EnableTracing = false
	cfg.EnableMetrics = false

	tel, err := Initialize(context.Background(), cfg)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if tel.TracerProvider() != nil {
		t.Error("expected no tracer provider when tracing is disabled")
	}
	if tel.MeterProvider() != nil {
		t.Error("expected no meter provider when metrics are disabled")
	}

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown of empty telemetry failed: %v", err)
	}
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceName = ""

	if _, err := Initialize(context.Background(), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want sdktrace.Sampler
	}{
		{"zero never samples", 0.0, sdktrace.NeverSample()},
		{"one always samples", 1.0, sdktrace.AlwaysSample()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samplerFor(tt.rate); got.Description() != tt.want.Description() {
				t.Errorf("expected %s, got %s", tt.want.Description(), got.Description())
			}
		})
	}

	partial := samplerFor(0.5)
	if partial.Description() == sdktrace.AlwaysSample().Description() {
		t.Error("expected ratio sampler for partial rate")
	}
}
