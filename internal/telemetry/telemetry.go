// Package telemetry initializes OpenTelemetry tracing and metrics.
//
// Traces and metrics are exported to size-rotated files under the
// configured directory so they can be inspected locally or shipped by a
// collector sidecar. When telemetry is disabled the default no-op
// providers stay in place and the pipeline's instrumentation costs
// nothing.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/eldercare-labs/carebridge/internal/config"
)

// Init sets up the global tracer and meter providers per config and
// returns a shutdown function that flushes both.
func Init(ctx context.Context, cfg config.TelemetryConfig, version string) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("carebridge"),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry resource: %w", err)
	}

	rotated := func(name string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, name),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
	}

	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(rotated("carebridge_traces.log")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricExporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(rotated("carebridge_metrics.log")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	slog.Info("telemetry enabled", "dir", cfg.Dir)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("trace provider shutdown", "error", err)
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.Error("meter provider shutdown", "error", err)
		}
	}, nil
}
