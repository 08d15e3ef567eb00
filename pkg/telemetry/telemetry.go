// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry bootstraps tracing, metrics, and logging for the
// assistant. Spans and instruments created through the global otel
// providers all carry the atelier service identity configured here.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceNamespace = "atelier"

// ShutdownFunc flushes and stops the telemetry pipelines.
type ShutdownFunc func(context.Context) error

// Option configures the telemetry bootstrap.
type Option func(*settings)

type settings struct {
	exporter     string
	otlpEndpoint string
	otlpInsecure bool
	extraAttrs   []attribute.KeyValue
}

// WithExporter selects the exporter backend: "stdout" (default) or "otlp".
func WithExporter(name string) Option {
	return func(s *settings) { s.exporter = name }
}

// WithOTLPEndpoint sets the OTLP gRPC collector endpoint. Required when the
// otlp exporter is selected.
func WithOTLPEndpoint(endpoint string) Option {
	return func(s *settings) { s.otlpEndpoint = endpoint }
}

// WithOTLPInsecure disables transport security on the collector connection.
func WithOTLPInsecure() Option {
	return func(s *settings) { s.otlpInsecure = true }
}

// WithResourceAttributes appends extra resource attributes to the service
// identity, for example a deployment environment.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(s *settings) { s.extraAttrs = append(s.extraAttrs, attrs...) }
}

// Init bootstraps the global tracer and meter providers for serviceName and
// returns a ShutdownFunc that flushes both pipelines.
func Init(serviceName, version string, opts ...Option) (ShutdownFunc, error) {
	cfg := settings{exporter: "stdout"}
	for _, opt := range opts {
		opt(&cfg)
	}

	attrs := append([]attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
		semconv.ServiceNamespace(serviceNamespace),
	}, cfg.extraAttrs...)

	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	var tp *trace.TracerProvider
	var mp *metric.MeterProvider
	switch cfg.exporter {
	case "", "stdout":
		tp, mp, err = stdoutProviders(res)
	case "otlp":
		if cfg.otlpEndpoint == "" {
			return nil, fmt.Errorf("otlp exporter requires an endpoint")
		}
		tp, mp, err = otlpProviders(res, cfg)
	default:
		return nil, fmt.Errorf("unknown telemetry exporter: %s", cfg.exporter)
	}
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		var errs []error
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("telemetry shutdown errors: %v", errs)
		}
		return nil
	}, nil
}

func stdoutProviders(res *resource.Resource) (*trace.TracerProvider, *metric.MeterProvider, error) {
	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	return newTracerProvider(res, traceExporter), newMeterProvider(res, metricExporter), nil
}

func otlpProviders(res *resource.Resource, cfg settings) (*trace.TracerProvider, *metric.MeterProvider, error) {
	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.otlpEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.otlpEndpoint)}
	if cfg.otlpInsecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(context.Background(), traceOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create otlp trace exporter: %w", err)
	}
	metricExporter, err := otlpmetricgrpc.New(context.Background(), metricOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create otlp metric exporter: %w", err)
	}
	return newTracerProvider(res, traceExporter), newMeterProvider(res, metricExporter), nil
}

func newTracerProvider(res *resource.Resource, exporter trace.SpanExporter) *trace.TracerProvider {
	return trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(res),
	)
}

func newMeterProvider(res *resource.Resource, exporter metric.Exporter) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(time.Minute))),
		metric.WithResource(res),
	)
}
