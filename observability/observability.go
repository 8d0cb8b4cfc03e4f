// Package observability provides OpenTelemetry integration for pluralkit packages.
//
// This package offers tracing, metrics, and log export that can be used
// across the pluralize, locale and source packages.
//
// Features:
//   - Distributed tracing with OpenTelemetry
//   - Counters and latency histograms for inflections, bundle loads and source reads
//   - An OpenTelemetry logger provider for the slog bridge
//   - Zero overhead when not configured
//
// Example usage:
//
//	import "github.com/kdsmith18542/pluralkit/observability"
//
//	func main() {
//	    // Initialize observability (optional)
//	    if err := observability.Init(observability.Config{
//	        ServiceName:    "my-app",
//	        ServiceVersion: "1.0.0",
//	        Environment:    "production",
//	        EnableTracing:  true,
//	        EnableMetrics:  true,
//	    }); err != nil {
//	        log.Fatal(err)
//	    }
//	    defer observability.Shutdown(context.Background())
//
//	    // Route engine events to OpenTelemetry
//	    pluralize.EnableObservability()
//	}
package observability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kdsmith18542/pluralkit"

// Config holds the configuration for observability initialization
type Config struct {
	// ServiceName is the name of the service for tracing and metrics
	ServiceName string
	// ServiceVersion is the version of the service
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod)
	Environment string
	// EnableTracing enables distributed tracing
	EnableTracing bool
	// EnableMetrics enables metrics collection
	EnableMetrics bool
	// EnableLogging enables the OpenTelemetry logger provider
	EnableLogging bool
}

// Observer provides observability capabilities for pluralkit operations
type Observer interface {
	// Engine observability
	OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration)
	OnRuleRegistered(ctx context.Context, engine string, kind string, err error)

	// Locale observability
	OnLocaleDetection(ctx context.Context, detectedLocale string, fallbackUsed bool)
	OnBundleLoad(ctx context.Context, locale string, origin string, entries int, duration time.Duration, err error)

	// Rule source observability
	OnSourceOperation(ctx context.Context, operation string, sourceType string, duration time.Duration, success bool)
}

type observerHolder struct {
	Observer
}

var globalObserver atomic.Pointer[observerHolder]

var (
	providersMu    sync.Mutex
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
)

// Init initializes the observability system with the given configuration
func Init(config Config) error {
	if !config.EnableTracing && !config.EnableMetrics && !config.EnableLogging {
		// No observability enabled, use no-op observer
		return nil
	}

	if err := initOpenTelemetry(config); err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	observer, err := newOtelObserver()
	if err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}
	SetObserver(observer)

	return nil
}

// Shutdown flushes and stops every provider created by Init.
func Shutdown(ctx context.Context) error {
	providersMu.Lock()
	defer providersMu.Unlock()

	var errs []error
	if tracerProvider != nil {
		errs = append(errs, tracerProvider.Shutdown(ctx))
		tracerProvider = nil
	}
	if meterProvider != nil {
		errs = append(errs, meterProvider.Shutdown(ctx))
		meterProvider = nil
	}
	if loggerProvider != nil {
		errs = append(errs, loggerProvider.Shutdown(ctx))
		loggerProvider = nil
	}
	return errors.Join(errs...)
}

// SetObserver sets a custom observer for observability events.
// Passing nil restores the no-op observer.
func SetObserver(observer Observer) {
	if observer == nil {
		globalObserver.Store(nil)
		return
	}
	globalObserver.Store(&observerHolder{Observer: observer})
}

// GetObserver returns the current observer instance
func GetObserver() Observer {
	if h := globalObserver.Load(); h != nil {
		return h.Observer
	}
	return noop
}

// LoggerProvider returns the logger provider created by Init, or nil when
// logging was not enabled.
func LoggerProvider() *sdklog.LoggerProvider {
	providersMu.Lock()
	defer providersMu.Unlock()
	return loggerProvider
}

// StartSpan starts a new span for tracing
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// AddSpanEvent adds an event to the current span
func AddSpanEvent(ctx context.Context, name string, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(toAttributes(attributes)...))
	}
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(toAttributes(attributes)...)
	}
}

// LogError records an error on the current span
func LogError(ctx context.Context, message string, err error, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := toAttributes(attributes)
	attrs = append(attrs, attribute.String("message", message))
	if err != nil {
		span.RecordError(err, trace.WithAttributes(attrs...))
		return
	}
	span.AddEvent("log.error", trace.WithAttributes(attrs...))
}

func toAttributes(m map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(m)+1)
	for k, v := range m {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}

// noopObserver is a no-operation observer that does nothing
type noopObserver struct{}

var noop Observer = noopObserver{}

func (noopObserver) OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration) {
}
func (noopObserver) OnRuleRegistered(ctx context.Context, engine string, kind string, err error) {}
func (noopObserver) OnLocaleDetection(ctx context.Context, detectedLocale string, fallbackUsed bool) {
}
func (noopObserver) OnBundleLoad(ctx context.Context, locale string, origin string, entries int, duration time.Duration, err error) {
}
func (noopObserver) OnSourceOperation(ctx context.Context, operation string, sourceType string, duration time.Duration, success bool) {
}

// otelObserver implements Observer using OpenTelemetry
type otelObserver struct {
	tracer trace.Tracer

	inflections        metric.Int64Counter
	inflectionDuration metric.Float64Histogram
	rules              metric.Int64Counter
	detections         metric.Int64Counter
	bundleLoads        metric.Int64Counter
	bundleDuration     metric.Float64Histogram
	sourceOps          metric.Int64Counter
	sourceDuration     metric.Float64Histogram
}

func newOtelObserver() (*otelObserver, error) {
	meter := otel.Meter(instrumentationName)
	o := &otelObserver{
		tracer: otel.Tracer(instrumentationName),
	}

	var err error
	if o.inflections, err = meter.Int64Counter("pluralkit.inflections",
		metric.WithDescription("Words inflected")); err != nil {
		return nil, err
	}
	if o.inflectionDuration, err = meter.Float64Histogram("pluralkit.inflection.duration",
		metric.WithDescription("Time spent inflecting a word"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if o.rules, err = meter.Int64Counter("pluralkit.rules.registered",
		metric.WithDescription("Rules registered at runtime")); err != nil {
		return nil, err
	}
	if o.detections, err = meter.Int64Counter("pluralkit.locale.detections",
		metric.WithDescription("Locales detected from requests")); err != nil {
		return nil, err
	}
	if o.bundleLoads, err = meter.Int64Counter("pluralkit.bundle.loads",
		metric.WithDescription("Rule bundles loaded")); err != nil {
		return nil, err
	}
	if o.bundleDuration, err = meter.Float64Histogram("pluralkit.bundle.load.duration",
		metric.WithDescription("Time spent loading a rule bundle"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if o.sourceOps, err = meter.Int64Counter("pluralkit.source.operations",
		metric.WithDescription("Rule source operations")); err != nil {
		return nil, err
	}
	if o.sourceDuration, err = meter.Float64Histogram("pluralkit.source.operation.duration",
		metric.WithDescription("Time spent in rule source operations"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return o, nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func (o *otelObserver) OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("direction", direction),
	)
	o.inflections.Add(ctx, 1, attrs)
	o.inflectionDuration.Record(ctx, millis(duration), attrs)

	AddSpanEvent(ctx, "pluralize.inflection", map[string]string{
		"engine":      engine,
		"direction":   direction,
		"word":        word,
		"duration.ms": fmt.Sprintf("%.3f", millis(duration)),
	})
}

func (o *otelObserver) OnRuleRegistered(ctx context.Context, engine string, kind string, err error) {
	o.rules.Add(ctx, 1, metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("kind", kind),
		attribute.Bool("success", err == nil),
	))

	if err != nil {
		LogError(ctx, "rule registration failed", err, map[string]string{
			"engine": engine,
			"kind":   kind,
		})
	}
}

func (o *otelObserver) OnLocaleDetection(ctx context.Context, detectedLocale string, fallbackUsed bool) {
	o.detections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("locale", detectedLocale),
		attribute.Bool("fallback.used", fallbackUsed),
	))

	AddSpanEvent(ctx, "locale.detected", map[string]string{
		"locale":        detectedLocale,
		"fallback.used": strconv.FormatBool(fallbackUsed),
	})
}

func (o *otelObserver) OnBundleLoad(ctx context.Context, locale string, origin string, entries int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("locale", locale),
		attribute.Bool("success", err == nil),
	)
	o.bundleLoads.Add(ctx, 1, attrs)
	o.bundleDuration.Record(ctx, millis(duration), attrs)

	_, span := o.tracer.Start(ctx, "locale.bundle.load", trace.WithAttributes(
		attribute.String("locale", locale),
		attribute.String("bundle.origin", origin),
		attribute.Int("bundle.entries", entries),
	))
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (o *otelObserver) OnSourceOperation(ctx context.Context, operation string, sourceType string, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("source.type", sourceType),
		attribute.Bool("success", success),
	)
	o.sourceOps.Add(ctx, 1, attrs)
	o.sourceDuration.Record(ctx, millis(duration), attrs)

	AddSpanEvent(ctx, "source.operation", map[string]string{
		"operation":   operation,
		"source.type": sourceType,
		"success":     strconv.FormatBool(success),
		"duration.ms": fmt.Sprintf("%.3f", millis(duration)),
	})
}

// initOpenTelemetry initializes OpenTelemetry with the given configuration
func initOpenTelemetry(config Config) error {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	providersMu.Lock()
	defer providersMu.Unlock()

	// No exporters are configured here.
	if config.EnableTracing {
		tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
		)

		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if config.EnableMetrics {
		meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
		)

		otel.SetMeterProvider(meterProvider)
	}

	if config.EnableLogging {
		loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
		)
	}

	return nil
}
