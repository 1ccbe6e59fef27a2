package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const DefaultCollectPeriod = 30 * time.Second

// ShutdownFunc flushes pending measurements and stops the exporter.
type ShutdownFunc func(ctx context.Context) error

type ProviderOptions struct {
	// Endpoint is the host:port of an OTLP gRPC collector. Empty disables
	// exporting.
	Endpoint      string
	CollectPeriod time.Duration
	Insecure      bool
}

// StartProvider installs the global meter provider. Without an endpoint the
// returned provider is a no-op one and nothing leaves the process.
func StartProvider(ctx context.Context, options ProviderOptions) (metric.MeterProvider, ShutdownFunc, error) {
	if options.Endpoint == "" {
		slog.Debug("metrics exporter disabled, no otlp endpoint configured")
		return noop.NewMeterProvider(), func(context.Context) error { return nil }, nil
	}

	exporter, err := newMetricExporter(ctx, options)
	if err != nil {
		return nil, nil, err
	}

	provider := newMeterProvider(exporter, options.CollectPeriod)
	otel.SetMeterProvider(provider)

	err = runtime.Start(runtime.WithMeterProvider(provider))
	if err != nil {
		return nil, nil, err
	}

	slog.Info("metrics exporter started",
		slog.String("endpoint", options.Endpoint),
		slog.Duration("period", options.CollectPeriod),
	)
	return provider, provider.Shutdown, nil
}

func newMetricExporter(ctx context.Context, options ProviderOptions) (sdkmetric.Exporter, error) {
	exporterOptions := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(options.Endpoint)}
	if options.Insecure {
		exporterOptions = append(exporterOptions, otlpmetricgrpc.WithInsecure())
	}
	return otlpmetricgrpc.New(ctx, exporterOptions...)
}

func newMeterProvider(exporter sdkmetric.Exporter, period time.Duration) *sdkmetric.MeterProvider {
	if period <= 0 {
		period = DefaultCollectPeriod
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithTimeout(period+5*time.Second),
				sdkmetric.WithInterval(period))),
	)
}
