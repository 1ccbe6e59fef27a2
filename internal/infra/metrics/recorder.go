package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const namespace = "lowcode"

// Recorder owns the instruments emitted by the table core. A nil *Recorder
// records nothing.
type Recorder struct {
	registryHits      metric.Int64Counter
	registryMisses    metric.Int64Counter
	compilations      metric.Int64Counter
	rowOperationTotal metric.Int64Counter
	rowOperationTime  metric.Float64Histogram
}

// NewRecorder registers the instruments on provider. A nil provider falls back
// to the global one.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("lowcode-tables")

	var (
		r   Recorder
		err error
	)

	r.registryHits, err = meter.Int64Counter(
		fmt.Sprintf("%s.%s", namespace, "registry.cache.hits"),
		metric.WithDescription("Table registry lookups served from cache"),
	)
	if err != nil {
		return nil, err
	}

	r.registryMisses, err = meter.Int64Counter(
		fmt.Sprintf("%s.%s", namespace, "registry.cache.misses"),
		metric.WithDescription("Table registry lookups that required loading the table"),
	)
	if err != nil {
		return nil, err
	}

	r.compilations, err = meter.Int64Counter(
		fmt.Sprintf("%s.%s", namespace, "schema.compilations"),
		metric.WithDescription("Schema descriptors compiled"),
	)
	if err != nil {
		return nil, err
	}

	r.rowOperationTotal, err = meter.Int64Counter(
		fmt.Sprintf("%s.%s", namespace, "rows.operations.total"),
		metric.WithDescription("Row store operations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	r.rowOperationTime, err = meter.Float64Histogram(
		fmt.Sprintf("%s.%s", namespace, "rows.operation.duration.seconds"),
		metric.WithDescription("Duration of row store operations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5),
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (r *Recorder) RegistryHit(ctx context.Context, table string) {
	if r == nil {
		return
	}
	r.registryHits.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

func (r *Recorder) RegistryMiss(ctx context.Context, table string) {
	if r == nil {
		return
	}
	r.registryMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

func (r *Recorder) SchemaCompiled(ctx context.Context, table string) {
	if r == nil {
		return
	}
	r.compilations.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

// RowOperation records one row store call started at start.
func (r *Recorder) RowOperation(ctx context.Context, table, operation string, start time.Time, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)

	r.rowOperationTime.Record(ctx, time.Since(start).Seconds(), attrs)
	r.rowOperationTotal.Add(ctx, 1, attrs)
}
