package metrics_test

import (
	"context"
	"errors"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	var rm metricdata.ResourceMetrics
	gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())

	result := make(map[string]metricdata.Aggregation)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			result[m.Name] = m.Data
		}
	}
	return result
}

func sumOf(data metricdata.Aggregation) int64 {
	sum, ok := data.(metricdata.Sum[int64])
	gomega.Expect(ok).To(gomega.BeTrue())

	var total int64
	for _, point := range sum.DataPoints {
		total += point.Value
	}
	return total
}

var _ = ginkgo.Describe("Recorder", func() {
	var (
		reader   *sdkmetric.ManualReader
		recorder *metrics.Recorder
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		var err error
		recorder, err = metrics.NewRecorder(provider)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.It("should count registry hits and misses", func() {
		recorder.RegistryMiss(ctx, "products")
		recorder.RegistryHit(ctx, "products")
		recorder.RegistryHit(ctx, "products")
		recorder.SchemaCompiled(ctx, "products")

		data := collect(reader)
		gomega.Expect(sumOf(data["lowcode.registry.cache.hits"])).To(gomega.Equal(int64(2)))
		gomega.Expect(sumOf(data["lowcode.registry.cache.misses"])).To(gomega.Equal(int64(1)))
		gomega.Expect(sumOf(data["lowcode.schema.compilations"])).To(gomega.Equal(int64(1)))
	})

	ginkgo.It("should record row operations with their outcome", func() {
		start := time.Now()
		recorder.RowOperation(ctx, "products", "create", start, nil)
		recorder.RowOperation(ctx, "products", "create", start, errors.New("boom"))

		data := collect(reader)
		gomega.Expect(sumOf(data["lowcode.rows.operations.total"])).To(gomega.Equal(int64(2)))

		histogram, ok := data["lowcode.rows.operation.duration.seconds"].(metricdata.Histogram[float64])
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(histogram.DataPoints).To(gomega.HaveLen(2))
	})

	ginkgo.It("should ignore calls on a nil recorder", func() {
		var disabled *metrics.Recorder

		gomega.Expect(func() {
			disabled.RegistryHit(ctx, "products")
			disabled.RegistryMiss(ctx, "products")
			disabled.SchemaCompiled(ctx, "products")
			disabled.RowOperation(ctx, "products", "create", time.Now(), nil)
		}).NotTo(gomega.Panic())
	})
})
