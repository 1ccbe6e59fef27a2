package metrics_test

import (
	"context"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var _ = ginkgo.Describe("StartProvider", func() {
	ginkgo.AfterEach(func() {
		otel.SetMeterProvider(noop.NewMeterProvider())
	})

	ginkgo.It("should stay a no-op without an endpoint", func() {
		provider, shutdown, err := metrics.StartProvider(context.Background(), metrics.ProviderOptions{})

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(provider).To(gomega.BeAssignableToTypeOf(noop.MeterProvider{}))
		gomega.Expect(shutdown(context.Background())).To(gomega.Succeed())
	})

	ginkgo.It("should install an exporting provider as the global one", func() {
		provider, shutdown, err := metrics.StartProvider(context.Background(), metrics.ProviderOptions{
			Endpoint:      "127.0.0.1:4317",
			CollectPeriod: time.Hour,
			Insecure:      true,
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(provider).To(gomega.BeAssignableToTypeOf(&sdkmetric.MeterProvider{}))
		gomega.Expect(otel.GetMeterProvider()).To(gomega.BeIdenticalTo(provider))

		recorder, err := metrics.NewRecorder(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		recorder.SchemaCompiled(context.Background(), "products")

		// no collector listens, so only the stop itself matters
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = shutdown(ctx)
	})
})
