package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/cache"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"
	mockusecases "github.com/lowcodejsorg/lowcodejs-sub005/test/unit/doubles/tables/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

type failingGenerations struct{}

func (failingGenerations) Get(context.Context, string) (int64, bool, error) {
	return 0, false, errors.New("redis is down")
}

func (failingGenerations) Publish(context.Context, string, int64) error {
	return errors.New("redis is down")
}

func textField(id, name string) domain.Field {
	field, err := domain.NewFieldBuilder().
		WithID(domain.ID(id)).
		WithTableID("t1").
		WithName(name).
		WithType(domain.FieldTypeTextShort).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return field
}

func counter(reader *sdkmetric.ManualReader, name string) int64 {
	var rm metricdata.ResourceMetrics
	gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == name {
				for _, point := range sum.DataPoints {
					total += point.Value
				}
			}
		}
	}
	return total
}

var _ = ginkgo.Describe("Registry", func() {
	var (
		ctrl        *gomock.Controller
		tables      *mockusecases.MockTableRepository
		fields      *mockusecases.MockFieldRepository
		collections *mockusecases.MockRowCollections
		rows        *mockusecases.MockRowCollection
		handles     *cache.RistrettoCache
		generations cache.GenerationStore
		reader      *sdkmetric.ManualReader
		recorder    *metrics.Recorder
		registry    *usecases.Registry
		ctx         context.Context

		mu            sync.Mutex
		current       domain.Table
		currentFields []domain.Field
	)

	newRegistry := func() *usecases.Registry {
		return usecases.NewRegistry(
			usecases.Repositories{
				Tables:      tables,
				Fields:      fields,
				Collections: collections,
				Reactions:   mockusecases.NewMockReactionRepository(ctrl),
				Evaluations: mockusecases.NewMockEvaluationRepository(ctrl),
			},
			mockusecases.NewMockObjectStorage(ctrl),
			usecases.UUIDGenerator{},
			handles,
			generations,
			recorder,
			usecases.RegistryConfig{},
		)
	}

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		tables = mockusecases.NewMockTableRepository(ctrl)
		fields = mockusecases.NewMockFieldRepository(ctrl)
		collections = mockusecases.NewMockRowCollections(ctrl)
		rows = mockusecases.NewMockRowCollection(ctrl)

		var err error
		handles, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		generations = cache.NewMemoryGenerationStore()

		reader = sdkmetric.NewManualReader()
		recorder, err = metrics.NewRecorder(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()

		current, err = domain.NewTableBuilder().WithID("t1").WithName("Products").WithOwner("u1").Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		currentFields = []domain.Field{textField("f1", "Name")}

		tables.EXPECT().GetBySlug(gomock.Any(), domain.Slug("products")).
			DoAndReturn(func(context.Context, domain.Slug) (domain.Table, error) {
				mu.Lock()
				defer mu.Unlock()
				return current, nil
			}).
			AnyTimes()
		collections.EXPECT().Open(gomock.Any(), domain.Slug("products")).Return(rows, nil).AnyTimes()

		registry = newRegistry()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
		handles.Close()
	})

	ginkgo.Context("Resolve", func() {
		ginkgo.It("should compile once and serve the cached handle afterwards", func() {
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).Return(currentFields, nil).Times(1)

			first, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(second).To(gomega.BeIdenticalTo(first))
			gomega.Expect(first.Descriptor().Order).To(gomega.Equal([]domain.Slug{"name"}))
			gomega.Expect(counter(reader, "lowcode.registry.cache.misses")).To(gomega.Equal(int64(1)))
			gomega.Expect(counter(reader, "lowcode.registry.cache.hits")).To(gomega.Equal(int64(1)))
			gomega.Expect(counter(reader, "lowcode.schema.compilations")).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should rebuild after a newer generation is published", func() {
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).
				DoAndReturn(func(context.Context, domain.ID) ([]domain.Field, error) { return currentFields, nil }).
				Times(2)

			old, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			current.SchemaVersion = 2
			currentFields = append(currentFields, textField("f2", "Code"))
			registry.Invalidate(ctx, "products", 2)

			fresh, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(fresh).NotTo(gomega.BeIdenticalTo(old))
			gomega.Expect(fresh.Descriptor().Order).To(gomega.Equal([]domain.Slug{"name", "code"}))
			gomega.Expect(old.Descriptor().Order).To(gomega.Equal([]domain.Slug{"name"}))
		})

		ginkgo.It("should share generations between registries", func() {
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).Return(currentFields, nil).Times(2)

			_, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			other := newRegistry()
			current.SchemaVersion = 5
			other.Invalidate(ctx, "products", 5)

			resolved, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(resolved.Table().SchemaVersion).To(gomega.Equal(domain.Version(5)))

			again, err := other.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(again).To(gomega.BeIdenticalTo(resolved))
		})

		ginkgo.It("should not resolve trashed tables", func() {
			current.Lifecycle.Trashed = true

			_, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableNotFound))
		})

		ginkgo.It("should report unknown tables", func() {
			tables.EXPECT().GetBySlug(gomock.Any(), domain.Slug("missing")).
				Return(domain.Table{}, domain.NewError(domain.CodeTableNotFound, "missing"))

			_, err := registry.Resolve(ctx, "missing")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableNotFound))
		})

		ginkgo.It("should not cache a failed compilation", func() {
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).
				Return([]domain.Field{textField("f1", "Name"), textField("f2", "name")}, nil)
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).Return(currentFields, nil)

			_, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrDuplicateFieldSlug))

			_, err = registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should keep serving when the generation store fails", func() {
			generations = failingGenerations{}
			registry = newRegistry()
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).Return(currentFields, nil).Times(2)

			first, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(second).NotTo(gomega.BeIdenticalTo(first))
		})
	})

	ginkgo.Context("concurrent schema changes", func() {
		ginkgo.It("should hand every reader the schema of a single generation", func() {
			const (
				readers     = 4
				resolutions = 25
			)
			names := []string{"Name", "Code", "Price", "Color", "Size", "Weight"}
			all := make([]domain.Field, len(names))
			slugs := make([]domain.Slug, len(names))
			for i, name := range names {
				all[i] = textField(fmt.Sprintf("f%d", i+1), name)
				slugs[i] = domain.Slug(strings.ToLower(name))
			}

			mu.Lock()
			currentFields = all[:1]
			mu.Unlock()
			fields.EXPECT().FindByTable(gomock.Any(), domain.ID("t1")).
				DoAndReturn(func(context.Context, domain.ID) ([]domain.Field, error) {
					mu.Lock()
					defer mu.Unlock()
					return currentFields, nil
				}).
				AnyTimes()

			type resolved struct {
				store *usecases.RowStore
				order []domain.Slug
			}
			held := make(chan resolved, readers*resolutions)

			var wg sync.WaitGroup
			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer ginkgo.GinkgoRecover()
					for j := 0; j < resolutions; j++ {
						store, err := registry.Resolve(ctx, "products")
						gomega.Expect(err).NotTo(gomega.HaveOccurred())

						order := append([]domain.Slug(nil), store.Descriptor().Order...)
						gomega.Expect(order).NotTo(gomega.BeEmpty())
						gomega.Expect(order).To(gomega.Equal(slugs[:len(order)]))
						held <- resolved{store: store, order: order}
					}
				}()
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer ginkgo.GinkgoRecover()
				for version := 2; version <= len(all); version++ {
					mu.Lock()
					currentFields = all[:version]
					current.SchemaVersion = domain.Version(version)
					mu.Unlock()
					registry.Invalidate(ctx, "products", domain.Version(version))
				}
			}()

			wg.Wait()
			close(held)

			for entry := range held {
				gomega.Expect(entry.store.Descriptor().Order).To(gomega.Equal(entry.order))
			}

			latest, err := registry.Resolve(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(latest.Descriptor().Order).To(gomega.Equal(slugs))
			gomega.Expect(latest.Table().SchemaVersion).To(gomega.Equal(domain.Version(len(all))))
		})
	})

	ginkgo.Context("NextSchemaVersion", func() {
		ginkgo.It("should move past any published generation", func() {
			gomega.Expect(registry.NextSchemaVersion(ctx, "products")).To(gomega.Equal(domain.Version(1)))

			registry.Invalidate(ctx, "products", 7)
			gomega.Expect(registry.NextSchemaVersion(ctx, "products")).To(gomega.Equal(domain.Version(8)))
		})
	})
})
