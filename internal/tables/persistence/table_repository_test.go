package persistence_test

import (
	"context"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func newTable(name string) domain.Table {
	table, err := domain.NewTableBuilder().
		WithName(name).
		WithOwner("u1").
		WithAdministrators("u2").
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return table
}

var _ = ginkgo.Describe("TableRepository", func() {
	var (
		orm  sql.ORM
		repo *persistence.SimpleTableRepository
		ctx  context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo, err = persistence.NewTableRepository(orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()
	})

	ginkgo.Context("Create", func() {
		ginkgo.It("should store the table with its configuration", func() {
			table := newTable("Products")
			table.Methods = domain.TableMethods{OnLoad: "load()"}
			table.Configuration.ListOrder = []domain.Slug{"name"}
			table.FieldIDs = []domain.ID{"f1", "f2"}

			gomega.Expect(repo.Create(ctx, table)).To(gomega.Succeed())

			found, err := repo.GetBySlug(ctx, "products")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.ID).To(gomega.Equal(table.ID))
			gomega.Expect(found.Name).To(gomega.Equal(domain.Name("Products")))
			gomega.Expect(found.FieldIDs).To(gomega.Equal([]domain.ID{"f1", "f2"}))
			gomega.Expect(found.Configuration.Owner).To(gomega.Equal(domain.ID("u1")))
			gomega.Expect(found.Configuration.Administrators).To(gomega.Equal([]domain.ID{"u2"}))
			gomega.Expect(found.Configuration.Visibility).To(gomega.Equal(domain.VisibilityRestricted))
			gomega.Expect(found.Configuration.ListOrder).To(gomega.Equal([]domain.Slug{"name"}))
			gomega.Expect(found.Methods.OnLoad).To(gomega.Equal("load()"))
			gomega.Expect(found.SchemaVersion).To(gomega.Equal(domain.Version(1)))
		})

		ginkgo.It("should refuse a slug that is taken", func() {
			gomega.Expect(repo.Create(ctx, newTable("Products"))).To(gomega.Succeed())

			err := repo.Create(ctx, newTable("products"))
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableSlugTaken))
		})
	})

	ginkgo.Context("GetByID", func() {
		ginkgo.It("should report missing tables", func() {
			_, err := repo.GetByID(ctx, "missing")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableNotFound))

			_, err = repo.GetBySlug(ctx, "missing")
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableNotFound))
		})
	})

	ginkgo.Context("FindAll", func() {
		ginkgo.BeforeEach(func() {
			for _, name := range []string{"Products", "Product Photos", "Orders", "Customers"} {
				gomega.Expect(repo.Create(ctx, newTable(name))).To(gomega.Succeed())
			}

			trashed := newTable("Old Products")
			trashed.Trash(time.Now())
			gomega.Expect(repo.Create(ctx, trashed)).To(gomega.Succeed())
		})

		ginkgo.It("should page active tables", func() {
			tables, total, err := repo.FindAll(ctx, usecases.TableFilter{}, usecases.Pagination{Page: 2, PerPage: 3})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(4))
			gomega.Expect(tables).To(gomega.HaveLen(1))
		})

		ginkgo.It("should search by name", func() {
			tables, total, err := repo.FindAll(ctx, usecases.TableFilter{Search: "PRODUCT"}, usecases.Pagination{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(2))
			gomega.Expect(tables).To(gomega.HaveLen(2))
		})

		ginkgo.It("should list the trash on request", func() {
			tables, total, err := repo.FindAll(ctx, usecases.TableFilter{Trashed: true}, usecases.Pagination{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(1))
			gomega.Expect(tables[0].Slug).To(gomega.Equal(domain.Slug("old_products")))
			gomega.Expect(tables[0].TrashedAt).NotTo(gomega.BeNil())
		})
	})

	ginkgo.Context("Update and Delete", func() {
		ginkgo.It("should persist changes and remove the table", func() {
			table := newTable("Products")
			gomega.Expect(repo.Create(ctx, table)).To(gomega.Succeed())

			table.BumpSchemaVersion(time.Now())
			table.Configuration.Visibility = domain.VisibilityPublic
			gomega.Expect(repo.Update(ctx, table)).To(gomega.Succeed())

			found, err := repo.GetByID(ctx, table.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.SchemaVersion).To(gomega.Equal(domain.Version(2)))
			gomega.Expect(found.Configuration.Visibility).To(gomega.Equal(domain.VisibilityPublic))

			gomega.Expect(repo.Delete(ctx, table.ID)).To(gomega.Succeed())
			_, err = repo.GetByID(ctx, table.ID)
			gomega.Expect(err).To(gomega.MatchError(domain.ErrTableNotFound))
		})
	})
})
