package persistence_test

import (
	"context"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/persistence"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func newField(table domain.ID, name string, t domain.FieldType, config domain.FieldConfiguration) domain.Field {
	field, err := domain.NewFieldBuilder().
		WithTableID(table).
		WithName(name).
		WithType(t).
		WithConfiguration(config).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return field
}

var _ = ginkgo.Describe("FieldRepository", func() {
	var (
		orm  sql.ORM
		repo *persistence.SimpleFieldRepository
		ctx  context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo, err = persistence.NewFieldRepository(orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		ctx = context.Background()
	})

	ginkgo.It("should keep the type specific configuration", func() {
		parent := domain.ID("root")
		tree := domain.CategoryTree{
			{ID: "root", Label: "Root"},
			{ID: "leaf", Label: "Leaf", Parent: &parent},
		}
		field := newField("t1", "Category", domain.FieldTypeCategory, domain.FieldConfiguration{
			Required:     true,
			Multiple:     true,
			CategoryTree: tree,
		})
		gomega.Expect(repo.Create(ctx, field)).To(gomega.Succeed())

		found, err := repo.GetByID(ctx, field.ID)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(found.Slug).To(gomega.Equal(domain.Slug("category")))
		gomega.Expect(found.Type).To(gomega.Equal(domain.FieldTypeCategory))
		gomega.Expect(found.Configuration.Required).To(gomega.BeTrue())
		gomega.Expect(found.Configuration.CategoryTree).To(gomega.HaveLen(2))
		gomega.Expect(found.Configuration.CategoryTree.IsActiveLeaf("leaf")).To(gomega.BeTrue())
	})

	ginkgo.It("should report missing fields", func() {
		_, err := repo.GetByID(ctx, "missing")
		gomega.Expect(err).To(gomega.MatchError(domain.ErrFieldNotFound))
	})

	ginkgo.It("should find fields by table and by embedded group", func() {
		name := newField("t1", "Name", domain.FieldTypeTextShort, domain.FieldConfiguration{})
		address := newField("t1", "Address", domain.FieldTypeFieldGroup, domain.FieldConfiguration{
			Group: &domain.GroupConfig{TableSlug: "products_address"},
		})
		other := newField("t2", "Title", domain.FieldTypeTextShort, domain.FieldConfiguration{})
		for _, field := range []domain.Field{name, address, other} {
			gomega.Expect(repo.Create(ctx, field)).To(gomega.Succeed())
		}

		fields, err := repo.FindByTable(ctx, "t1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(fields).To(gomega.HaveLen(2))

		embedding, err := repo.FindByGroupTable(ctx, "products_address")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(embedding).To(gomega.HaveLen(1))
		gomega.Expect(embedding[0].ID).To(gomega.Equal(address.ID))
	})

	ginkgo.It("should update and delete by table", func() {
		field := newField("t1", "Name", domain.FieldTypeTextShort, domain.FieldConfiguration{})
		gomega.Expect(repo.Create(ctx, field)).To(gomega.Succeed())

		field.Trash(time.Now())
		gomega.Expect(repo.Update(ctx, field)).To(gomega.Succeed())

		found, err := repo.GetByID(ctx, field.ID)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(found.Trashed).To(gomega.BeTrue())

		gomega.Expect(repo.DeleteByTable(ctx, "t1")).To(gomega.Succeed())
		fields, err := repo.FindByTable(ctx, "t1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(fields).To(gomega.BeEmpty())
	})
})
