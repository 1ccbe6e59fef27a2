package sql_test

import (
	"context"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/gorm/clause"
)

type testDocument struct {
	ID      string `gorm:"primaryKey"`
	OwnerID string `gorm:"uniqueIndex"`
	Counter int
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.Context("NewMemoryORM", func() {
		ginkgo.It("should report the sqlite dialect", func() {
			gomega.Expect(orm.Dialect()).To(gomega.Equal("sqlite"))
		})

		ginkgo.It("should isolate databases between instances", func() {
			gomega.Expect(orm.Table("isolated_docs").AutoMigrate(&testDocument{})).To(gomega.Succeed())

			other, err := sql.NewMemoryORM()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(other.HasTable("isolated_docs")).To(gomega.BeFalse())
			gomega.Expect(orm.HasTable("isolated_docs")).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("Table", func() {
		ginkgo.It("should migrate and query a named collection", func() {
			gomega.Expect(orm.Table("docs_a").AutoMigrate(&testDocument{})).To(gomega.Succeed())

			doc := testDocument{ID: "1", OwnerID: "u1", Counter: 1}
			gomega.Expect(orm.WithContext(ctx).Table("docs_a").Create(&doc).Error()).To(gomega.Succeed())

			var found testDocument
			err := orm.WithContext(ctx).Table("docs_a").First(&found, "id = ?", "1").Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found.OwnerID).To(gomega.Equal("u1"))

			gomega.Expect(orm.DropTable("docs_a")).To(gomega.Succeed())
			gomega.Expect(orm.HasTable("docs_a")).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Error", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(orm.AutoMigrate(&testDocument{})).To(gomega.Succeed())
		})

		ginkgo.It("should translate missing records", func() {
			var found testDocument
			err := orm.WithContext(ctx).First(&found, "id = ?", "missing").Error()
			gomega.Expect(err).To(gomega.MatchError(sql.ErrRecordNotFound))
		})

		ginkgo.It("should translate unique violations", func() {
			gomega.Expect(orm.WithContext(ctx).Create(&testDocument{ID: "1", OwnerID: "u1"}).Error()).To(gomega.Succeed())

			err := orm.WithContext(ctx).Create(&testDocument{ID: "2", OwnerID: "u1"}).Error()
			gomega.Expect(err).To(gomega.MatchError(sql.ErrDuplicatedKey))
		})

		ginkgo.It("should translate expired deadlines", func() {
			expired, cancel := context.WithTimeout(ctx, time.Nanosecond)
			defer cancel()
			<-expired.Done()

			var docs []testDocument
			err := orm.WithContext(expired).Find(&docs).Error()
			gomega.Expect(err).To(gomega.MatchError(sql.ErrQueryTimeout))
		})
	})

	ginkgo.Context("Clauses", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(orm.AutoMigrate(&testDocument{})).To(gomega.Succeed())
		})

		ginkgo.It("should upsert on conflict instead of duplicating", func() {
			upsert := clause.OnConflict{
				Columns:   []clause.Column{{Name: "owner_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"counter"}),
			}

			gomega.Expect(orm.WithContext(ctx).Clauses(upsert).Create(&testDocument{ID: "1", OwnerID: "u1", Counter: 1}).Error()).To(gomega.Succeed())
			gomega.Expect(orm.WithContext(ctx).Clauses(upsert).Create(&testDocument{ID: "2", OwnerID: "u1", Counter: 7}).Error()).To(gomega.Succeed())

			var docs []testDocument
			gomega.Expect(orm.WithContext(ctx).Find(&docs).Error()).To(gomega.Succeed())
			gomega.Expect(docs).To(gomega.HaveLen(1))
			gomega.Expect(docs[0].ID).To(gomega.Equal("1"))
			gomega.Expect(docs[0].Counter).To(gomega.Equal(7))
		})
	})

	ginkgo.Context("RowsAffected", func() {
		ginkgo.It("should report how many rows an update touched", func() {
			gomega.Expect(orm.AutoMigrate(&testDocument{})).To(gomega.Succeed())
			gomega.Expect(orm.WithContext(ctx).Create(&testDocument{ID: "1", OwnerID: "u1"}).Error()).To(gomega.Succeed())

			tx := orm.WithContext(ctx).Model(&testDocument{}).Where("id = ?", "1").Updates(map[string]any{"counter": 3})
			gomega.Expect(tx.Error()).NotTo(gomega.HaveOccurred())
			gomega.Expect(tx.RowsAffected()).To(gomega.Equal(int64(1)))

			tx = orm.WithContext(ctx).Model(&testDocument{}).Where("id = ?", "nope").Updates(map[string]any{"counter": 3})
			gomega.Expect(tx.Error()).NotTo(gomega.HaveOccurred())
			gomega.Expect(tx.RowsAffected()).To(gomega.BeZero())
		})
	})

	ginkgo.Context("WithTimeout", func() {
		ginkgo.It("should complete operations within the timeout", func() {
			gomega.Expect(orm.AutoMigrate(&testDocument{})).To(gomega.Succeed())

			var count int64
			err := orm.WithTimeout(ctx, 2*time.Second).Model(&testDocument{}).Count(&count).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.BeZero())
		})
	})
})
