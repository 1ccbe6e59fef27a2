package domain_test

import (
	"errors"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func node(id string, parent string) domain.CategoryNode {
	n := domain.CategoryNode{ID: domain.ID(id), Label: id}
	if parent != "" {
		p := domain.ID(parent)
		n.Parent = &p
	}
	return n
}

var _ = ginkgo.Describe("CategoryTree", func() {
	var tree domain.CategoryTree

	ginkgo.BeforeEach(func() {
		tree = domain.CategoryTree{
			node("electronics", ""),
			node("phones", "electronics"),
			node("laptops", "electronics"),
			node("android", "phones"),
			node("books", ""),
		}
	})

	ginkgo.Context("leaves", func() {
		ginkgo.It("should only treat nodes without active children as leaves", func() {
			gomega.Expect(tree.IsActiveLeaf("android")).To(gomega.BeTrue())
			gomega.Expect(tree.IsActiveLeaf("books")).To(gomega.BeTrue())
			gomega.Expect(tree.IsActiveLeaf("phones")).To(gomega.BeFalse())
			gomega.Expect(tree.IsActiveLeaf("unknown")).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Trash", func() {
		ginkgo.It("should refuse a separator with active children and report them", func() {
			_, err := tree.Trash("electronics", false, time.Now())

			gomega.Expect(errors.Is(err, domain.ErrSeparatorHasChildren)).To(gomega.BeTrue())
			var separator *domain.SeparatorHasChildrenError
			gomega.Expect(errors.As(err, &separator)).To(gomega.BeTrue())
			gomega.Expect(separator.ChildrenCount).To(gomega.Equal(2))
			gomega.Expect(separator.Children).To(gomega.HaveLen(2))
		})

		ginkgo.It("should not count trashed children", func() {
			updated, err := tree.Trash("android", false, time.Now())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, err = updated.Trash("phones", false, time.Now())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			phones, _ := updated.Find("phones")
			gomega.Expect(phones.Trashed).To(gomega.BeTrue())
		})

		ginkgo.It("should leave the receiver untouched", func() {
			_, err := tree.Trash("books", false, time.Now())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			books, _ := tree.Find("books")
			gomega.Expect(books.Trashed).To(gomega.BeFalse())
		})

		ginkgo.It("should trash every descendant when cascading", func() {
			updated, err := tree.Trash("electronics", true, time.Now())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			for _, id := range []domain.ID{"electronics", "phones", "laptops", "android"} {
				n, _ := updated.Find(id)
				gomega.Expect(n.Trashed).To(gomega.BeTrue(), string(id))
			}
			books, _ := updated.Find("books")
			gomega.Expect(books.Trashed).To(gomega.BeFalse())
		})

		ginkgo.It("should report unknown nodes", func() {
			_, err := tree.Trash("missing", false, time.Now())
			gomega.Expect(errors.Is(err, domain.ErrCategoryNodeNotFound)).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("Restore", func() {
		ginkgo.It("should restore only the requested node", func() {
			trashed, err := tree.Trash("electronics", true, time.Now())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			restored, err := trashed.Restore("phones")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			phones, _ := restored.Find("phones")
			electronics, _ := restored.Find("electronics")
			gomega.Expect(phones.Trashed).To(gomega.BeFalse())
			gomega.Expect(electronics.Trashed).To(gomega.BeTrue())
		})
	})
})
