package domain_test

import (
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Lifecycle", func() {
	ginkgo.It("should start active", func() {
		var l domain.Lifecycle
		gomega.Expect(l.State()).To(gomega.Equal(domain.LifecycleActive))
		gomega.Expect(l.TrashedAt).To(gomega.BeNil())
	})

	ginkgo.It("should keep the first trash timestamp on repeated trash", func() {
		var l domain.Lifecycle
		first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		gomega.Expect(l.Trash(first)).To(gomega.BeTrue())
		gomega.Expect(l.Trash(first.Add(time.Hour))).To(gomega.BeFalse())

		gomega.Expect(l.State()).To(gomega.Equal(domain.LifecycleTrashed))
		gomega.Expect(*l.TrashedAt).To(gomega.Equal(first))
	})

	ginkgo.It("should clear both flags on restore and ignore a second restore", func() {
		var l domain.Lifecycle
		l.Trash(time.Now())

		gomega.Expect(l.Restore()).To(gomega.BeTrue())
		gomega.Expect(l.Restore()).To(gomega.BeFalse())
		gomega.Expect(l.Trashed).To(gomega.BeFalse())
		gomega.Expect(l.TrashedAt).To(gomega.BeNil())
	})
})
