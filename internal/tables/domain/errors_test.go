package domain_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Errors", func() {
	ginkgo.It("should match sentinels by code through wrapping", func() {
		err := fmt.Errorf("loading table: %w", domain.NewError(domain.CodeTableNotFound, "table %q not found", "products"))

		gomega.Expect(errors.Is(err, domain.ErrTableNotFound)).To(gomega.BeTrue())
		gomega.Expect(errors.Is(err, domain.ErrRowNotFound)).To(gomega.BeFalse())
		gomega.Expect(err.Error()).To(gomega.ContainSubstring(`TABLE_NOT_FOUND: table "products" not found`))
	})

	ginkgo.It("should list every failing field in a validation error", func() {
		validation := domain.NewValidationError()
		gomega.Expect(validation.OrNil()).To(gomega.BeNil())

		validation.Add("name", domain.ErrFieldRequired)
		nested := domain.NewValidationError()
		nested.Add("street", domain.ErrInvalidFieldFormat)
		validation.Merge("address", nested)

		err := validation.OrNil()
		gomega.Expect(errors.Is(err, domain.ErrValidation)).To(gomega.BeTrue())
		gomega.Expect(validation.FieldErrors).To(gomega.HaveKey("address.street"))
		gomega.Expect(err.Error()).To(gomega.Equal("VALIDATION_ERROR: address.street: INVALID_FIELD_FORMAT, name: FIELD_REQUIRED"))
	})

	ginkgo.DescribeTable("ClassOf",
		func(err error, expected domain.Class) {
			gomega.Expect(domain.ClassOf(err)).To(gomega.Equal(expected))
		},
		ginkgo.Entry("validation", domain.NewValidationError(), domain.ClassBadRequest),
		ginkgo.Entry("duplicate slug", domain.ErrDuplicateFieldSlug, domain.ClassBadRequest),
		ginkgo.Entry("readonly", domain.ErrReadonlyFieldType, domain.ClassBadRequest),
		ginkgo.Entry("row not found", fmt.Errorf("x: %w", domain.ErrRowNotFound), domain.ClassNotFound),
		ginkgo.Entry("separator", &domain.SeparatorHasChildrenError{ChildrenCount: 1}, domain.ClassConflict),
		ginkgo.Entry("slug taken", domain.ErrTableSlugTaken, domain.ClassConflict),
		ginkgo.Entry("unauthenticated", domain.ErrAuthenticationRequired, domain.ClassUnauthenticated),
		ginkgo.Entry("denied", domain.ErrAccessDenied, domain.ClassForbidden),
		ginkgo.Entry("timeout", domain.ErrStorageTimeout, domain.ClassInternal),
		ginkgo.Entry("unknown", context.Canceled, domain.ClassInternal),
	)
})
