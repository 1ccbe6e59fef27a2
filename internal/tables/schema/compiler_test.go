package schema_test

import (
	"errors"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/schema"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func field(name string, t domain.FieldType, config domain.FieldConfiguration) domain.Field {
	f, err := domain.NewFieldBuilder().
		WithID(domain.ID("id-" + name)).
		WithName(name).
		WithType(t).
		WithConfiguration(config).
		Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return f
}

func validationErrors(err error) map[string]domain.Code {
	var validation *domain.ValidationError
	gomega.Expect(errors.As(err, &validation)).To(gomega.BeTrue())

	codes := make(map[string]domain.Code)
	for key, fieldErr := range validation.FieldErrors {
		codes[key] = fieldErr.Code
	}
	return codes
}

var _ = ginkgo.Describe("Compile", func() {
	var fields []domain.Field

	ginkgo.BeforeEach(func() {
		fields = []domain.Field{
			field("name", domain.FieldTypeTextShort, domain.FieldConfiguration{Required: true, Filtering: true}),
			field("status", domain.FieldTypeDropdown, domain.FieldConfiguration{DropdownOptions: []string{"draft", "live"}, DefaultValue: "draft"}),
			field("released", domain.FieldTypeDate, domain.FieldConfiguration{}),
			field("rating", domain.FieldTypeEvaluation, domain.FieldConfiguration{}),
			field("likes", domain.FieldTypeReaction, domain.FieldConfiguration{}),
		}
	})

	ginkgo.Context("descriptor", func() {
		ginkgo.It("should keep field order and storage kinds", func() {
			descriptor, err := schema.Compile(fields, nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(descriptor.Order).To(gomega.Equal([]domain.Slug{"name", "status", "released", "rating", "likes"}))
			rule, found := descriptor.Rule("released")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(rule.StorageKind).To(gomega.Equal(schema.StorageTimestamp))
			gomega.Expect(rule.Position).To(gomega.Equal(2))
			gomega.Expect(descriptor.RulesOfType(domain.FieldTypeEvaluation)).To(gomega.HaveLen(1))
			gomega.Expect(descriptor.Filterable()).To(gomega.HaveLen(1))
		})

		ginkgo.It("should produce the same version for the same input", func() {
			first, err := schema.Compile(fields, nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := schema.Compile(fields, nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(first.Version).NotTo(gomega.BeEmpty())
			gomega.Expect(second.Version).To(gomega.Equal(first.Version))
		})

		ginkgo.It("should change the version when the rules change", func() {
			before, _ := schema.Compile(fields, nil)

			fields[0].Configuration.Required = false
			changed, _ := schema.Compile(fields, nil)
			gomega.Expect(changed.Version).NotTo(gomega.Equal(before.Version))

			fields[0].Configuration.Required = true
			fields[0], fields[1] = fields[1], fields[0]
			reordered, _ := schema.Compile(fields, nil)
			gomega.Expect(reordered.Version).NotTo(gomega.Equal(before.Version))
		})

		ginkgo.It("should leave trashed fields out", func() {
			fields[2].Lifecycle.Trash(time.Now())

			descriptor, err := schema.Compile(fields, nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			_, found := descriptor.Rule("released")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("rejections", func() {
		ginkgo.It("should reject duplicated active slugs", func() {
			fields = append(fields, field("name", domain.FieldTypeTextLong, domain.FieldConfiguration{}))

			_, err := schema.Compile(fields, nil)
			gomega.Expect(errors.Is(err, domain.ErrDuplicateFieldSlug)).To(gomega.BeTrue())
		})

		ginkgo.It("should allow a duplicate slug when one of them is trashed", func() {
			duplicate := field("name", domain.FieldTypeTextLong, domain.FieldConfiguration{})
			duplicate.Lifecycle.Trash(time.Now())

			_, err := schema.Compile(append(fields, duplicate), nil)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.DescribeTable("invalid configurations",
			func(f domain.Field) {
				_, err := schema.Compile([]domain.Field{f}, nil)
				gomega.Expect(errors.Is(err, domain.ErrInvalidConfiguration)).To(gomega.BeTrue())
			},
			ginkgo.Entry("dropdown without options", field("a", domain.FieldTypeDropdown, domain.FieldConfiguration{})),
			ginkgo.Entry("repeated options", field("a", domain.FieldTypeDropdown, domain.FieldConfiguration{DropdownOptions: []string{"x", "x"}})),
			ginkgo.Entry("relationship without target", field("a", domain.FieldTypeRelationship, domain.FieldConfiguration{})),
			ginkgo.Entry("group without table", field("a", domain.FieldTypeFieldGroup, domain.FieldConfiguration{})),
			ginkgo.Entry("group not loaded", field("a", domain.FieldTypeFieldGroup, domain.FieldConfiguration{Group: &domain.GroupConfig{TableSlug: "missing"}})),
			ginkgo.Entry("empty evaluation range", field("a", domain.FieldTypeEvaluation, domain.FieldConfiguration{Evaluation: &domain.EvaluationConfig{Min: 5, Max: 5}})),
			ginkgo.Entry("invalid default", field("a", domain.FieldTypeTextShort, domain.FieldConfiguration{Format: domain.TextFormatInteger, DefaultValue: "abc"})),
		)

		ginkgo.It("should reject field groups that contain themselves", func() {
			loop := field("loop", domain.FieldTypeFieldGroup, domain.FieldConfiguration{Group: &domain.GroupConfig{TableSlug: "loop_group"}})
			groups := schema.Groups{"loop_group": {loop}}

			_, err := schema.Compile([]domain.Field{loop}, groups)
			gomega.Expect(errors.Is(err, domain.ErrInvalidConfiguration)).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("Descriptor payloads", func() {
	var descriptor schema.Descriptor

	ginkgo.BeforeEach(func() {
		groups := schema.Groups{
			"address": {
				field("street", domain.FieldTypeTextShort, domain.FieldConfiguration{Required: true}),
				field("zip", domain.FieldTypeTextShort, domain.FieldConfiguration{Format: domain.TextFormatInteger}),
			},
		}
		fields := []domain.Field{
			field("name", domain.FieldTypeTextShort, domain.FieldConfiguration{Required: true}),
			field("email", domain.FieldTypeTextShort, domain.FieldConfiguration{Format: domain.TextFormatEmail}),
			field("status", domain.FieldTypeDropdown, domain.FieldConfiguration{DropdownOptions: []string{"draft", "live"}, DefaultValue: "draft"}),
			field("released", domain.FieldTypeDate, domain.FieldConfiguration{}),
			field("address", domain.FieldTypeFieldGroup, domain.FieldConfiguration{Group: &domain.GroupConfig{TableSlug: "address"}}),
			field("rating", domain.FieldTypeEvaluation, domain.FieldConfiguration{}),
		}

		var err error
		descriptor, err = schema.Compile(fields, groups)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.Context("ValidateCreate", func() {
		ginkgo.It("should normalize values, apply defaults and fill absent fields", func() {
			data, err := descriptor.ValidateCreate(map[string]any{
				"name":     " Widget ",
				"released": "2024-01-15",
				"address":  map[string]any{"street": "Main", "zip": "0042"},
				"unknown":  "ignored",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(data).To(gomega.Equal(map[string]any{
				"name":     "Widget",
				"email":    nil,
				"status":   "draft",
				"released": "2024-01-15T00:00:00.000000000Z",
				"address":  map[string]any{"street": "Main", "zip": "42"},
			}))
		})

		ginkgo.It("should report every failing field at once", func() {
			_, err := descriptor.ValidateCreate(map[string]any{
				"name":    "",
				"email":   "nope",
				"status":  "archived",
				"address": map[string]any{"zip": "x"},
				"rating":  5,
			})

			gomega.Expect(errors.Is(err, domain.ErrValidation)).To(gomega.BeTrue())
			gomega.Expect(validationErrors(err)).To(gomega.Equal(map[string]domain.Code{
				"name":           domain.CodeFieldRequired,
				"email":          domain.CodeInvalidFieldFormat,
				"status":         domain.CodeInvalidFieldFormat,
				"address.street": domain.CodeFieldRequired,
				"address.zip":    domain.CodeInvalidFieldFormat,
				"rating":         domain.CodeReadonlyFieldType,
			}))
		})
	})

	ginkgo.Context("ValidatePatch", func() {
		ginkgo.It("should only touch the fields present", func() {
			data, err := descriptor.ValidatePatch(map[string]any{"email": "ana@example.com"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(data).To(gomega.Equal(map[string]any{"email": "ana@example.com"}))
		})

		ginkgo.It("should still refuse to blank a required field", func() {
			_, err := descriptor.ValidatePatch(map[string]any{"name": "   "})
			gomega.Expect(validationErrors(err)).To(gomega.HaveKeyWithValue("name", domain.CodeFieldRequired))
		})

		ginkgo.It("should clear optional fields", func() {
			data, err := descriptor.ValidatePatch(map[string]any{"email": ""})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(data).To(gomega.HaveKeyWithValue("email", gomega.BeNil()))
		})
	})

	ginkgo.Context("Project", func() {
		ginkgo.It("should hide values of fields the descriptor does not know", func() {
			projected := descriptor.Project(map[string]any{
				"name":     "Widget",
				"obsolete": "stale",
				"address":  map[string]any{"street": "Main", "old": "x"},
			})

			gomega.Expect(projected).NotTo(gomega.HaveKey("obsolete"))
			gomega.Expect(projected).NotTo(gomega.HaveKey("rating"))
			gomega.Expect(projected["address"]).To(gomega.Equal(map[string]any{"street": "Main", "zip": nil}))
		})
	})
})
