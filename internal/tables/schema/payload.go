package schema

import (
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
)

// ValidateCreate validates a full row payload. Absent fields receive their
// configured default, every required field must end up non-empty and every
// writable field appears in the result. Unknown slugs are dropped. All
// failures are reported together.
func (d Descriptor) ValidateCreate(payload map[string]any) (map[string]any, error) {
	data, errs := d.validate(payload, true)
	if errs.HasErrors() {
		return nil, errs
	}
	return data, nil
}

// ValidatePatch validates only the fields present in payload.
func (d Descriptor) ValidatePatch(payload map[string]any) (map[string]any, error) {
	data, errs := d.validate(payload, false)
	if errs.HasErrors() {
		return nil, errs
	}
	return data, nil
}

func (d Descriptor) validate(payload map[string]any, full bool) (map[string]any, *domain.ValidationError) {
	errs := domain.NewValidationError()
	result := make(map[string]any)

	for _, slug := range d.Order {
		rule := d.BySlug[slug]
		raw, present := payload[slug.String()]

		if rule.Type.IsReadOnly() {
			if present {
				_, err := rule.descriptor.Validate(raw, rule.Configuration)
				errs.Add(slug.String(), err)
			}
			continue
		}
		if !present && !full {
			continue
		}
		if full && isEmpty(raw) {
			if fallback := rule.descriptor.Default(rule.Configuration); fallback != nil {
				raw = fallback
			}
		}

		value, err, nested := rule.normalize(raw)
		switch {
		case err != nil:
			errs.Add(slug.String(), err)
		case nested != nil:
			errs.Merge(slug.String(), nested)
		default:
			result[slug.String()] = value
		}
	}

	return result, errs
}

// normalize returns the storage ready value of raw.
func (r FieldRule) normalize(raw any) (any, *domain.Error, *domain.ValidationError) {
	if isEmpty(raw) {
		if r.Configuration.Required {
			return nil, domain.NewError(domain.CodeFieldRequired, "%s is required", r.Slug), nil
		}
		return nil, nil, nil
	}

	value, err := r.descriptor.Validate(raw, r.Configuration)
	if err != nil {
		return nil, err, nil
	}

	if r.Group != nil {
		object, _ := value.(map[string]any)
		nested, errs := r.Group.validate(object, true)
		if errs.HasErrors() {
			return nil, nil, errs
		}
		value = nested
	}

	return r.descriptor.Serialize(value, r.Configuration), nil, nil
}

// Project returns the wire form of stored data. Only active writable fields
// are kept so values of trashed or removed fields never leak.
func (d Descriptor) Project(data map[string]any) map[string]any {
	result := make(map[string]any, len(d.Order))
	for _, slug := range d.Order {
		rule := d.BySlug[slug]
		if rule.Type.IsReadOnly() {
			continue
		}

		value := data[slug.String()]
		if rule.Group != nil {
			if object, ok := value.(map[string]any); ok {
				value = rule.Group.Project(object)
			}
		}
		result[slug.String()] = rule.descriptor.Serialize(value, rule.Configuration)
	}
	return result
}
