package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tommv/lbman/pkg/api"
)

// Rule is the declarative validation of one payload field. Zero value means
// "anything goes". All checks that apply are reported, not just the first.
type Rule struct {
	Required bool
	Min      *int
	Max      *int
	MinLen   *int
	MaxLen   *int
	Enum     []string
	Pattern  string
}

// Schema validates a flat payload. Field names double as the error keys the
// caller distributes into per-item slots, so synthetic names like
// "nodes_0_address" are first-class here.
type Schema struct {
	Fields map[string]Rule
}

// Validate checks payload against the schema and returns the flat error
// list. A nil result means the payload is valid. Validation is synchronous
// and performs no I/O.
func (s Schema) Validate(payload map[string]interface{}) []api.FieldError {
	var errs []api.FieldError

	// Deterministic order keeps messages stable for display and tests.
	for _, field := range sortedFields(s.Fields) {
		rule := s.Fields[field]
		value, present := payload[field]

		if !present || value == nil || value == "" {
			if rule.Required {
				errs = append(errs, api.FieldError{Field: field, Reason: "field is required"})
			}
			continue
		}

		switch v := value.(type) {
		case string:
			errs = append(errs, validateString(field, v, rule)...)
		case int:
			errs = append(errs, validateNumber(field, v, rule)...)
		case int64:
			errs = append(errs, validateNumber(field, int(v), rule)...)
		case float64:
			errs = append(errs, validateNumber(field, int(v), rule)...)
		default:
			errs = append(errs, api.FieldError{
				Field:  field,
				Reason: fmt.Sprintf("unexpected value of type %T", value),
			})
		}
	}

	return errs
}

func validateString(field, value string, rule Rule) []api.FieldError {
	var errs []api.FieldError

	if rule.MinLen != nil && len(value) < *rule.MinLen {
		errs = append(errs, api.FieldError{
			Field:  field,
			Reason: fmt.Sprintf("must be at least %d characters", *rule.MinLen),
		})
	}
	if rule.MaxLen != nil && len(value) > *rule.MaxLen {
		errs = append(errs, api.FieldError{
			Field:  field,
			Reason: fmt.Sprintf("must be at most %d characters", *rule.MaxLen),
		})
	}
	if rule.Pattern != "" {
		matched, err := regexp.MatchString(rule.Pattern, value)
		if err != nil || !matched {
			errs = append(errs, api.FieldError{
				Field:  field,
				Reason: "does not match the expected format",
			})
		}
	}
	if len(rule.Enum) > 0 && !contains(rule.Enum, value) {
		errs = append(errs, api.FieldError{
			Field:  field,
			Reason: fmt.Sprintf("must be one of: %s", strings.Join(rule.Enum, ", ")),
		})
	}

	return errs
}

func validateNumber(field string, value int, rule Rule) []api.FieldError {
	var errs []api.FieldError

	if rule.Min != nil && value < *rule.Min {
		errs = append(errs, api.FieldError{
			Field:  field,
			Reason: fmt.Sprintf("must be %d or more", *rule.Min),
		})
	}
	if rule.Max != nil && value > *rule.Max {
		errs = append(errs, api.FieldError{
			Field:  field,
			Reason: fmt.Sprintf("must be %d or less", *rule.Max),
		})
	}

	return errs
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func sortedFields(fields map[string]Rule) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intp(v int) *int { return &v }
