package validation

import "strings"

// Violations maps field name to a short machine-readable reason. Insertion
// order is not tracked; callers that need "first missing field" semantics
// should validate fields in order and use FirstOf with the same order.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// FirstOf returns the first violated field from the given ordered list,
// for flows that surface a single user-facing message.
func (v Violations) FirstOf(fields ...string) (string, string, bool) {
	for _, f := range fields {
		if reason, ok := v[f]; ok {
			return f, reason, true
		}
	}
	return "", "", false
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func IntRange(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf rejects values outside the allowed set. Empty values are left to
// Required so the two reasons stay distinct.
func OneOf(field, value string, allowed []string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}
