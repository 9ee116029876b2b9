package transform

import "github.com/invoicery-dev/invoicery/internal/model"

// Resolve picks the value for one header field. The cell value wins when
// non-empty (file data beats operator input); otherwise the override fills
// the gap. An empty result means the field is omitted from the payload,
// never emitted as "" or null. Keeping this in one function is what makes
// the omission rule hold everywhere it applies.
func Resolve(rowValue, override string) string {
	if rowValue != "" {
		return rowValue
	}
	return override
}

// resolver produces field values for a payload header. The normal form reads
// the group's first row with override fallback; the test-mode form sources
// every field purely from overrides.
type resolver func(field string) string

func rowResolver(row *model.Row, overrides map[string]string) resolver {
	return func(field string) string {
		return Resolve(row.Value(field), overrides[field])
	}
}

func overrideResolver(overrides map[string]string) resolver {
	return func(field string) string {
		return overrides[field]
	}
}
