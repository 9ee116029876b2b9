package transform

import "fmt"

// WarningKind classifies non-fatal findings from one transformation pass.
type WarningKind string

const (
	// WarnMissingField: a row lacks a field with no override available.
	// The field is omitted from the payload, not defaulted.
	WarnMissingField WarningKind = "missing-field"

	// WarnBadAmount: an amount cell is non-numeric. It contributes zero to
	// whatever sum it belongs to; the invoice is still built.
	WarnBadAmount WarningKind = "bad-amount"
)

// Warning describes one non-fatal issue found while building a payload.
// Warnings never abort an invoice.
type Warning struct {
	Kind   WarningKind
	Row    int // 1-based source row, 0 when not tied to a single row
	Field  string
	Detail string
}

func (w Warning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("%s: row %d: %s: %s", w.Kind, w.Row, w.Field, w.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Field, w.Detail)
}

// ConfigError reports a structural configuration problem. It surfaces before
// any grouping starts; no partial output follows it.
type ConfigError struct {
	Field  string
	Detail string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Detail)
}
