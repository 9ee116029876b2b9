package transform

import (
	"fmt"
	"iter"

	"github.com/invoicery-dev/invoicery/internal/model"
)

// Options configures one transformation run. It is read-only for the
// duration of the run; re-running Transform with the same rows and options
// re-derives the same sequence.
type Options struct {
	InvoiceColumn   string            // column that identifies the invoice (required)
	LineTaxColumn   string            // per-line tax column, sum-of-lines mode
	HeaderTaxColumn string            // header tax column, header mode
	TaxMode         TaxMode           // defaults to sum-of-lines
	Overrides       map[string]string // header field fallbacks, keyed by column name
	TestMode        bool              // ignore rows, build one payload from overrides
	Amounts         AmountFormat      // serialization of computed sums
	KeepRawDates    bool              // disable date layout normalization
}

// DefaultOptions returns the column names and policies of a stock run.
func DefaultOptions() Options {
	return Options{
		InvoiceColumn:   ColExternalID,
		LineTaxColumn:   ColTotalTaxAmount,
		HeaderTaxColumn: ColTotalTaxAmount,
		TaxMode:         TaxModeSumOfLines,
	}
}

// Result pairs one built payload with the source rows it consumed.
type Result struct {
	Payload  *model.InvoicePayload
	RowNums  []int // 1-based source data rows, in order; empty in test mode
	Warnings []Warning
}

// Transform runs the full pipeline: grouping, per-group field resolution and
// tax policy, payload building. Results are yielded lazily in
// group-first-seen order, so a payload can be previewed or sent before the
// remaining groups are built. The sequence is re-iterable and side-effect
// free; submitting anything is the caller's business.
//
// A ConfigError surfaces here, before any payload exists. Partial output is
// worse than no output.
func Transform(rows []*model.Row, opts Options) (iter.Seq[Result], error) {
	if opts.TaxMode == "" {
		opts.TaxMode = TaxModeSumOfLines
	}

	if opts.TestMode {
		return func(yield func(Result) bool) {
			yield(Result{Payload: buildTestPayload(opts)})
		}, nil
	}

	if opts.InvoiceColumn == "" {
		return nil, ConfigError{Field: "invoice column", Detail: "not set"}
	}
	if opts.TaxMode == TaxModeSumOfLines && opts.LineTaxColumn == "" {
		return nil, ConfigError{Field: "line tax column", Detail: "not set"}
	}
	if opts.TaxMode == TaxModeHeader && opts.HeaderTaxColumn == "" {
		return nil, ConfigError{Field: "header tax column", Detail: "not set"}
	}
	if len(rows) > 0 {
		if _, ok := rows[0].Get(opts.InvoiceColumn); !ok {
			return nil, ConfigError{
				Field:  "invoice column",
				Detail: fmt.Sprintf("%q not present in source", opts.InvoiceColumn),
			}
		}
	}

	groups := GroupRows(rows, opts.InvoiceColumn)
	return func(yield func(Result) bool) {
		for _, g := range groups {
			p, warns := buildPayload(g, opts)
			if !yield(Result{Payload: p, RowNums: g.RowNums, Warnings: warns}) {
				return
			}
		}
	}, nil
}
