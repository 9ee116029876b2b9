package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxMode selects how the invoice-level tax amount is derived. It is chosen
// once per run and applies uniformly to every group in that run.
type TaxMode string

const (
	// TaxModeHeader reads the tax once from the designated header column of
	// the group's first row, with override fallback.
	TaxModeHeader TaxMode = "header"

	// TaxModeSumOfLines sums the designated per-line tax column across every
	// row in the group.
	TaxModeSumOfLines TaxMode = "sum-of-lines"
)

// ParseTaxMode converts a config/flag string to a TaxMode.
func ParseTaxMode(s string) (TaxMode, error) {
	switch TaxMode(s) {
	case TaxModeHeader, TaxModeSumOfLines:
		return TaxMode(s), nil
	}
	return "", fmt.Errorf("unknown tax mode %q (want %q or %q)", s, TaxModeHeader, TaxModeSumOfLines)
}

// AmountFormat controls how computed sums are re-serialized. The scale of
// uploaded files varies by operator, so this is configuration, not a
// hard-coded convention. Places <= 0 keeps the exact decimal result with
// trailing zeros trimmed; 2 gives fixed cents.
type AmountFormat struct {
	Places int32
}

// Format renders a decimal under this convention.
func (f AmountFormat) Format(d decimal.Decimal) string {
	if f.Places <= 0 {
		return d.String()
	}
	return d.StringFixed(f.Places)
}

// headerTax derives the tax value in header mode.
func headerTax(g Group, column string, overrides map[string]string) string {
	return Resolve(g.Rows[0].Value(column), overrides[column])
}

// sumLineTax derives the tax value in sum-of-lines mode. Blank cells
// contribute zero silently; non-numeric cells contribute zero with a
// warning. Straightforward decimal addition, no currency rounding.
func sumLineTax(g Group, column string, amounts AmountFormat) (string, []Warning) {
	sum := decimal.Zero
	var warns []Warning

	for i, row := range g.Rows {
		cell := row.Value(column)
		if cell == "" {
			continue
		}
		d, err := decimal.NewFromString(cell)
		if err != nil {
			warns = append(warns, Warning{
				Kind:   WarnBadAmount,
				Row:    g.RowNums[i],
				Field:  column,
				Detail: fmt.Sprintf("%q is not a number, counted as zero", cell),
			})
			continue
		}
		sum = sum.Add(d)
	}

	return amounts.Format(sum), warns
}
