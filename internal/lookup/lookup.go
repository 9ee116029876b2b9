// Package lookup builds per-row payloads for lookup-table inserts. Unlike
// invoices there is no grouping: one source row becomes one flat request.
package lookup

import (
	"strings"

	"github.com/invoicery-dev/invoicery/internal/model"
)

// RecommendedColumns are the columns the lookup endpoints expect. Extra
// columns are allowed and pass through as string fields.
var RecommendedColumns = []string{"externalId", "key", "description"}

// SlugifyType normalizes an operator-supplied table type: lowercase, spaces
// to underscores, then only [a-z0-9_] survives. Returns "" when nothing
// survives.
func SlugifyType(name string) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MissingColumns returns which recommended columns the source lacks
// entirely. Rows are uniform after ingestion, so the first row decides.
func MissingColumns(rows []*model.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	var missing []string
	for _, col := range RecommendedColumns {
		if _, ok := rows[0].Get(col); !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// BuildRows converts rows to flat string payloads, dropping empty cells.
// Rows with no non-empty cell are skipped entirely.
func BuildRows(rows []*model.Row) []map[string]string {
	var out []map[string]string
	for _, row := range rows {
		payload := make(map[string]string)
		for _, col := range row.Columns() {
			if row.Has(col) {
				payload[col] = row.Value(col)
			}
		}
		if len(payload) == 0 {
			continue
		}
		out = append(out, payload)
	}
	return out
}
