package transform

import (
	"github.com/invoicery-dev/invoicery/internal/model"
)

// Group is the ordered set of source rows sharing one invoice identifier,
// destined for one outbound payload.
type Group struct {
	Key     string
	Rows    []*model.Row
	RowNums []int // 1-based source data row numbers, parallel to Rows
}

// GroupRows partitions rows into invoice groups by the value of idColumn.
// Rows with equal non-empty identifiers land in the same group in source
// order; groups appear in the order their first row was seen. A row with an
// empty identifier is its own singleton group; malformed exports must not
// leak lines into a neighboring invoice.
func GroupRows(rows []*model.Row, idColumn string) []Group {
	var groups []Group
	index := make(map[string]int)

	for i, row := range rows {
		key := row.Value(idColumn)
		if key == "" {
			groups = append(groups, Group{
				Rows:    []*model.Row{row},
				RowNums: []int{i + 1},
			})
			continue
		}

		gi, seen := index[key]
		if !seen {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, Group{Key: key})
		}
		groups[gi].Rows = append(groups[gi].Rows, row)
		groups[gi].RowNums = append(groups[gi].RowNums, i+1)
	}

	return groups
}
