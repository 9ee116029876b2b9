package model

// Row is one record from an uploaded file: an ordered mapping of column
// name to raw cell text. Values are kept exactly as read so formatting such
// as leading zeros survives. An empty string is a real value, distinct from
// a column the file never had. Rows are not mutated after ingestion.
type Row struct {
	cols   []string
	values map[string]string
}

// NewRow creates an empty Row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set stores a cell value, remembering column order on first sight.
func (r *Row) Set(col, value string) {
	if _, ok := r.values[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.values[col] = value
}

// Get returns the cell value and whether the column exists in this row.
func (r *Row) Get(col string) (string, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Value returns the cell value, or "" when the column is absent.
func (r *Row) Value(col string) string {
	return r.values[col]
}

// Has reports whether the row carries a non-empty value for col.
func (r *Row) Has(col string) bool {
	return r.values[col] != ""
}

// Columns returns the column names in source order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.cols)
}
