package rowsource

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/invoicery-dev/invoicery/internal/model"
)

// CSVReader parses comma-separated exports. The header row defines the
// ordered column set; data cells are kept as literal strings.
type CSVReader struct{}

// Format returns the reader name.
func (p *CSVReader) Format() string { return "csv" }

// Read parses the CSV.
func (p *CSVReader) Read(r io.Reader) ([]*model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rowsFromRecords(records), nil
}
