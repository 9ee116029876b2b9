// Package rowsource parses uploaded invoice files into rows of literal
// strings. Every cell arrives as text with its formatting preserved: a value
// that displayed as 00001 in the source stays the string "00001".
package rowsource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/invoicery-dev/invoicery/internal/model"
)

// Reader parses one uploaded file into rows.
type Reader interface {
	Read(r io.Reader) ([]*model.Row, error)
	Format() string
}

// Registry holds readers keyed by format (file extension).
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}

// ReadFile parses path with the reader matching its extension.
func (r *Registry) ReadFile(path string) ([]*model.Row, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	rd := r.Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("unsupported file type %q (want csv or xlsx)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// rowsFromRecords converts a raw record grid (header first) into rows. The
// header defines the ordered column set. Short records are tolerated:
// trailing cells count as absent, not empty. Records made only of empty
// cells are skipped; spreadsheet exports love to append them.
func rowsFromRecords(records [][]string) []*model.Row {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = normalizeCell(name)
	}

	var rows []*model.Row
	for _, rec := range records[1:] {
		row := model.NewRow()
		blank := true
		for i, name := range header {
			if name == "" || i >= len(rec) {
				continue
			}
			cell := normalizeCell(rec[i])
			if cell != "" {
				blank = false
			}
			row.Set(name, cell)
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// normalizeCell trims a cell and strips Excel's text-marker apostrophe when
// the remainder is all digits ("'00001" -> "00001"). A word like "'note"
// keeps its quote.
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "'"); ok && rest != "" && allDigits(rest) {
		return rest
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
