// Package runlog records submission outcomes to a CSV under logs/. The log
// is an audit trail for the operator; nothing reads it back to gate
// behavior, so re-running a command never depends on prior runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the submission log.
type Entry struct {
	Timestamp  time.Time
	Command    string // "send" or "lookup"
	ExternalID string // invoice external id, or lookup row id
	Status     int    // HTTP status, 0 for transport errors
	Detail     string
}

// Header is the CSV header for submission-log.csv.
const Header = "timestamp,command,external_id,status,detail"

const (
	numFields     = 5
	logDir        = "logs"
	logFile       = "logs/submission-log.csv"
	colTimestamp  = 0
	colCommand    = 1
	colExternalID = 2
	colStatus     = 3
	colDetail     = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colCommand] = e.Command
	row[colExternalID] = e.ExternalID
	row[colStatus] = strconv.Itoa(e.Status)
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	status, err := strconv.Atoi(record[colStatus])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing status %q: %w", record[colStatus], err)
	}

	return Entry{
		Timestamp:  ts,
		Command:    record[colCommand],
		ExternalID: record[colExternalID],
		Status:     status,
		Detail:     record[colDetail],
	}, nil
}

// Append writes entries to <root>/logs/submission-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening submission log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/submission-log.csv. Returns nil
// if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening submission log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading submission log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
