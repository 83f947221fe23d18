// Package dataset holds the untyped tabular representation the loader
// hands to the pipeline: a header row plus string records, as read from
// CSV. Typing and cleaning happen later, in the pipeline normalizer.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Table is one loaded tabular dataset.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string

	index map[string]int
}

// SchemaError reports required columns missing from an input dataset.
// It is the only fatal error class: nothing is computed past it.
type SchemaError struct {
	Dataset string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %q is missing required column(s): %s",
		e.Dataset, strings.Join(e.Missing, ", "))
}

// ReadCSV parses a CSV stream into a Table. The first record is the
// header; column lookup is case-insensitive on trimmed names.
func ReadCSV(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q is empty", name)
	}
	t := &Table{
		Name:    name,
		Headers: records[0],
		Rows:    records[1:],
		index:   make(map[string]int, len(records[0])),
	}
	for i, h := range t.Headers {
		t.index[normHeader(h)] = i
	}
	return t, nil
}

// Require validates that every named column exists, returning a
// *SchemaError listing all absences at once.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[normHeader(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{Dataset: t.Name, Missing: missing}
	}
	return nil
}

// Get returns the named column of a row, "" when the row is ragged or
// the column unknown.
func (t *Table) Get(row []string, col string) string {
	i, ok := t.index[normHeader(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normHeader(h string) string { return strings.ToLower(strings.TrimSpace(h)) }
