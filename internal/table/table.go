// Package table holds the in-memory form of an output dataset and the
// keyed merge that folds a freshly fetched batch into what is already stored.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a header plus string rows. A cell of "" is a null value.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table from a header and rows aligned with it.
func New(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Where returns the rows whose column equals value, under the same header.
// An unknown column matches nothing.
func (t *Table) Where(column, value string) *Table {
	out := &Table{Columns: t.Columns}
	idx := t.Index(column)
	if idx < 0 {
		return out
	}
	for _, row := range t.Rows {
		if idx < len(row) && row[idx] == value {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Records returns the rows as column-name maps. Empty cells become nil so
// they serialize as JSON null.
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(row) && row[i] != "" {
				rec[c] = row[i]
			} else {
				rec[c] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}

// Read parses CSV with a header line.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: missing header")
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// Write serializes the table as CSV with a header line.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ReadFile loads a CSV table. A missing file yields an error matching
// os.ErrNotExist.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteFile stores the table as CSV via WriteAtomic.
func (t *Table) WriteFile(path string) error {
	return WriteAtomic(path, t.Write)
}

// WriteAtomic creates path from what write produces. Output goes to a
// temporary sibling that is renamed into place, so readers never see a
// partial file and a failed write leaves the previous file intact.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ErrMissingKey is returned by Merge when a key column is absent.
var ErrMissingKey = errors.New("key column missing")

// Merge folds fresh into existing, deduplicating on keys.
//
// Rows are considered existing-first then fresh in order, and a later row
// with the same key replaces an earlier one. The surviving row keeps the
// position where its key first appeared, so re-running over the same dates
// never reorders a stored table. The header is existing's columns followed
// by any columns only fresh has; cells a row lacks are empty.
//
// existing may be nil, in which case the result is fresh deduplicated
// against itself.
func Merge(existing, fresh *Table, keys []string) (*Table, error) {
	var columns []string
	if existing != nil {
		columns = append(columns, existing.Columns...)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	for _, c := range fresh.Columns {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	merged := &Table{Columns: columns}
	keyIdx := make([]int, len(keys))
	for i, k := range keys {
		if keyIdx[i] = merged.Index(k); keyIdx[i] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, k)
		}
	}

	position := make(map[string]int)
	add := func(src *Table) {
		proj := projection(src.Columns, columns)
		for _, row := range src.Rows {
			out := make([]string, len(columns))
			for from, to := range proj {
				if from < len(row) {
					out[to] = row[from]
				}
			}
			key := rowKey(out, keyIdx)
			if pos, ok := position[key]; ok {
				merged.Rows[pos] = out
				continue
			}
			position[key] = len(merged.Rows)
			merged.Rows = append(merged.Rows, out)
		}
	}

	if existing != nil {
		add(existing)
	}
	add(fresh)
	return merged, nil
}

// projection maps each source column position to its target position.
func projection(from, to []string) []int {
	idx := make(map[string]int, len(to))
	for i, c := range to {
		idx[c] = i
	}
	out := make([]int, len(from))
	for i, c := range from {
		out[i] = idx[c]
	}
	return out
}

func rowKey(row []string, keyIdx []int) string {
	parts := make([]string, len(keyIdx))
	for i, k := range keyIdx {
		parts[i] = row[k]
	}
	return strings.Join(parts, "\x1f")
}
