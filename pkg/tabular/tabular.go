// Package tabular provides the in-memory tabular sample model shared by the
// profiling and quality-assessment engines. A Table is a named, column-ordered
// view over a list of records; it performs no I/O and owns no storage.
package tabular

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Record is a single row keyed by column name.
type Record = map[string]any

// Table is an in-memory tabular sample. Columns fixes the iteration order so
// downstream output is deterministic regardless of map iteration.
type Table struct {
	Name    string
	Columns []string
	Records []Record
}

// ErrNoColumns is returned when a table is constructed with records but no
// column list to interpret them.
var ErrNoColumns = errors.New("tabular: records supplied without columns")

// New builds a Table and validates the top-level contract. Records with keys
// outside Columns are kept (the extra keys are simply never read); missing
// keys read as nil.
func New(name string, columns []string, records []Record) (*Table, error) {
	if len(columns) == 0 && len(records) > 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, errors.New("tabular: empty column name")
		}
		if seen[c] {
			return nil, fmt.Errorf("tabular: duplicate column %q", c)
		}
		seen[c] = true
	}
	return &Table{Name: name, Columns: columns, Records: records}, nil
}

// FromRecords builds a Table inferring the column list from the union of the
// record keys, sorted for determinism.
func FromRecords(name string, records []Record) *Table {
	keys := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			keys[k] = true
		}
	}
	columns := make([]string, 0, len(keys))
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return &Table{Name: name, Columns: columns, Records: records}
}

// NumRows returns the record count.
func (t *Table) NumRows() int { return len(t.Records) }

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.Columns) }

// IsEmpty reports whether the table has no cells at all.
func (t *Table) IsEmpty() bool { return len(t.Records) == 0 || len(t.Columns) == 0 }

// Column returns the values of one column in row order. Missing keys are nil.
func (t *Table) Column(name string) []any {
	out := make([]any, len(t.Records))
	for i, r := range t.Records {
		out[i] = r[name]
	}
	return out
}

// IsNull reports whether a cell carries no value at all (nil or NaN). Empty
// strings are data, not nulls; text-level blank handling is the caller's
// concern (see IsBlank).
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	if f, ok := v.(float32); ok {
		return math.IsNaN(float64(f))
	}
	return false
}

// IsBlank reports whether a cell is null, empty, or whitespace-only.
func IsBlank(v any) bool {
	if IsNull(v) {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// SampleInfo records how a table was reduced before profiling.
type SampleInfo struct {
	Sampled      bool  `json:"sampled"`
	OriginalRows int   `json:"original_rows"`
	SampledRows  int   `json:"sampled_rows"`
	Seed         int64 `json:"seed,omitempty"`
}

// Sample returns a row-capped copy of the table. Above the cap a seeded
// random subset of row indexes is drawn and re-sorted ascending, so the same
// table, cap and seed always produce the same sample in the same order.
// A rowCap of zero or below disables sampling.
func (t *Table) Sample(rowCap int, seed int64) (*Table, SampleInfo) {
	n := len(t.Records)
	if rowCap <= 0 || n <= rowCap {
		return t, SampleInfo{Sampled: false, OriginalRows: n, SampledRows: n}
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(n)[:rowCap]
	sort.Ints(idx)
	records := make([]Record, rowCap)
	for i, j := range idx {
		records[i] = t.Records[j]
	}
	sampled := &Table{Name: t.Name, Columns: t.Columns, Records: records}
	return sampled, SampleInfo{Sampled: true, OriginalRows: n, SampledRows: rowCap, Seed: seed}
}
