package archive

import "sort"

// Table holds the unioned rows of one recognized CSV across all supplied
// archives. Every cell is kept verbatim as a string; identifiers must never
// be numerically coerced.
type Table struct {
	// File is the canonical recognized file name.
	File string

	// Rows maps column name to cell value, one map per CSV record.
	Rows []map[string]string

	columns map[string]struct{}
}

func newTable(file string) *Table {
	return &Table{
		File:    file,
		columns: make(map[string]struct{}),
	}
}

// HasColumns reports whether the table carries every named column. Producers
// check their required-column subset before consuming a table; a table missing
// a producer's columns is treated as absent for that producer only.
func (t *Table) HasColumns(cols ...string) bool {
	for _, col := range cols {
		if _, ok := t.columns[col]; !ok {
			return false
		}
	}
	return true
}

// Columns returns the union of column names seen for this file, sorted.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.columns))
	for col := range t.columns {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// append adds records under the given header, unioning the column set.
func (t *Table) append(header []string, records [][]string) {
	for _, col := range header {
		if col == "" {
			continue
		}
		t.columns[col] = struct{}{}
	}

	for _, record := range records {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" || i >= len(record) {
				continue
			}
			row[col] = record[i]
		}
		t.Rows = append(t.Rows, row)
	}
}
