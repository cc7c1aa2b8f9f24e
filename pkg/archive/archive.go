// Package archive extracts recognized Oracle Fusion setup-export CSVs from
// zip archives. Each archive may contain any subset of the recognized files;
// the same file found across several archives is unioned row-wise, since a
// single export is often split over multiple downloads.
//
// Absent files are not errors. All cells are read as strings so ledger and
// legal entity identifiers survive without numeric coercion.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ledgerscope/ledgermap/pkg/errors"
	"github.com/ledgerscope/ledgermap/pkg/logging"
)

// Set is the union of recognized tables extracted from a run's archives.
type Set struct {
	tables map[string]*Table
}

// Extract opens each blob as a zip archive and collects every recognized CSV.
// A blob that is not a valid zip archive is an error; a recognized entry that
// fails CSV parsing is an error; a missing file is simply absent from the Set.
func Extract(ctx context.Context, blobs ...[]byte) (*Set, error) {
	logger := logging.FromContext(ctx)

	set := &Set{tables: make(map[string]*Table)}

	for i, blob := range blobs {
		label := fmt.Sprintf("archive %d", i+1)

		reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
		if err != nil {
			return nil, errors.WrapParse("zip", label, err)
		}

		for _, entry := range reader.File {
			name, ok := Recognize(entry.Name)
			if !ok || entry.FileInfo().IsDir() {
				continue
			}
			// macOS zips duplicate entries under __MACOSX
			if strings.Contains(entry.Name, "__MACOSX") {
				continue
			}

			header, records, err := readCSV(entry)
			if err != nil {
				return nil, errors.WrapParse("csv", name, err)
			}

			table, exists := set.tables[name]
			if !exists {
				table = newTable(name)
				set.tables[name] = table
			}
			table.append(header, records)

			logger.Debug().
				Str("file", name).
				Str("entry", entry.Name).
				Int("rows", len(records)).
				Msg("Extracted table")
		}
	}

	return set, nil
}

// Table returns the unioned table for a recognized file name.
func (s *Set) Table(file string) (*Table, bool) {
	table, ok := s.tables[file]
	return table, ok
}

// TableSummary describes one recognized file's presence in the extracted set.
type TableSummary struct {
	File    string   `json:"file"`
	Present bool     `json:"present"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns,omitempty"`
}

// Summary reports presence, row counts and columns for every recognized file,
// in the fixed scan order.
func (s *Set) Summary() []TableSummary {
	summaries := make([]TableSummary, 0, len(Files()))
	for _, file := range Files() {
		summary := TableSummary{File: file}
		if table, ok := s.tables[file]; ok {
			summary.Present = true
			summary.Rows = table.Len()
			summary.Columns = table.Columns()
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// readCSV parses one zip entry into a header and records. Oracle exports
// frequently carry a UTF-8 byte order mark, so the bytes pass through a BOM
// override transform first. Ragged records are tolerated; short rows leave
// their trailing columns unset.
func readCSV(entry *zip.File) ([]string, [][]string, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only stream

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(rc, decoder))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}

	return header, records, nil
}
