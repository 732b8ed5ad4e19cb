// Package fileparse turns uploaded spreadsheet and CSV files into loosely
// typed row records keyed by their original column headers. Header aliasing
// onto canonical lead fields happens upstream; this package only reads.
package fileparse

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind is the detected file format.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

// ErrUnsupportedKind rejects the whole import before any row is processed.
var ErrUnsupportedKind = errors.New("unsupported file type, use CSV/XLS/XLSX")

// Row is one spreadsheet row: raw header -> trimmed cell value.
type Row map[string]string

// DetectKind maps a file extension onto a parser kind.
func DetectKind(filename string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx", ".xls":
		return KindXLSX, nil
	default:
		return "", ErrUnsupportedKind
	}
}

// Parse reads the file at path with the parser for kind.
func Parse(path string, kind Kind) ([]Row, error) {
	switch kind {
	case KindCSV:
		return ReadCSVFile(path)
	case KindXLSX:
		return ReadXLSX(path)
	default:
		return nil, ErrUnsupportedKind
	}
}

// zipRow pairs headers with cells, ignoring trailing cells without a header
// and dropping rows that are entirely empty.
func zipRow(headers, cells []string) (Row, bool) {
	row := make(Row, len(headers))
	empty := true
	for i, h := range headers {
		if h == "" {
			continue
		}
		var v string
		if i < len(cells) {
			v = strings.TrimSpace(cells[i])
		}
		row[h] = v
		if v != "" {
			empty = false
		}
	}
	return row, !empty
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
