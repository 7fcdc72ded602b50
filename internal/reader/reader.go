// Package reader turns quarterly source files into ordered raw row
// sequences. Three formats occur in the wild: ';'-separated latin-1 CSV,
// tab-separated latin-1 TXT and XLSX workbooks.
package reader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"anscli/internal/errors"
	"anscli/pkg/contracts/domain"
)

// ReadFile dispatches on the file extension and returns the table with
// its header in source order.
func ReadFile(path string) (*domain.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readDelimited(path, ';')
	case ".txt":
		return readDelimited(path, '\t')
	case ".xlsx":
		return readWorkbook(path)
	default:
		return nil, errors.NewParsingError(
			fmt.Sprintf("unsupported file format: %s", filepath.Base(path)), nil)
	}
}

// rowsToTable converts header + cell rows into RawRow maps. Rows with no
// non-blank cell are skipped; short rows are padded so every column has
// an entry.
func rowsToTable(path string, header []string, rows [][]string) *domain.Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	table := &domain.Table{Columns: columns, Rows: make([]domain.RawRow, 0, len(rows))}
	for _, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		row := make(domain.RawRow, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = strings.TrimSpace(cells[i])
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Debug("read source table",
		slog.String("file", filepath.Base(path)),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)))

	return table
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
