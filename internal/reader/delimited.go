package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"anscli/internal/errors"
	"anscli/pkg/contracts/domain"
)

// readDelimited reads a latin-1 delimited file. ANS publishes both the
// registry and the quarterly statements in ISO 8859-1, so the bytes are
// decoded to UTF-8 before parsing.
func readDelimited(path string, comma rune) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	decoded := transform.NewReader(file, charmap.ISO8859_1.NewDecoder())

	r := csv.NewReader(decoded)
	r.Comma = comma
	r.FieldsPerRecord = -1 // source rows are occasionally ragged
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return &domain.Table{}, nil
	}
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read header of %s", path), err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("failed to read row of %s", path), err)
		}
		rows = append(rows, record)
	}

	return rowsToTable(path, header, rows), nil
}
