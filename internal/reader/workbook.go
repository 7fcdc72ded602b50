package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"anscli/internal/errors"
	"anscli/pkg/contracts/domain"
)

// readWorkbook reads the first sheet of an XLSX workbook. Quarterly
// statements shipped as workbooks carry the header in the first row.
func readWorkbook(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheets[0], path), err)
	}
	if len(rows) == 0 {
		return &domain.Table{}, nil
	}

	return rowsToTable(path, rows[0], rows[1:]), nil
}
