package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"anscli/internal/errors"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadFile_CSV(t *testing.T) {
	// "SAÚDE" encoded in latin-1: 0xDA is Ú.
	content := []byte("REG_ANS;DESCRICAO;VL_SALDO_FINAL\n123;SA\xdaDE LTDA;100,50\n456;OUTRA;200,00\n")
	path := writeTemp(t, "1T2025.csv", content)

	table, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"REG_ANS", "DESCRICAO", "VL_SALDO_FINAL"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "SAÚDE LTDA", table.Rows[0]["DESCRICAO"])
	assert.Equal(t, "100,50", table.Rows[0]["VL_SALDO_FINAL"])
	assert.Equal(t, "456", table.Rows[1]["REG_ANS"])
}

func TestReadFile_TXT(t *testing.T) {
	content := []byte("REG_ANS\tVL_SALDO_FINAL\n789\t300,25\n")
	path := writeTemp(t, "2T2025.txt", content)

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "789", table.Rows[0]["REG_ANS"])
	assert.Equal(t, "300,25", table.Rows[0]["VL_SALDO_FINAL"])
}

func TestReadFile_CSV_SkipsBlankAndPadsShortRows(t *testing.T) {
	content := []byte("A;B;C\n1;2\n;;\n4;5;6\n")
	path := writeTemp(t, "data.csv", content)

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0]["C"])
	assert.Equal(t, "6", table.Rows[1]["C"])
}

func TestReadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"REG_ANS", "DESCRICAO", "VL_SALDO_FINAL"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"321", "Provisões", "987,65"}))

	path := filepath.Join(t.TempDir(), "3T2025.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"REG_ANS", "DESCRICAO", "VL_SALDO_FINAL"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "321", table.Rows[0]["REG_ANS"])
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "data.parquet", []byte("x"))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeParsing, errors.Type(err))
}

func TestReadFile_EmptyCSV(t *testing.T) {
	path := writeTemp(t, "empty.csv", nil)

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}
