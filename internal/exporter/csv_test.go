package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anscli/internal/config"
)

func testWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCSVWriter(&config.Paths{OutputDir: dir}), dir
}

func TestWriteCSV_DefaultsToSemicolonAndBOM(t *testing.T) {
	w, dir := testWriter(t)

	err := w.WriteSimpleCSV("out.csv", []string{"CNPJ", "ValorDespesas"}, [][]string{
		{"11444777000161", "300,00"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)

	require.True(t, len(data) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "CNPJ;ValorDespesas\n11444777000161;300,00\n", string(data[3:]))
}

func TestWriteCSV_CustomSeparatorNoBOM(t *testing.T) {
	w, dir := testWriter(t)

	err := w.WriteCSV("plain.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		Separator: ',',
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "plain.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestWriteCSV_QuotesFieldsWithSeparator(t *testing.T) {
	w, dir := testWriter(t)

	err := w.WriteCSV("quoted.csv", WriteOptions{
		Headers: []string{"RazaoSocial"},
		Records: [][]string{{"Alfa; Beta"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "quoted.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Alfa; Beta"`)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"two decimals kept", "759558.40", "759558,40"},
		{"padded to two decimals", "100", "100,00"},
		{"negative", "-1.5", "-1,50"},
		{"zero", "0", "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, formatMoney(d))
		})
	}
}
