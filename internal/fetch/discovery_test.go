package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anscli/internal/errors"
)

const listingHTML = `<html><body><pre>
<a href="../">Parent Directory</a>
<a href="2023/">2023/</a>
<a href="2024/">2024/</a>
<a href="2025/">2025/</a>
<a href="readme.txt">readme.txt</a>
</pre></body></html>`

const yearHTML = `<html><body><pre>
<a href="../">Parent Directory</a>
<a href="1T2025.zip">1T2025.zip</a>
<a href="2T2025.zip">2T2025.zip</a>
<a href="notas.pdf">notas.pdf</a>
</pre></body></html>`

func TestExtractYears(t *testing.T) {
	years, err := ExtractYears(strings.NewReader(listingHTML))
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2025}, years)
}

func TestExtractYears_NoneFound(t *testing.T) {
	years, err := ExtractYears(strings.NewReader(`<html><body><a href="foo/">foo</a></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestExtractArchives(t *testing.T) {
	archives, err := ExtractArchives(strings.NewReader(yearHTML))
	require.NoError(t, err)
	assert.Equal(t, []string{"1T2025.zip", "2T2025.zip"}, archives)
}

func TestLatestArchives(t *testing.T) {
	names := []string{"1T2025.zip", "3T2025.zip", "2T2025.zip", "4T2025.zip"}

	assert.Equal(t, []string{"4T2025.zip", "3T2025.zip", "2T2025.zip"}, LatestArchives(names, 3))
	assert.Equal(t, []string{"4T2025.zip"}, LatestArchives(names, 1))
	// Asking for more than exist returns everything.
	assert.Len(t, LatestArchives(names, 10), 4)

	// Input slice stays untouched.
	assert.Equal(t, []string{"1T2025.zip", "3T2025.zip", "2T2025.zip", "4T2025.zip"}, names)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		quarter int
		year    int
		wantErr bool
	}{
		{"plain archive", "1T2025.zip", 1, 2025, false},
		{"fourth quarter", "4T2023.zip", 4, 2023, false},
		{"prefixed name", "demonstracoes_2T2024.zip", 2, 2024, false},
		{"no period", "Relatorio_cadop.csv", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quarter, year, err := ParsePeriod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrTypeParsing, errors.Type(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.quarter, quarter)
			assert.Equal(t, tt.year, year)
		})
	}
}
