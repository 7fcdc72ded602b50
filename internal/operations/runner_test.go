package operations

import (
	"archive/zip"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anscli/internal/config"
	"anscli/internal/shared/testutil"
)

const registryCSV = "REG_ANS;CNPJ;Razao_Social;Modalidade;UF\n" +
	"1001;11444777000161;Operadora Alfa;Medicina de Grupo;SP\n" +
	"1003;11444777000161;Operadora Alfa;Medicina de Grupo;RJ\n" +
	"1002;00000000000000;Operadora Zero;Cooperativa;MG\n"

const statementCSV = "REG_ANS;DESCRICAO;VL_SALDO_INICIAL;VL_SALDO_FINAL\n" +
	"1001;Despesas Administrativas;0,00;100,00\n" +
	"1001;Outras Despesas;50,00;250,00\n" +
	"1001;Despesas com Eventos / Sinistros;0,00;999,00\n" +
	"1002;Despesas Administrativas;0,00;50,00\n" +
	"9999;Despesas Administrativas;0,00;10,00\n"

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Relatorio_cadop.csv"), []byte(registryCSV), 0644))

	out, err := os.Create(filepath.Join(dir, "1T2025.zip"))
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create("1T2025.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(statementCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Source: config.SourceConfig{
			Quarters:    4,
			HTTPTimeout: 5 * time.Second,
		},
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			BaseName: "consolidadas",
		},
	}
}

func TestRunner_OfflineRun(t *testing.T) {
	inDir := writeFixtures(t)
	cfg := testConfig(t)
	logger, logs := testutil.NewTestLogger(t)

	result, err := NewRunner(cfg, logger).Run(context.Background(), inDir)
	require.NoError(t, err)

	// Only operator 1001 survives: 1002 fails the identifier checksum,
	// 9999 has no registry entry, and the claims row is excluded.
	assert.Equal(t, 1, result.Consolidated)
	assert.Equal(t, 1, result.Summary.FilesCompleted)
	assert.Equal(t, 0, result.Summary.FilesAborted)
	assert.Equal(t, 1, result.Summary.InvalidIdentifiers)
	assert.Equal(t, 1, result.Summary.OrphansDropped)
	assert.Equal(t, 1, result.Summary.ClaimsExcluded)
	assert.Equal(t, 0, result.Summary.NumericFailures)
	// The duplicated tax id disagrees on registry id and state.
	assert.Equal(t, 2, result.Summary.RegistryConflicts)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "consolidadas.csv"))
	require.NoError(t, err)
	want := "CNPJ;RazaoSocial;Trimestre;Ano;ValorDespesas;MediaDespesas;REG_ANS;Modalidade;UF\n" +
		"11444777000161;Operadora Alfa;1;2025;300,00;150,00;1001;Medicina de Grupo;SP\n"
	assert.Equal(t, want, string(data[3:]))

	conflicts, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "consolidadas_conflitos_cadastrais.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(conflicts), "11444777000161;state;SP | RJ")

	invalid, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "consolidadas_cnpjs_invalidos.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(invalid), "00000000000000;1002;Operadora Zero")

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "run complete")
	assert.Equal(t, int64(1), logs.Attr("run complete", "consolidated_rows"))
}

func TestRunner_BadArchiveIsScoped(t *testing.T) {
	inDir := writeFixtures(t)
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "2T2025.zip"), []byte("not a zip"), 0644))

	cfg := testConfig(t)
	result, err := NewRunner(cfg, nil).Run(context.Background(), inDir)
	require.NoError(t, err)

	// The corrupt archive aborts alone; the good quarter still lands.
	assert.Equal(t, 1, result.Consolidated)
	assert.Equal(t, 1, result.Summary.FilesCompleted)
	assert.Equal(t, 1, result.Summary.FilesAborted)
}

func TestRunner_MissingRegistryFails(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewRunner(cfg, nil).Run(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestRunner_NoArchivesFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Relatorio_cadop.csv"), []byte(registryCSV), 0644))

	cfg := testConfig(t)
	_, err := NewRunner(cfg, nil).Run(context.Background(), dir)
	require.Error(t, err)
}
