package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"anscli/internal/report"
	"anscli/pkg/contracts/domain"
)

// ResultWriter writes the five result sets handed over by the pipeline
// core. File names derive from the configured base name, mirroring the
// published dataset naming.
type ResultWriter struct {
	writer   *CSVWriter
	baseName string
	logger   *slog.Logger
}

// NewResultWriter creates a result writer.
func NewResultWriter(writer *CSVWriter, baseName string, logger *slog.Logger) *ResultWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultWriter{writer: writer, baseName: baseName, logger: logger}
}

// WriteAll persists every result set and returns the first error hit.
func (rw *ResultWriter) WriteAll(
	consolidated []domain.ConsolidatedRecord,
	rep *report.Reporter,
	stats []domain.EntityStats,
) error {
	if err := rw.WriteConsolidated(consolidated); err != nil {
		return err
	}
	if err := rw.WriteInvalidIdentifiers(rep.InvalidIdentifiers()); err != nil {
		return err
	}
	if err := rw.WriteDuplicateNames(rep.DuplicateNames()); err != nil {
		return err
	}
	if err := rw.WriteRegistryConflicts(rep.RegistryConflicts()); err != nil {
		return err
	}
	return rw.WriteEntityStats(stats)
}

// WriteConsolidated writes the consolidated dataset: one row per
// (tax id, corporate name, quarter, year) with total and average.
func (rw *ResultWriter) WriteConsolidated(records []domain.ConsolidatedRecord) error {
	headers := []string{"CNPJ", "RazaoSocial", "Trimestre", "Ano", "ValorDespesas", "MediaDespesas", "REG_ANS", "Modalidade", "UF"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.TaxID,
			r.CorporateName,
			formatInt(r.Quarter),
			formatInt(r.Year),
			formatMoney(r.TotalExpense),
			formatMoney(r.AverageExpense),
			r.RegistryID,
			r.Modality,
			r.State,
		})
	}
	return rw.writer.WriteSimpleCSV(rw.baseName+".csv", headers, rows)
}

// WriteInvalidIdentifiers writes the rows excluded for failing the
// identifier checksum, with their original identifiers.
func (rw *ResultWriter) WriteInvalidIdentifiers(events []domain.InvalidIdentifierEvent) error {
	headers := []string{"CNPJ", "REG_ANS", "RazaoSocial"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.Identifier, e.RegistryID, e.CorporateName})
	}
	return rw.writer.WriteSimpleCSV(rw.baseName+"_cnpjs_invalidos.csv", headers, rows)
}

// WriteDuplicateNames writes the distinct corporate-name pairs observed
// per tax id.
func (rw *ResultWriter) WriteDuplicateNames(events []domain.DuplicateNameEvent) error {
	headers := []string{"CNPJ", "RazaoSocial1", "RazaoSocial2", "Trimestre", "Ano"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.TaxID, e.NameOne, e.NameTwo, formatInt(e.Quarter), formatInt(e.Year)})
	}
	return rw.writer.WriteSimpleCSV(rw.baseName+"_cnpjs_duplicados.csv", headers, rows)
}

// WriteRegistryConflicts writes the registry field conflicts, one row
// per (tax id, field) with every distinct observed value.
func (rw *ResultWriter) WriteRegistryConflicts(events []domain.RegistryConflictEvent) error {
	headers := []string{"CNPJ", "Campo", "Valores"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.TaxID, e.Field, strings.Join(e.Values, " | ")})
	}
	return rw.writer.WriteSimpleCSV(rw.baseName+"_conflitos_cadastrais.csv", headers, rows)
}

// WriteEntityStats writes the per-entity standard deviation report.
func (rw *ResultWriter) WriteEntityStats(stats []domain.EntityStats) error {
	headers := []string{"CNPJ", "RazaoSocial", "Grupos", "MediaDespesas", "DesvioPadrao"}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.TaxID,
			s.CorporateName,
			formatInt(s.Groups),
			formatMoney(s.MeanExpense),
			formatMoney(s.StdDeviation),
		})
	}
	if err := rw.writer.WriteSimpleCSV(rw.baseName+"_desvio_padrao.csv", headers, rows); err != nil {
		return fmt.Errorf("write entity statistics: %w", err)
	}
	return nil
}
