package dataprocessing

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"anscli/pkg/contracts/domain"
)

// claimsDescription marks claim/loss-event account rows, which are not
// administrative expenses and are excluded from consolidation.
const claimsDescription = "Despesas com Eventos / Sinistros"

// ParseStats counts the non-fatal conditions hit while parsing one file.
type ParseStats struct {
	NumericFailures int // rows excluded for unparseable monetary values
	ClaimsExcluded  int // rows excluded by account description
}

// Parser converts raw statement rows into canonical expense records.
type Parser struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewParser creates a parser using the expense schema resolver.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{resolver: NewExpenseResolver(), logger: logger}
}

// Parse resolves the table's schema and converts its rows. The expense of
// a row is closing balance minus opening balance, rounded to two decimals
// at this boundary. Rows whose balances cannot be parsed are excluded
// from sums and counted; a missing required column is fatal for the file.
func (p *Parser) Parse(table *domain.Table, quarter, year int) ([]domain.ExpenseRecord, ParseStats, error) {
	required := []Field{FieldRegistryID, FieldDescription, FieldOpeningBalance, FieldClosingBalance}
	resolved, err := p.resolver.ResolveAll(table.Columns, required)
	if err != nil {
		return nil, ParseStats{}, err
	}

	var stats ParseStats
	records := make([]domain.ExpenseRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		if strings.TrimSpace(row[resolved[FieldDescription]]) == claimsDescription {
			stats.ClaimsExcluded++
			continue
		}

		// A blank registry id is kept: the registry never carries a
		// blank id, so the stage-1 join drops the row as an orphan and
		// it shows up in the orphan count instead of vanishing.
		registryID := strings.TrimSpace(row[resolved[FieldRegistryID]])

		opening, okOpen := parseMoney(row[resolved[FieldOpeningBalance]])
		closing, okClose := parseMoney(row[resolved[FieldClosingBalance]])
		if !okOpen || !okClose {
			stats.NumericFailures++
			continue
		}

		records = append(records, domain.ExpenseRecord{
			RegistryID: registryID,
			Expense:    closing.Sub(opening).Round(2),
			Quarter:    quarter,
			Year:       year,
		})
	}

	p.logger.Debug("parsed statement rows",
		slog.Int("records", len(records)),
		slog.Int("numeric_failures", stats.NumericFailures),
		slog.Int("claims_excluded", stats.ClaimsExcluded))

	return records, stats, nil
}

// parseMoney parses a monetary value that may use a decimal comma.
// Malformed values report ok=false instead of failing the file.
func parseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(2), true
}
