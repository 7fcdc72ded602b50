package dataprocessing

import (
	"log/slog"

	"anscli/internal/errors"
	"anscli/pkg/contracts/domain"
)

// Correlator joins expense records against the operator registry in two
// stages. It is stateless; both the raw registry index and the
// deduplicated snapshot are passed in and shared read-only across files.
type Correlator struct {
	logger *slog.Logger
}

// NewCorrelator creates a correlator.
func NewCorrelator(logger *slog.Logger) *Correlator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{logger: logger}
}

// JoinByRegistryID is the stage-1 inner join: expense rows are matched to
// registry entries by registry id, attaching tax id and corporate name.
// Rows with no matching registry id are orphan expense data; they are
// dropped intentionally and only their count is reported.
func (c *Correlator) JoinByRegistryID(records []domain.ExpenseRecord, byRegistryID map[string]domain.RegistryEntry) ([]domain.EnrichedRecord, int) {
	matched := make([]domain.EnrichedRecord, 0, len(records))
	dropped := 0

	for _, rec := range records {
		entry, ok := byRegistryID[rec.RegistryID]
		if !ok {
			dropped++
			continue
		}
		matched = append(matched, domain.EnrichedRecord{
			RegistryID:    rec.RegistryID,
			TaxID:         entry.TaxID,
			CorporateName: entry.CorporateName,
			Expense:       rec.Expense,
			Quarter:       rec.Quarter,
			Year:          rec.Year,
		})
	}

	if dropped > 0 {
		c.logger.Warn("dropped expense rows with no registry match",
			slog.Int("dropped", dropped))
	}

	return matched, dropped
}

// JoinByTaxID is the stage-2 left join: every stage-1 row is enriched
// with modality, registration id and state from the deduplicated
// registry. Unmatched rows survive with RegistryMatched=false. The
// output row count must equal the input row count; a mismatch is a fatal
// JoinIntegrityError for the current file.
func (c *Correlator) JoinByTaxID(rows []domain.EnrichedRecord, dedup map[string]domain.RegistryEntry) ([]domain.EnrichedRecord, error) {
	out := make([]domain.EnrichedRecord, 0, len(rows))

	for _, row := range rows {
		if entry, ok := dedup[row.TaxID]; ok {
			row.Modality = entry.Modality
			row.State = entry.State
			row.DedupRegistryID = entry.RegistryID
			row.RegistryMatched = true
		} else {
			row.RegistryMatched = false
		}
		out = append(out, row)
	}

	if len(out) != len(rows) {
		return nil, errors.NewJoinIntegrityError(len(rows), len(out))
	}

	return out, nil
}
