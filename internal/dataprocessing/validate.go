package dataprocessing

import (
	"anscli/internal/cnpj"
	"anscli/pkg/contracts/domain"
)

// SplitByIdentifier checks every row's tax identifier against the
// checksum and splits valid from invalid rows. Valid rows come back with
// the identifier normalized to its 14-digit form; invalid rows are
// excluded from consolidation and reported as diagnostics carrying the
// original identifier and the row's registry context.
func SplitByIdentifier(rows []domain.EnrichedRecord) ([]domain.EnrichedRecord, []domain.InvalidIdentifierEvent) {
	valid := make([]domain.EnrichedRecord, 0, len(rows))
	var invalid []domain.InvalidIdentifierEvent

	for _, row := range rows {
		outcome := cnpj.Validate(row.TaxID)
		if !outcome.Valid {
			invalid = append(invalid, domain.InvalidIdentifierEvent{
				Identifier:    row.TaxID,
				RegistryID:    row.RegistryID,
				CorporateName: row.CorporateName,
			})
			continue
		}
		row.TaxID = outcome.NormalizedTaxID
		valid = append(valid, row)
	}

	return valid, invalid
}
