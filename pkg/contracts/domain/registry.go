package domain

// RegistryEntry is one row of the active-operator registry. Entries may
// collide on TaxID with differing non-key fields; RegistryID is the
// operator registration identifier used for the stage-1 expense join.
type RegistryEntry struct {
	TaxID         string `json:"tax_id" validate:"required"`
	CorporateName string `json:"corporate_name"`
	RegistryID    string `json:"registry_id" validate:"required"`
	Modality      string `json:"modality"`
	State         string `json:"state"`
}

// ValidationOutcome is the result of checksum validation of a tax
// identifier. NormalizedTaxID is the 14-digit numeric form and is only
// meaningful when Valid is true.
type ValidationOutcome struct {
	NormalizedTaxID string `json:"normalized_tax_id"`
	Valid           bool   `json:"valid"`
}
