package domain

import (
	"github.com/shopspring/decimal"
)

// ExpenseRecord is a canonical quarterly expense row after schema
// resolution and numeric parsing. Monetary values are rounded to two
// decimal places at this boundary and stay that way downstream.
type ExpenseRecord struct {
	RegistryID string          `json:"registry_id" validate:"required"`
	Expense    decimal.Decimal `json:"expense"`
	Quarter    int             `json:"quarter" validate:"min=1,max=4"`
	Year       int             `json:"year" validate:"min=2000"`
}

// EnrichedRecord is an expense row after correlation with the operator
// registry. TaxID and CorporateName come from the stage-1 join by
// registry id; Modality, State and DedupRegistryID come from the stage-2
// join by tax id against the deduplicated registry.
type EnrichedRecord struct {
	RegistryID    string          `json:"registry_id"`
	TaxID         string          `json:"tax_id"`
	CorporateName string          `json:"corporate_name"`
	Expense       decimal.Decimal `json:"expense"`
	Quarter       int             `json:"quarter"`
	Year          int             `json:"year"`

	// Stage-2 fields. RegistryMatched is false when the deduplicated
	// registry has no entry for TaxID; the row still survives the join.
	Modality        string `json:"modality,omitempty"`
	State           string `json:"state,omitempty"`
	DedupRegistryID string `json:"dedup_registry_id,omitempty"`
	RegistryMatched bool   `json:"registry_matched"`
}

// ConsolidatedRecord is one aggregated output row per
// (tax id, corporate name, quarter, year) group.
type ConsolidatedRecord struct {
	TaxID          string          `json:"tax_id" validate:"required,len=14,numeric"`
	CorporateName  string          `json:"corporate_name"`
	Quarter        int             `json:"quarter"`
	Year           int             `json:"year"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	AverageExpense decimal.Decimal `json:"average_expense"`
	RegistryID     string          `json:"registry_id"`
	Modality       string          `json:"modality"`
	State          string          `json:"state"`
}

// EntityStats is the per-entity expense dispersion report across that
// entity's consolidated groups. No acceptability threshold is applied;
// review of large deviations is a manual decision.
type EntityStats struct {
	TaxID         string          `json:"tax_id"`
	CorporateName string          `json:"corporate_name"`
	Groups        int             `json:"groups"`
	MeanExpense   decimal.Decimal `json:"mean_expense"`
	StdDeviation  decimal.Decimal `json:"std_deviation"`
}
