package dataprocessing

import (
	"anscli/internal/errors"
)

// Field is a canonical semantic field that source columns resolve to.
type Field string

const (
	FieldRegistryID     Field = "registry_id"
	FieldTaxID          Field = "tax_id"
	FieldCorporateName  Field = "corporate_name"
	FieldDescription    Field = "description"
	FieldOpeningBalance Field = "opening_balance"
	FieldClosingBalance Field = "closing_balance"
	FieldModality       Field = "modality"
	FieldState          Field = "state"
)

// Resolver maps raw column names to canonical fields through ordered
// alias lists. Resolution order is alias-list order, never column order,
// so it is deterministic and identical across every row of a file.
type Resolver struct {
	aliases map[Field][]string
}

// NewExpenseResolver returns the resolver for quarterly statement files.
// Alias orders reflect the column names observed across source vintages.
func NewExpenseResolver() *Resolver {
	return &Resolver{aliases: map[Field][]string{
		FieldRegistryID:     {"REGISTRO_OPERADORA", "REG_ANS", "CD_REGISTRO_ANS", "REGISTRO_ANS", "CD_REG_ANS"},
		FieldDescription:    {"DESCRICAO"},
		FieldOpeningBalance: {"VL_SALDO_INICIAL"},
		FieldClosingBalance: {"VL_SALDO_FINAL"},
	}}
}

// NewRegistryResolver returns the resolver for the operator registry.
func NewRegistryResolver() *Resolver {
	return &Resolver{aliases: map[Field][]string{
		FieldRegistryID:    {"REG_ANS", "REGISTRO_ANS", "CD_REGISTRO_ANS", "REGISTRO_OPERADORA"},
		FieldTaxID:         {"CNPJ", "CD_CNPJ"},
		FieldCorporateName: {"Razao_Social", "NM_RAZAO_SOCIAL"},
		FieldModality:      {"Modalidade", "DS_MODALIDADE"},
		FieldState:         {"UF", "SG_UF"},
	}}
}

// Resolve returns the first accepted alias present among columns. A
// required field with no matching alias is a fatal MissingColumnError
// carrying the available columns for diagnosis.
func (r *Resolver) Resolve(columns []string, field Field) (string, error) {
	available := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		available[c] = struct{}{}
	}
	for _, alias := range r.aliases[field] {
		if _, ok := available[alias]; ok {
			return alias, nil
		}
	}
	return "", errors.NewMissingColumnError(string(field), columns)
}

// ResolveAll resolves every field in required, failing on the first one
// with no matching column. The returned mapping is computed once per
// file and reused for all of that file's rows.
func (r *Resolver) ResolveAll(columns []string, required []Field) (map[Field]string, error) {
	resolved := make(map[Field]string, len(required))
	for _, field := range required {
		column, err := r.Resolve(columns, field)
		if err != nil {
			return nil, err
		}
		resolved[field] = column
	}
	return resolved, nil
}

// ResolveOptional resolves field to its column name, or "" when no alias
// matches. Optional fields never abort a file.
func (r *Resolver) ResolveOptional(columns []string, field Field) string {
	column, err := r.Resolve(columns, field)
	if err != nil {
		return ""
	}
	return column
}
