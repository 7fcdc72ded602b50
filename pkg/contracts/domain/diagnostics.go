package domain

// DiagnosticKind tags the variant of a DiagnosticEvent.
type DiagnosticKind string

const (
	DiagnosticInvalidIdentifier DiagnosticKind = "invalid_identifier"
	DiagnosticDuplicateName     DiagnosticKind = "duplicate_name"
	DiagnosticRegistryConflict  DiagnosticKind = "registry_conflict"
)

// DiagnosticEvent is one non-fatal data-quality finding. Events
// accumulate across the whole run and are flushed once at the end;
// every record excluded or flagged anywhere in the pipeline is traceable
// through exactly one of these.
type DiagnosticEvent struct {
	Kind DiagnosticKind `json:"kind"`

	// Invalid identifier: the identifier as it appeared in the source,
	// plus enough context to trace the row.
	InvalidIdentifier *InvalidIdentifierEvent `json:"invalid_identifier,omitempty"`

	// Duplicate corporate names observed for a single tax id.
	DuplicateName *DuplicateNameEvent `json:"duplicate_name,omitempty"`

	// Conflicting field values across registry entries sharing a tax id.
	RegistryConflict *RegistryConflictEvent `json:"registry_conflict,omitempty"`
}

// InvalidIdentifierEvent carries the original identifier and the row's
// registry context for audit.
type InvalidIdentifierEvent struct {
	Identifier    string `json:"identifier"`
	RegistryID    string `json:"registry_id"`
	CorporateName string `json:"corporate_name"`
}

// DuplicateNameEvent is one distinct pair of corporate names seen for
// the same tax id across input rows.
type DuplicateNameEvent struct {
	TaxID   string `json:"tax_id"`
	NameOne string `json:"name_one"`
	NameTwo string `json:"name_two"`
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"`
}

// RegistryConflictEvent is one (tax id, field) pair whose values differ
// across duplicate registry entries. Values are in first-seen order.
type RegistryConflictEvent struct {
	TaxID  string   `json:"tax_id"`
	Field  string   `json:"field"`
	Values []string `json:"values"`
}
