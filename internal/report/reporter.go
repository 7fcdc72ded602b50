// Package report accumulates non-fatal diagnostic events across the
// whole run and materializes them per variant at the end. The reporter
// performs no I/O; persistence belongs to the exporter.
package report

import (
	"anscli/pkg/contracts/domain"
)

// Summary is the run-end count of conditions per kind, for the
// user-visible closing log line.
type Summary struct {
	InvalidIdentifiers int `json:"invalid_identifiers"`
	DuplicateNames     int `json:"duplicate_names"`
	RegistryConflicts  int `json:"registry_conflicts"`
	NumericFailures    int `json:"numeric_failures"`
	OrphansDropped     int `json:"orphans_dropped"`
	ClaimsExcluded     int `json:"claims_excluded"`
	FilesCompleted     int `json:"files_completed"`
	FilesAborted       int `json:"files_aborted"`
}

// Reporter is an append-only sink of diagnostic events. The pipeline is
// strictly sequential, so the reporter carries no synchronization.
type Reporter struct {
	events  []domain.DiagnosticEvent
	summary Summary
}

// New creates an empty reporter.
func New() *Reporter {
	return &Reporter{}
}

// RecordInvalidIdentifier appends one invalid-identifier event.
func (r *Reporter) RecordInvalidIdentifier(ev domain.InvalidIdentifierEvent) {
	e := ev
	r.events = append(r.events, domain.DiagnosticEvent{
		Kind:              domain.DiagnosticInvalidIdentifier,
		InvalidIdentifier: &e,
	})
	r.summary.InvalidIdentifiers++
}

// RecordDuplicateName appends one duplicate-corporate-name event.
func (r *Reporter) RecordDuplicateName(ev domain.DuplicateNameEvent) {
	e := ev
	r.events = append(r.events, domain.DiagnosticEvent{
		Kind:          domain.DiagnosticDuplicateName,
		DuplicateName: &e,
	})
	r.summary.DuplicateNames++
}

// RecordRegistryConflict appends one registry field conflict event.
func (r *Reporter) RecordRegistryConflict(ev domain.RegistryConflictEvent) {
	e := ev
	r.events = append(r.events, domain.DiagnosticEvent{
		Kind:             domain.DiagnosticRegistryConflict,
		RegistryConflict: &e,
	})
	r.summary.RegistryConflicts++
}

// CountNumericFailures adds to the unparseable-monetary-value counter.
func (r *Reporter) CountNumericFailures(n int) { r.summary.NumericFailures += n }

// CountOrphansDropped adds to the stage-1 orphan drop counter.
func (r *Reporter) CountOrphansDropped(n int) { r.summary.OrphansDropped += n }

// CountClaimsExcluded adds to the claims-account exclusion counter.
func (r *Reporter) CountClaimsExcluded(n int) { r.summary.ClaimsExcluded += n }

// CountFileCompleted notes one file reaching the terminal state.
func (r *Reporter) CountFileCompleted() { r.summary.FilesCompleted++ }

// CountFileAborted notes one file aborted by a fatal error.
func (r *Reporter) CountFileAborted() { r.summary.FilesAborted++ }

// Events returns a copy of every accumulated event in record order.
func (r *Reporter) Events() []domain.DiagnosticEvent {
	out := make([]domain.DiagnosticEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Summary returns the run-end counts per condition kind.
func (r *Reporter) Summary() Summary {
	return r.summary
}

// InvalidIdentifiers materializes the invalid-identifier collection in
// first-seen order, de-duplicated on (identifier, registry id,
// corporate name) since an operator only needs to appear once.
func (r *Reporter) InvalidIdentifiers() []domain.InvalidIdentifierEvent {
	type key struct{ id, reg, name string }
	seen := make(map[key]struct{})
	var out []domain.InvalidIdentifierEvent
	for _, e := range r.events {
		if e.Kind != domain.DiagnosticInvalidIdentifier || e.InvalidIdentifier == nil {
			continue
		}
		k := key{e.InvalidIdentifier.Identifier, e.InvalidIdentifier.RegistryID, e.InvalidIdentifier.CorporateName}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, *e.InvalidIdentifier)
	}
	return out
}

// DuplicateNames materializes the duplicate-name collection in record
// order.
func (r *Reporter) DuplicateNames() []domain.DuplicateNameEvent {
	var out []domain.DuplicateNameEvent
	for _, e := range r.events {
		if e.Kind == domain.DiagnosticDuplicateName && e.DuplicateName != nil {
			out = append(out, *e.DuplicateName)
		}
	}
	return out
}

// RegistryConflicts materializes the registry-conflict collection in
// record order.
func (r *Reporter) RegistryConflicts() []domain.RegistryConflictEvent {
	var out []domain.RegistryConflictEvent
	for _, e := range r.events {
		if e.Kind == domain.DiagnosticRegistryConflict && e.RegistryConflict != nil {
			out = append(out, *e.RegistryConflict)
		}
	}
	return out
}
