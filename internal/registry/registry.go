// Package registry loads the active-operator reference dataset and
// resolves conflicting duplicate entries before any tax-id-keyed join.
package registry

import (
	"log/slog"
	"strings"

	"anscli/internal/cnpj"
	"anscli/internal/dataprocessing"
	"anscli/pkg/contracts/domain"
)

// Load converts a raw registry table into entries, resolving its column
// schema through the ordered alias lists. Registry id, tax id and
// corporate name are required; modality and state are attached when the
// vintage carries them.
func Load(table *domain.Table, logger *slog.Logger) ([]domain.RegistryEntry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	resolver := dataprocessing.NewRegistryResolver()
	required := []dataprocessing.Field{
		dataprocessing.FieldRegistryID,
		dataprocessing.FieldTaxID,
		dataprocessing.FieldCorporateName,
	}
	resolved, err := resolver.ResolveAll(table.Columns, required)
	if err != nil {
		return nil, err
	}

	modalityCol := resolver.ResolveOptional(table.Columns, dataprocessing.FieldModality)
	stateCol := resolver.ResolveOptional(table.Columns, dataprocessing.FieldState)

	entries := make([]domain.RegistryEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entry := domain.RegistryEntry{
			RegistryID:    strings.TrimSpace(row[resolved[dataprocessing.FieldRegistryID]]),
			TaxID:         strings.TrimSpace(row[resolved[dataprocessing.FieldTaxID]]),
			CorporateName: strings.TrimSpace(row[resolved[dataprocessing.FieldCorporateName]]),
		}
		if entry.RegistryID == "" {
			continue
		}
		if modalityCol != "" {
			entry.Modality = strings.TrimSpace(row[modalityCol])
		}
		if stateCol != "" {
			entry.State = strings.TrimSpace(row[stateCol])
		}
		entries = append(entries, entry)
	}

	logger.Info("loaded operator registry", slog.Int("entries", len(entries)))
	return entries, nil
}

// IndexByRegistryID builds the stage-1 join index over the raw,
// un-deduplicated registry. The first entry wins on a duplicate
// registry id, keeping the index deterministic in input order.
func IndexByRegistryID(entries []domain.RegistryEntry) map[string]domain.RegistryEntry {
	index := make(map[string]domain.RegistryEntry, len(entries))
	for _, e := range entries {
		if _, ok := index[e.RegistryID]; !ok {
			index[e.RegistryID] = e
		}
	}
	return index
}

// conflictFields enumerates the non-key fields compared across duplicate
// entries, in report order.
var conflictFields = []struct {
	name string
	get  func(domain.RegistryEntry) string
}{
	{"corporate_name", func(e domain.RegistryEntry) string { return e.CorporateName }},
	{"registry_id", func(e domain.RegistryEntry) string { return e.RegistryID }},
	{"modality", func(e domain.RegistryEntry) string { return e.Modality }},
	{"state", func(e domain.RegistryEntry) string { return e.State }},
}

// Deduplicate groups entries by normalized tax id and returns a mapping
// with exactly one entry per tax id: the first seen in input order,
// never "most complete" or "most recent". For every
// non-key field whose values differ within a group, one RegistryConflict
// event per (tax id, field) is emitted carrying all distinct observed
// values in first-seen order. Runs once per run, before any join keyed
// on tax id.
func Deduplicate(entries []domain.RegistryEntry) (map[string]domain.RegistryEntry, []domain.RegistryConflictEvent) {
	dedup := make(map[string]domain.RegistryEntry, len(entries))
	groups := make(map[string][]domain.RegistryEntry, len(entries))
	var keyOrder []string

	for _, e := range entries {
		key := cnpj.Normalize(e.TaxID)
		if key == "" {
			key = e.TaxID
		}
		if _, ok := dedup[key]; !ok {
			dedup[key] = e
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], e)
	}

	var conflicts []domain.RegistryConflictEvent
	for _, key := range keyOrder {
		// Blank tax ids share the "" key without being the same
		// operator; comparing their fields would fabricate conflicts.
		if key == "" {
			continue
		}
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		for _, field := range conflictFields {
			values := distinctValues(group, field.get)
			if len(values) > 1 {
				conflicts = append(conflicts, domain.RegistryConflictEvent{
					TaxID:  key,
					Field:  field.name,
					Values: values,
				})
			}
		}
	}

	return dedup, conflicts
}

func distinctValues(group []domain.RegistryEntry, get func(domain.RegistryEntry) string) []string {
	var values []string
	seen := make(map[string]struct{}, len(group))
	for _, e := range group {
		v := get(e)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
