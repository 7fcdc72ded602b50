package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anscli/pkg/contracts/domain"
)

func TestReporter_SummaryCounts(t *testing.T) {
	r := New()

	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "00000000000000", RegistryID: "1002"})
	r.RecordDuplicateName(domain.DuplicateNameEvent{TaxID: "11444777000161", NameOne: "Alfa", NameTwo: "Alfa Saude", Quarter: 1, Year: 2025})
	r.RecordRegistryConflict(domain.RegistryConflictEvent{TaxID: "11444777000161", Field: "state", Values: []string{"SP", "RJ"}})
	r.CountNumericFailures(3)
	r.CountOrphansDropped(2)
	r.CountClaimsExcluded(5)
	r.CountFileCompleted()
	r.CountFileCompleted()
	r.CountFileAborted()

	assert.Equal(t, Summary{
		InvalidIdentifiers: 1,
		DuplicateNames:     1,
		RegistryConflicts:  1,
		NumericFailures:    3,
		OrphansDropped:     2,
		ClaimsExcluded:     5,
		FilesCompleted:     2,
		FilesAborted:       1,
	}, r.Summary())

	assert.Len(t, r.Events(), 3)
}

func TestReporter_EventOrderPreserved(t *testing.T) {
	r := New()
	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "a"})
	r.RecordRegistryConflict(domain.RegistryConflictEvent{TaxID: "x", Field: "state"})
	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "b"})

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, domain.DiagnosticInvalidIdentifier, events[0].Kind)
	assert.Equal(t, domain.DiagnosticRegistryConflict, events[1].Kind)
	assert.Equal(t, domain.DiagnosticInvalidIdentifier, events[2].Kind)
}

func TestReporter_InvalidIdentifiersDeduped(t *testing.T) {
	r := New()

	// Same operator showing up in two files yields one report row.
	ev := domain.InvalidIdentifierEvent{Identifier: "123", RegistryID: "1002", CorporateName: "Operadora Zero"}
	r.RecordInvalidIdentifier(ev)
	r.RecordInvalidIdentifier(ev)
	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "456", RegistryID: "1003"})

	out := r.InvalidIdentifiers()
	require.Len(t, out, 2)
	assert.Equal(t, "123", out[0].Identifier)
	assert.Equal(t, "456", out[1].Identifier)

	// The summary keeps the raw event count.
	assert.Equal(t, 3, r.Summary().InvalidIdentifiers)
}

func TestReporter_PerKindViews(t *testing.T) {
	r := New()
	r.RecordDuplicateName(domain.DuplicateNameEvent{TaxID: "x", NameOne: "A", NameTwo: "B"})
	r.RecordRegistryConflict(domain.RegistryConflictEvent{TaxID: "x", Field: "modality", Values: []string{"1", "2"}})

	require.Len(t, r.DuplicateNames(), 1)
	require.Len(t, r.RegistryConflicts(), 1)
	assert.Empty(t, r.InvalidIdentifiers())
	assert.Equal(t, []string{"1", "2"}, r.RegistryConflicts()[0].Values)
}

func TestReporter_EventsReturnsCopy(t *testing.T) {
	r := New()
	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "a"})

	first := r.Events()
	first[0].Kind = domain.DiagnosticRegistryConflict
	r.RecordInvalidIdentifier(domain.InvalidIdentifierEvent{Identifier: "b"})

	// Neither mutating a returned slice nor recording afterwards bleeds
	// into what an earlier caller holds, and vice versa.
	assert.Len(t, first, 1)
	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.DiagnosticInvalidIdentifier, events[0].Kind)
}

func TestReporter_Empty(t *testing.T) {
	r := New()
	assert.Equal(t, Summary{}, r.Summary())
	assert.Empty(t, r.Events())
	assert.Empty(t, r.InvalidIdentifiers())
	assert.Empty(t, r.DuplicateNames())
	assert.Empty(t, r.RegistryConflicts())
}
