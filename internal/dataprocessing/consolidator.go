package dataprocessing

import (
	"log/slog"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"anscli/pkg/contracts/domain"
)

type groupKey struct {
	taxID   string
	name    string
	quarter int
	year    int
}

type groupTotals struct {
	total      decimal.Decimal
	count      int
	registryID string
	modality   string
	state      string
}

type nameSeen struct {
	name    string
	quarter int
	year    int
}

// Consolidator accumulates correlated rows across all processed files
// and materializes the consolidated dataset, duplicate-name diagnostics
// and per-entity dispersion statistics at the end of the run.
type Consolidator struct {
	logger *slog.Logger
	groups map[groupKey]*groupTotals
	names  map[string][]nameSeen
}

// NewConsolidator creates an empty consolidator.
func NewConsolidator(logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consolidator{
		logger: logger,
		groups: make(map[groupKey]*groupTotals),
		names:  make(map[string][]nameSeen),
	}
}

// Add folds one file's correlated rows into the running group totals.
// Called once per file after correlation succeeds; an aborted file never
// reaches this point, so its partial artifacts are discarded wholesale.
func (c *Consolidator) Add(rows []domain.EnrichedRecord) {
	for _, row := range rows {
		key := groupKey{taxID: row.TaxID, name: row.CorporateName, quarter: row.Quarter, year: row.Year}
		g, ok := c.groups[key]
		if !ok {
			g = &groupTotals{
				total:      decimal.Zero,
				registryID: row.DedupRegistryID,
				modality:   row.Modality,
				state:      row.State,
			}
			c.groups[key] = g
		}
		g.total = g.total.Add(row.Expense)
		g.count++

		c.noteName(row)
	}
}

func (c *Consolidator) noteName(row domain.EnrichedRecord) {
	seen := c.names[row.TaxID]
	for _, s := range seen {
		if s.name == row.CorporateName {
			return
		}
	}
	c.names[row.TaxID] = append(seen, nameSeen{name: row.CorporateName, quarter: row.Quarter, year: row.Year})
}

// Records returns one consolidated row per group, totals and averages
// rounded to two decimals, sorted for deterministic output.
func (c *Consolidator) Records() []domain.ConsolidatedRecord {
	records := make([]domain.ConsolidatedRecord, 0, len(c.groups))
	for key, g := range c.groups {
		total := g.total.Round(2)
		avg := total.Div(decimal.NewFromInt(int64(g.count))).Round(2)
		records = append(records, domain.ConsolidatedRecord{
			TaxID:          key.taxID,
			CorporateName:  key.name,
			Quarter:        key.quarter,
			Year:           key.year,
			TotalExpense:   total,
			AverageExpense: avg,
			RegistryID:     g.registryID,
			Modality:       g.modality,
			State:          g.state,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.TaxID != b.TaxID {
			return a.TaxID < b.TaxID
		}
		if a.CorporateName != b.CorporateName {
			return a.CorporateName < b.CorporateName
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Quarter < b.Quarter
	})

	c.logger.Info("consolidated expense groups", slog.Int("groups", len(records)))
	return records
}

// DuplicateNames returns one event per distinct pair of corporate names
// observed for the same tax id. Rows are never removed on account of a
// duplicate name; the pairs exist for manual review.
func (c *Consolidator) DuplicateNames() []domain.DuplicateNameEvent {
	taxIDs := make([]string, 0, len(c.names))
	for taxID, seen := range c.names {
		if len(seen) > 1 {
			taxIDs = append(taxIDs, taxID)
		}
	}
	sort.Strings(taxIDs)

	var events []domain.DuplicateNameEvent
	for _, taxID := range taxIDs {
		seen := c.names[taxID]
		for i := 0; i < len(seen); i++ {
			for j := i + 1; j < len(seen); j++ {
				events = append(events, domain.DuplicateNameEvent{
					TaxID:   taxID,
					NameOne: seen[i].name,
					NameTwo: seen[j].name,
					Quarter: seen[i].quarter,
					Year:    seen[i].year,
				})
			}
		}
	}
	return events
}

// EntityStats computes the mean and population standard deviation of
// each entity's group totals. No magnitude threshold is applied; whether
// a deviation is acceptable is a manual, context-dependent call.
func (c *Consolidator) EntityStats() []domain.EntityStats {
	totalsByEntity := make(map[string][]float64)
	for key, g := range c.groups {
		f, _ := g.total.Round(2).Float64()
		totalsByEntity[key.taxID] = append(totalsByEntity[key.taxID], f)
	}

	taxIDs := make([]string, 0, len(totalsByEntity))
	for taxID := range totalsByEntity {
		taxIDs = append(taxIDs, taxID)
	}
	sort.Strings(taxIDs)

	stats := make([]domain.EntityStats, 0, len(taxIDs))
	for _, taxID := range taxIDs {
		totals := totalsByEntity[taxID]
		mean := 0.0
		for _, v := range totals {
			mean += v
		}
		mean /= float64(len(totals))

		variance := 0.0
		for _, v := range totals {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(totals))

		name := ""
		if seen := c.names[taxID]; len(seen) > 0 {
			name = seen[0].name
		}

		stats = append(stats, domain.EntityStats{
			TaxID:         taxID,
			CorporateName: name,
			Groups:        len(totals),
			MeanExpense:   decimal.NewFromFloat(mean).Round(2),
			StdDeviation:  decimal.NewFromFloat(math.Sqrt(variance)).Round(2),
		})
	}
	return stats
}
