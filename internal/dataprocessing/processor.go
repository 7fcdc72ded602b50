package dataprocessing

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"anscli/pkg/contracts/domain"
)

// FileStatus is a state of the per-file processing state machine.
type FileStatus string

const (
	StatusIngested       FileStatus = "INGESTED"
	StatusSchemaResolved FileStatus = "SCHEMA_RESOLVED"
	StatusValidated      FileStatus = "VALIDATED"
	StatusCorrelated     FileStatus = "CORRELATED"
	StatusAggregated     FileStatus = "AGGREGATED"
	StatusReported       FileStatus = "REPORTED" // terminal
)

// FileRun tracks one source file's progress through the state machine.
// Execution is strictly sequential, so no locking is needed; the struct
// is owned by the goroutine driving the run.
type FileRun struct {
	ID        string
	Path      string
	Quarter   int
	Year      int
	Status    FileStatus
	StartTime time.Time
	EndTime   *time.Time
	Err       error
}

// NewFileRun starts tracking a file at INGESTED.
func NewFileRun(path string, quarter, year int) *FileRun {
	return &FileRun{
		ID:        uuid.NewString(),
		Path:      path,
		Quarter:   quarter,
		Year:      year,
		Status:    StatusIngested,
		StartTime: time.Now(),
	}
}

// Advance moves the run to the next state.
func (r *FileRun) Advance(status FileStatus) {
	r.Status = status
	if status == StatusReported {
		now := time.Now()
		r.EndTime = &now
	}
}

// Fail records a fatal error and terminates the run. Partial artifacts
// of the file are discarded by the caller; completed files are never
// affected.
func (r *FileRun) Fail(err error) {
	r.Err = err
	now := time.Now()
	r.EndTime = &now
}

// FileResult is the outcome of one file that made it through
// correlation, plus the non-fatal condition counts gathered on the way.
type FileResult struct {
	Rows          []domain.EnrichedRecord
	Stats         ParseStats
	OrphanDropped int
	Invalid       []domain.InvalidIdentifierEvent
}

// Processor drives a single table through schema resolution, parsing,
// identifier validation and the two-stage registry join. The registry
// index and the deduplicated snapshot are immutable and shared across
// every file of the run.
type Processor struct {
	logger       *slog.Logger
	parser       *Parser
	correlator   *Correlator
	byRegistryID map[string]domain.RegistryEntry
	dedup        map[string]domain.RegistryEntry
}

// NewProcessor creates a processor bound to a registry snapshot.
func NewProcessor(logger *slog.Logger, byRegistryID, dedup map[string]domain.RegistryEntry) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:       logger,
		parser:       NewParser(logger),
		correlator:   NewCorrelator(logger),
		byRegistryID: byRegistryID,
		dedup:        dedup,
	}
}

// ProcessTable runs one ingested table through the state machine up to
// CORRELATED. A fatal error at SCHEMA_RESOLVED or CORRELATED fails the
// run and returns without touching any accumulated state.
func (p *Processor) ProcessTable(table *domain.Table, run *FileRun) (*FileResult, error) {
	records, stats, err := p.parser.Parse(table, run.Quarter, run.Year)
	if err != nil {
		run.Fail(err)
		return nil, err
	}
	run.Advance(StatusSchemaResolved)

	// Tax identifiers only exist after the stage-1 join attaches them,
	// so the identifier split runs on its output.
	matched, dropped := p.correlator.JoinByRegistryID(records, p.byRegistryID)
	valid, invalid := SplitByIdentifier(matched)
	run.Advance(StatusValidated)

	enriched, err := p.correlator.JoinByTaxID(valid, p.dedup)
	if err != nil {
		run.Fail(err)
		return nil, err
	}
	run.Advance(StatusCorrelated)

	p.logger.Info("file correlated",
		slog.String("file", run.Path),
		slog.String("run_id", run.ID),
		slog.Int("quarter", run.Quarter),
		slog.Int("year", run.Year),
		slog.Int("rows", len(enriched)),
		slog.Int("orphans_dropped", dropped),
		slog.Int("invalid_identifiers", len(invalid)))

	return &FileResult{
		Rows:          enriched,
		Stats:         stats,
		OrphanDropped: dropped,
		Invalid:       invalid,
	}, nil
}
