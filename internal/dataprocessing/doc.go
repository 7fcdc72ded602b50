// Package dataprocessing implements the validation-correlation-aggregation
// core of the quarterly expense consolidation pipeline.
//
// # Architecture
//
// The package is organized into four main components:
//
//  1. Resolver: maps heterogeneous raw column names to canonical fields
//  2. Parser: turns raw rows into canonical expense records
//  3. Correlator: two-stage join against the operator registry
//  4. Consolidator: per-group totals, averages and dispersion statistics
//
// # Data Flow
//
// The typical flow for one quarterly file:
//
//	Raw table → Resolver → Parser → stage-1 join → identifier split →
//	stage-2 join → Consolidator → result sets
//
// Each file moves through an explicit state machine
// (INGESTED → SCHEMA_RESOLVED → VALIDATED → CORRELATED → AGGREGATED →
// REPORTED); a fatal failure aborts only the file that raised it.
//
// # Error Handling
//
// Fatal conditions (missing required column, left-join row-count
// mismatch) abort the current file. Non-fatal conditions (invalid
// identifiers, unparseable monetary values, registry conflicts) never
// interrupt processing; they accumulate as diagnostics for the run-end
// report.
package dataprocessing
