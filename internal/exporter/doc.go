// Package exporter persists the pipeline's result sets as CSV files in
// the Brazilian locale convention: ';' field separator, decimal comma
// for monetary values, UTF-8 with byte-order marker so spreadsheet
// applications pick the right encoding. All monetary values arrive
// pre-rounded to two decimals and all identifiers pre-normalized.
package exporter
