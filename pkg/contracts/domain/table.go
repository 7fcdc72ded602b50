package domain

// RawRow maps raw source column names to raw textual values. The column
// set varies per source file; rows are ephemeral and scoped to one
// file's processing.
type RawRow map[string]string

// Table is the shape every reader produces: the header in source order
// plus the ordered row sequence.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}
