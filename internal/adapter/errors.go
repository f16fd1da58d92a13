package adapter

import "fmt"

// TableNotFoundError is returned when a metadata or query request names a
// table that is absent from the store.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

// ParseError is returned when a source file cannot be parsed as tabular
// data. The load of that table is aborted; tables already materialized in
// the same pass are left intact.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// QueryError wraps a store-level rejection of query text. The driver error
// is propagated verbatim, with no retry or rewriting.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
