// Package adapter provides store adapter interfaces and implementations
// for the grantsql warehouse.
package adapter

import (
	"context"
	"database/sql"
	"regexp"
)

// Config holds the configuration for connecting to a store.
type Config struct {
	// Type specifies the store type (e.g., "sqlite", "duckdb")
	Type string

	// Path is the database file path.
	// Use ":memory:" for an in-memory store.
	Path string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Column represents a column in a store table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the declared or inferred data type of the column
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// Position is the ordinal position of the column in the table
	Position int
}

// Metadata holds metadata about a store table.
type Metadata struct {
	// Name is the table name
	Name string

	// Columns contains metadata for each column, in table order
	Columns []Column

	// RowCount is the exact number of rows at inspection time
	RowCount int64
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all store adapters must implement.
// It provides methods for connecting to a store, executing SQL, loading
// CSV extracts, and retrieving metadata.
type Adapter interface {
	// Connect opens the store at the configured path, creating the file
	// if it does not exist yet.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the store connection and releases resources.
	// The underlying store file persists.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows. Caller-supplied
	// values are passed as bound arguments, never interpolated.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// GetTableMetadata retrieves metadata for a specified table. It fails
	// with TableNotFoundError if the table does not exist.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// ListTables returns the names of all user tables in the store.
	ListTables(ctx context.Context) ([]string, error)

	// LoadCSV loads data from a CSV file into a table, replacing any
	// existing table of the same name in full (schema and data).
	LoadCSV(ctx context.Context, tableName string, filePath string) error

	// DialectName returns the SQL dialect name for this adapter
	// (e.g., "sqlite", "duckdb").
	DialectName() string
}

// identPattern matches the table names this package is willing to splice
// into DDL and PRAGMA statements, which cannot take bound parameters.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is safe to use as a table identifier.
func ValidTableName(name string) bool {
	return identPattern.MatchString(name)
}

// quoteIdent quotes an identifier for use in generated SQL. Column names
// come straight from CSV headers and may contain arbitrary characters.
func quoteIdent(name string) string {
	quoted := make([]byte, 0, len(name)+2)
	quoted = append(quoted, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			quoted = append(quoted, '"')
		}
		quoted = append(quoted, name[i])
	}
	return string(append(quoted, '"'))
}
