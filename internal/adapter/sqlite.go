package adapter

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // sqlite driver (pure Go)
)

func init() {
	Register("sqlite", func() Adapter { return NewSQLiteAdapter() })
}

// SQLiteAdapter implements the Adapter interface for SQLite.
type SQLiteAdapter struct {
	db     *sql.DB
	config Config
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{}
}

// Connect opens the SQLite database file, creating it if absent.
// Use ":memory:" as the path for an in-memory database.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	a.db = db
	a.config = cfg

	return nil
}

// Close closes the SQLite connection.
func (a *SQLiteAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (a *SQLiteAdapter) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if a.db == nil {
		return fmt.Errorf("store connection not established")
	}

	if _, err := a.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return &QueryError{SQL: sqlStr, Err: err}
	}

	return nil
}

// Query executes a SQL statement that returns rows.
func (a *SQLiteAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*Rows, error) {
	if a.db == nil {
		return nil, fmt.Errorf("store connection not established")
	}

	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := a.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &QueryError{SQL: sqlStr, Err: err}
	}

	return &Rows{Rows: rows}, nil
}

// GetTableMetadata retrieves metadata for a specified table using
// PRAGMA table_info, which reports columns in table order.
func (a *SQLiteAdapter) GetTableMetadata(ctx context.Context, table string) (*Metadata, error) {
	if a.db == nil {
		return nil, fmt.Errorf("store connection not established")
	}
	if !ValidTableName(table) {
		return nil, &TableNotFoundError{Table: table}
	}

	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var (
			cid     int
			col     Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = notNull == 0
		col.Position = cid + 1
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, &TableNotFoundError{Table: table}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	var rowCount int64
	if err := a.db.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}

	return &Metadata{
		Name:     table,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// ListTables returns the names of all user tables in the store.
func (a *SQLiteAdapter) ListTables(ctx context.Context) ([]string, error) {
	if a.db == nil {
		return nil, fmt.Errorf("store connection not established")
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadCSV loads data from a CSV file into a table, replacing any existing
// table of the same name. The first row supplies column names; column types
// are inferred from the data. Empty cells are stored as NULL.
func (a *SQLiteAdapter) LoadCSV(ctx context.Context, tableName string, filePath string) error {
	if a.db == nil {
		return fmt.Errorf("store connection not established")
	}
	if !ValidTableName(tableName) {
		return fmt.Errorf("invalid table name %q", tableName)
	}

	f, err := os.Open(filePath) //nolint:gosec // G304: path comes from the configured source directory
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return &ParseError{File: filePath, Err: err}
	}

	// Rows with a column count different from the header are a parse
	// failure, surfaced by the csv reader itself.
	records, err := r.ReadAll()
	if err != nil {
		return &ParseError{File: filePath, Err: err}
	}

	types := make([]string, len(header))
	for i := range header {
		types[i] = columnAffinity(records, i)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tableName))); err != nil {
		return fmt.Errorf("failed to drop existing table %s: %w", tableName, err)
	}

	colDefs := make([]string, len(header))
	for i, name := range header {
		colDefs[i] = fmt.Sprintf("%s %s", quoteIdent(name), types[i])
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(colDefs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(tableName), placeholders)
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", tableName, err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(header))
	for _, record := range records {
		for i, value := range record {
			args[i] = convertValue(value, types[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row into %s: %w", tableName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of %s: %w", tableName, err)
	}

	return nil
}

// DialectName returns the SQL dialect name for this adapter.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// columnAffinity infers a column type from its values: INTEGER if every
// non-empty value parses as an integer, REAL if every non-empty value parses
// as a number, TEXT otherwise. A column with no non-empty values is TEXT.
func columnAffinity(records [][]string, col int) string {
	isInt, isReal, seen := true, true, false
	for _, record := range records {
		v := strings.TrimSpace(record[col])
		if v == "" {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if !isInt && isReal {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isReal = false
				break
			}
		}
	}

	switch {
	case !seen:
		return "TEXT"
	case isInt:
		return "INTEGER"
	case isReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// convertValue maps a CSV cell to a bind argument matching the inferred
// column type. Empty cells become NULL.
func convertValue(value, colType string) any {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	switch colType {
	case "INTEGER":
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case "REAL":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return value
}

// Ensure SQLiteAdapter implements Adapter interface
var _ Adapter = (*SQLiteAdapter)(nil)
