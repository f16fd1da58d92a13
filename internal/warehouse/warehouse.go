// Package warehouse materializes nonprofit and grant CSV extracts into a
// relational store and runs SQL against the resulting tables.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/grantstack-labs/grantsql/internal/adapter"
)

// Config holds warehouse configuration.
type Config struct {
	// StoreType selects the store adapter ("sqlite" if empty).
	StoreType string

	// DBPath is the path to the store file. Missing parent directories are
	// created on demand. Use ":memory:" for an in-memory store.
	DBPath string

	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Warehouse owns a single store connection, opened lazily and reused
// across calls for the lifetime of the instance.
type Warehouse struct {
	db        adapter.Adapter
	cfg       Config
	logger    *slog.Logger
	mu        sync.Mutex
	connected bool
}

// New creates a warehouse with a lazy store connection. The store is only
// opened when a load, query, or metadata request needs it.
func New(cfg Config) (*Warehouse, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.StoreType == "" {
		cfg.StoreType = "sqlite"
	}

	db, err := adapter.New(cfg.StoreType)
	if err != nil {
		return nil, err
	}

	return &Warehouse{db: db, cfg: cfg, logger: logger}, nil
}

// ensureConnected lazily opens the store connection, creating the store
// file's parent directories if needed.
func (w *Warehouse) ensureConnected(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.connected {
		return nil
	}

	if w.cfg.DBPath != "" && w.cfg.DBPath != ":memory:" {
		if dir := filepath.Dir(w.cfg.DBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}

	w.logger.Debug("connecting to store", "type", w.cfg.StoreType, "path", w.cfg.DBPath)

	if err := w.db.Connect(ctx, adapter.Config{Type: w.cfg.StoreType, Path: w.cfg.DBPath}); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	w.connected = true
	return nil
}

// Close releases the store handle. The underlying store file persists.
func (w *Warehouse) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.Debug("closing warehouse")
	w.connected = false
	return w.db.Close()
}

// DialectName returns the SQL dialect of the configured store.
func (w *Warehouse) DialectName() string {
	return w.db.DialectName()
}

// Result is a tabular query result: column names in select order, and rows
// keyed by column name in store-returned order.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Execute runs caller-supplied SQL against the store. Values for any `?`
// placeholders are passed as bound arguments. Store rejections surface as
// adapter.QueryError, propagated verbatim.
func (w *Warehouse) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	if err := w.ensureConnected(ctx); err != nil {
		return nil, err
	}

	rows, err := w.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectRows(rows)
}

// ListTables returns the names of all tables currently in the store.
func (w *Warehouse) ListTables(ctx context.Context) ([]string, error) {
	if err := w.ensureConnected(ctx); err != nil {
		return nil, err
	}
	return w.db.ListTables(ctx)
}

// collectRows drains rows into a Result, converting []byte values to
// strings for readability.
func collectRows(rows *adapter.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		res.Rows = append(res.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}
