package warehouse

import (
	"context"
	"fmt"

	"github.com/grantstack-labs/grantsql/internal/adapter"
)

// sampleRows is the number of rows DescribeTable returns as a preview.
const sampleRows = 5

// TableInfo describes a materialized table: exact row count, columns in
// table order, and the first few rows.
type TableInfo struct {
	Name     string
	RowCount int64
	Columns  []adapter.Column
	Sample   []map[string]any
}

// DescribeTable reports metadata for an existing table without mutating it.
// It fails with adapter.TableNotFoundError if the table does not exist.
func (w *Warehouse) DescribeTable(ctx context.Context, table string) (*TableInfo, error) {
	if err := w.ensureConnected(ctx); err != nil {
		return nil, err
	}

	meta, err := w.db.GetTableMetadata(ctx, table)
	if err != nil {
		return nil, err
	}

	// The table name was validated by the metadata lookup above.
	sample, err := w.Execute(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT ?", table), sampleRows)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", table, err)
	}

	return &TableInfo{
		Name:     meta.Name,
		RowCount: meta.RowCount,
		Columns:  meta.Columns,
		Sample:   sample.Rows,
	}, nil
}
