// Package store defines the tabular store abstraction the ledger writes to.
// A store hosts named tables (sheets); a table is a 2-D grid of cells
// addressed by 1-based row and column indices.
package store

import "context"

// Opener resolves a named table within the backing store, creating it when
// it does not exist yet. Implementations must not cache handles across
// calls; every request resolves its table independently.
type Opener interface {
	OpenTable(ctx context.Context, name string) (Table, error)
}

// Table is a handle to one table. Cell values are interface{} to match the
// Sheets values API: strings and float64 in practice.
type Table interface {
	// ReadRow returns the first columnCount cells of the given row. Cells
	// beyond the table's current width come back as empty strings.
	ReadRow(ctx context.Context, row, columnCount int) ([]interface{}, error)

	// WriteRow overwrites cells of the given row starting at column 1.
	WriteRow(ctx context.Context, row int, values []interface{}) error

	// AppendRow adds values as a new row after the last non-empty row and
	// returns the 1-based index of the written row.
	AppendRow(ctx context.Context, values []interface{}) (int, error)

	// ClearRow blanks the first columnCount cells of the given row.
	ClearRow(ctx context.Context, row, columnCount int) error

	// LastRow returns the index of the last non-empty row, 0 for an empty
	// table.
	LastRow(ctx context.Context) (int, error)

	// LastColumn returns the index of the last non-empty column, 0 for an
	// empty table.
	LastColumn(ctx context.Context) (int, error)
}
