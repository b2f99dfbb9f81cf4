package ledger

import (
	"context"
	"fmt"
	"strings"

	"sheetledger/internal/store"
)

// EnsureHeader makes the table's first row equal the canonical header.
// Idempotent and safe to call on every append: when the row already
// matches it performs no writes. Any drift, including an empty table and a
// longer first row that agrees on the shared prefix, is corrected by
// clearing the row across its current width and rewriting the header.
func EnsureHeader(ctx context.Context, t store.Table) error {
	lastRow, err := t.LastRow(ctx)
	if err != nil {
		return fmt.Errorf("ensure header: last row: %w", err)
	}
	lastCol, err := t.LastColumn(ctx)
	if err != nil {
		return fmt.Errorf("ensure header: last column: %w", err)
	}

	var current []interface{}
	if lastRow > 0 && lastCol > 0 {
		current, err = t.ReadRow(ctx, 1, lastCol)
		if err != nil {
			return fmt.Errorf("ensure header: read row 1: %w", err)
		}
		// Judge the row by its own extent: the table may be wider than
		// row 1 because of other rows.
		current = trimTrailingEmpty(current)
	}

	if headerMatches(current) {
		return nil
	}

	if lastCol > 0 {
		if err := t.ClearRow(ctx, 1, lastCol); err != nil {
			return fmt.Errorf("ensure header: clear row 1: %w", err)
		}
	}

	header := make([]interface{}, len(canonicalHeader))
	for i, name := range canonicalHeader {
		header[i] = name
	}
	if err := t.WriteRow(ctx, 1, header); err != nil {
		return fmt.Errorf("ensure header: write row 1: %w", err)
	}
	return nil
}

// headerMatches requires exact width and exact content. A wider first row
// is drift even when its prefix matches: canonical-header exactness wins
// over preserving extra columns.
func headerMatches(current []interface{}) bool {
	if len(current) != len(canonicalHeader) {
		return false
	}
	for i, want := range canonicalHeader {
		if cellString(current[i]) != want {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(cells []interface{}) []interface{} {
	end := len(cells)
	for end > 0 && cellString(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
