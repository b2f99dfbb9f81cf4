// Package memory implements the store interfaces on an in-process 2-D
// grid. Used by tests in place of the Sheets backend.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sheetledger/internal/store"
)

// Store hosts named in-memory tables.
type Store struct {
	mu     sync.Mutex
	tables map[string]*Table

	// OpenErr, when set, makes every OpenTable call fail.
	OpenErr error
	// Opens counts OpenTable calls, including failed ones.
	Opens int
}

var _ store.Opener = (*Store)(nil)

func New() *Store {
	return &Store{tables: make(map[string]*Table)}
}

// OpenTable returns the named table, creating it empty when absent.
func (s *Store) OpenTable(ctx context.Context, name string) (store.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Opens++
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	t, ok := s.tables[name]
	if !ok {
		t = &Table{}
		s.tables[name] = t
	}
	return t, nil
}

// Table returns the named table without counting as a store interaction,
// for test assertions. Nil when the table was never opened or seeded.
func (s *Store) Table(name string) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[name]
}

// Seed creates the named table pre-filled with rows.
func (s *Store) Seed(name string, rows [][]interface{}) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Table{}
	for _, r := range rows {
		t.rows = append(t.rows, append([]interface{}(nil), r...))
	}
	s.tables[name] = t
	return t
}

// Table is a mutex-guarded grid of cells.
type Table struct {
	mu   sync.Mutex
	rows [][]interface{}

	// AppendErr, when set, makes AppendRow fail.
	AppendErr error

	// Write operation counters for idempotence assertions.
	WriteCalls  int
	ClearCalls  int
	AppendCalls int
}

var _ store.Table = (*Table)(nil)

func (t *Table) ReadRow(ctx context.Context, row, columnCount int) ([]interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 {
		return nil, fmt.Errorf("read row %d: out of range", row)
	}
	out := make([]interface{}, columnCount)
	for i := range out {
		out[i] = ""
	}
	if row <= len(t.rows) {
		for i, v := range t.rows[row-1] {
			if i >= columnCount {
				break
			}
			out[i] = v
		}
	}
	return out, nil
}

func (t *Table) WriteRow(ctx context.Context, row int, values []interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 {
		return fmt.Errorf("write row %d: out of range", row)
	}
	t.WriteCalls++
	t.grow(row, len(values))
	copy(t.rows[row-1], values)
	return nil
}

func (t *Table) AppendRow(ctx context.Context, values []interface{}) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.AppendErr != nil {
		return 0, t.AppendErr
	}
	t.AppendCalls++
	row := t.lastRowLocked() + 1
	t.grow(row, len(values))
	t.rows[row-1] = append([]interface{}(nil), values...)
	return row, nil
}

func (t *Table) ClearRow(ctx context.Context, row, columnCount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 {
		return fmt.Errorf("clear row %d: out of range", row)
	}
	t.ClearCalls++
	if row > len(t.rows) {
		return nil
	}
	cells := t.rows[row-1]
	for i := 0; i < columnCount && i < len(cells); i++ {
		cells[i] = ""
	}
	return nil
}

func (t *Table) LastRow(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRowLocked(), nil
}

func (t *Table) LastColumn(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last := 0
	for _, row := range t.rows {
		for i := len(row); i > 0; i-- {
			if !empty(row[i-1]) {
				if i > last {
					last = i
				}
				break
			}
		}
	}
	return last, nil
}

// Rows returns a copy of the grid for assertions, trimmed to the last
// non-empty row.
func (t *Table) Rows() [][]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]interface{}, 0, len(t.rows))
	for i := 0; i < t.lastRowLocked(); i++ {
		out = append(out, append([]interface{}(nil), t.rows[i]...))
	}
	return out
}

func (t *Table) lastRowLocked() int {
	for i := len(t.rows); i > 0; i-- {
		for _, v := range t.rows[i-1] {
			if !empty(v) {
				return i
			}
		}
	}
	return 0
}

func (t *Table) grow(rows, cols int) {
	for len(t.rows) < rows {
		t.rows = append(t.rows, nil)
	}
	for len(t.rows[rows-1]) < cols {
		t.rows[rows-1] = append(t.rows[rows-1], "")
	}
}

func empty(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
