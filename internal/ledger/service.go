package ledger

import (
	"context"

	"github.com/rs/zerolog"

	"sheetledger/internal/store"
)

// Result describes a successful operation.
type Result struct {
	RowIndex   int      `json:"rowIndex,omitempty"`
	RecordedAt string   `json:"recordedAt,omitempty"`
	Columns    []string `json:"columns,omitempty"`
}

// Service is the append coordinator: it orchestrates validation, header
// reconciliation, normalization and the store append into one logical
// operation. Stateless across requests; the table is resolved fresh on
// every call and never cached.
type Service struct {
	opener store.Opener
	table  string
	norm   *Normalizer
	log    zerolog.Logger
}

func NewService(opener store.Opener, tableName string, norm *Normalizer, log zerolog.Logger) *Service {
	return &Service{opener: opener, table: tableName, norm: norm, log: log}
}

// Handle runs the operation selected by the envelope's action field.
// Validation happens before any store interaction, so a rejected payload
// never opens the table.
func (s *Service) Handle(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	req, err := Validate(payload)
	if err != nil {
		return nil, err
	}
	switch req.Action {
	case ActionAddExpense:
		return s.appendExpense(ctx, *req.Record)
	default:
		return s.InitSheet(ctx)
	}
}

// AddExpense validates the payload and appends one normalized row.
// Callers that pre-validated still go through Validate here; the
// coordinator re-checks before any write.
func (s *Service) AddExpense(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	req, err := Validate(payload)
	if err != nil {
		return nil, err
	}
	if req.Action != ActionAddExpense {
		return nil, invalidField("action", "want %q, got %q", ActionAddExpense, req.Action)
	}
	return s.appendExpense(ctx, *req.Record)
}

// InitSheet resolves the table and reconciles its header without
// appending anything. The canonical column layout is echoed back.
func (s *Service) InitSheet(ctx context.Context) (*Result, error) {
	t, err := s.openTable(ctx)
	if err != nil {
		return nil, err
	}
	if err := EnsureHeader(ctx, t); err != nil {
		return nil, writeFailed(err, "initialize sheet %q", s.table)
	}
	s.log.Info().Str("sheet", s.table).Msg("Sheet initialized")
	return &Result{Columns: Header()}, nil
}

func (s *Service) appendExpense(ctx context.Context, rec ExpenseRecord) (*Result, error) {
	t, err := s.openTable(ctx)
	if err != nil {
		return nil, err
	}
	if err := EnsureHeader(ctx, t); err != nil {
		return nil, writeFailed(err, "reconcile header of %q", s.table)
	}

	row := s.norm.Row(rec)
	idx, err := t.AppendRow(ctx, row)
	if err != nil {
		return nil, writeFailed(err, "append to %q", s.table)
	}

	recordedAt, _ := row[len(row)-1].(string)
	s.log.Info().
		Str("sheet", s.table).
		Int("row", idx).
		Str("item", rec.Item).
		Str("category", rec.Category).
		Float64("amount", rec.Amount).
		Msg("Expense recorded")

	return &Result{RowIndex: idx, RecordedAt: recordedAt}, nil
}

func (s *Service) openTable(ctx context.Context) (store.Table, error) {
	t, err := s.opener.OpenTable(ctx, s.table)
	if err != nil {
		return nil, unavailable(err, "open table %q", s.table)
	}
	return t, nil
}
