package ledger

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"sheetledger/internal/logger"
	"sheetledger/internal/store/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	st := memory.New()
	now := time.Date(2025, 8, 28, 4, 30, 0, 0, time.UTC)
	norm := NewNormalizer(fixedClock(now), taipei(t))
	log := logger.NewWithWriter(testWriter{t})
	return NewService(st, "Expenses", norm, log), st
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestService_AddExpense_EmptySheet(t *testing.T) {
	svc, st := newTestService(t)

	payload := envelope(ActionAddExpense, map[string]interface{}{
		"date":          "2025-08-28",
		"item":          "Lunch",
		"category":      "Food",
		"amount":        "150.50",
		"paymentMethod": "Card",
	})

	res, err := svc.Handle(context.Background(), payload)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.RowIndex != 2 {
		t.Errorf("RowIndex = %d, want 2 (header is row 1)", res.RowIndex)
	}
	if res.RecordedAt != "2025/08/28 12:30:00" {
		t.Errorf("RecordedAt = %q, want fixed-clock Taipei stamp", res.RecordedAt)
	}

	rows := st.Table("Expenses").Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one data row", len(rows))
	}
	if !reflect.DeepEqual(rows[0], headerCells()) {
		t.Errorf("row 1 = %v, want canonical header", rows[0])
	}
	want := []interface{}{"2025-08-28", "Lunch", "Food", 150.5, "Card", "", "2025/08/28 12:30:00"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row 2 = %v, want %v", rows[1], want)
	}
}

func TestService_AddExpense_SecondAppendKeepsHeader(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for i, item := range []string{"Lunch", "Dinner"} {
		payload := envelope(ActionAddExpense, map[string]interface{}{
			"date":          "2025-08-28",
			"item":          item,
			"category":      "Food",
			"amount":        "10",
			"paymentMethod": "Cash",
		})
		res, err := svc.Handle(ctx, payload)
		if err != nil {
			t.Fatalf("Handle() #%d error = %v", i+1, err)
		}
		if res.RowIndex != i+2 {
			t.Errorf("RowIndex #%d = %d, want %d", i+1, res.RowIndex, i+2)
		}
	}

	rows := st.Table("Expenses").Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if !reflect.DeepEqual(rows[0], headerCells()) {
		t.Errorf("header moved or duplicated: row 1 = %v", rows[0])
	}
}

func TestService_AddExpense_ValidationRejectsBeforeStore(t *testing.T) {
	svc, st := newTestService(t)

	payload := envelope(ActionAddExpense, map[string]interface{}{
		"date":          "2025-08-28",
		"item":          "",
		"category":      "Food",
		"amount":        "10",
		"paymentMethod": "Cash",
	})

	_, err := svc.Handle(context.Background(), payload)
	checkFieldError(t, err, "item")

	if st.Opens != 0 {
		t.Errorf("store opened %d times on rejected payload, want 0", st.Opens)
	}
}

func TestService_UnknownAction_NoStoreInteraction(t *testing.T) {
	svc, st := newTestService(t)

	_, err := svc.Handle(context.Background(), map[string]interface{}{"action": "unknown"})
	checkFieldError(t, err, "action")

	if st.Opens != 0 {
		t.Errorf("store opened %d times for unknown action, want 0", st.Opens)
	}
}

func TestService_StoreUnavailable(t *testing.T) {
	svc, st := newTestService(t)
	st.OpenErr = errors.New("permission denied")

	_, err := svc.Handle(context.Background(), envelope(ActionInitSheet, nil))
	if KindOf(err) != StoreUnavailable {
		t.Errorf("kind = %v, want %v (err: %v)", KindOf(err), StoreUnavailable, err)
	}
}

func TestService_WriteFailed(t *testing.T) {
	svc, st := newTestService(t)
	tbl := st.Seed("Expenses", nil)
	tbl.AppendErr = errors.New("quota exceeded")

	payload := envelope(ActionAddExpense, map[string]interface{}{
		"date":          "2025-08-28",
		"item":          "Lunch",
		"category":      "Food",
		"amount":        "10",
		"paymentMethod": "Cash",
	})

	_, err := svc.Handle(context.Background(), payload)
	if KindOf(err) != WriteFailed {
		t.Errorf("kind = %v, want %v (err: %v)", KindOf(err), WriteFailed, err)
	}
}

func TestService_InitSheet(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.InitSheet(context.Background())
	if err != nil {
		t.Fatalf("InitSheet() error = %v", err)
	}
	if !reflect.DeepEqual(res.Columns, Header()) {
		t.Errorf("Columns = %v, want canonical header", res.Columns)
	}

	rows := st.Table("Expenses").Rows()
	if len(rows) != 1 || !reflect.DeepEqual(rows[0], headerCells()) {
		t.Errorf("rows = %v, want only the header row", rows)
	}
}

func TestService_AddExpense_RejectsInitEnvelope(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddExpense(context.Background(), envelope(ActionInitSheet, nil))
	checkFieldError(t, err, "action")
}
