package memory

import (
	"context"
	"reflect"
	"testing"
)

func TestTable_AppendAfterLastRow(t *testing.T) {
	ctx := context.Background()
	tbl := New().Seed("t", [][]interface{}{
		{"h1", "h2"},
		{"", ""}, // blank row left by a clear
	})

	row, err := tbl.AppendRow(ctx, []interface{}{"a", "b"})
	if err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if row != 2 {
		t.Errorf("AppendRow() = %d, want 2 (blank rows do not count)", row)
	}
}

func TestTable_Extents(t *testing.T) {
	ctx := context.Background()
	tbl := New().Seed("t", [][]interface{}{
		{"a"},
		{"b", "c", "d"},
	})

	if last, _ := tbl.LastRow(ctx); last != 2 {
		t.Errorf("LastRow() = %d, want 2", last)
	}
	if last, _ := tbl.LastColumn(ctx); last != 3 {
		t.Errorf("LastColumn() = %d, want 3", last)
	}
}

func TestTable_ReadRowPadding(t *testing.T) {
	ctx := context.Background()
	tbl := New().Seed("t", [][]interface{}{{"a", "b"}})

	got, err := tbl.ReadRow(ctx, 1, 4)
	if err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}
	want := []interface{}{"a", "b", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadRow() = %v, want %v", got, want)
	}
}

func TestStore_OpenTableCreatesOnce(t *testing.T) {
	ctx := context.Background()
	st := New()

	first, err := st.OpenTable(ctx, "t")
	if err != nil {
		t.Fatalf("OpenTable() error = %v", err)
	}
	if _, err := first.AppendRow(ctx, []interface{}{"x"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	second, err := st.OpenTable(ctx, "t")
	if err != nil {
		t.Fatalf("OpenTable() error = %v", err)
	}
	if last, _ := second.LastRow(ctx); last != 1 {
		t.Errorf("reopened table lost data: LastRow() = %d, want 1", last)
	}
	if st.Opens != 2 {
		t.Errorf("Opens = %d, want 2", st.Opens)
	}
}
