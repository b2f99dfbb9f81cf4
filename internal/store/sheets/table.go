package sheets

import (
	"context"
	"fmt"
	"strings"

	gsheet "google.golang.org/api/sheets/v4"

	"sheetledger/internal/store"
)

// table is a per-request handle to one sheet. Extents are read fresh on
// every call; no state survives between calls.
type table struct {
	svc           *gsheet.Service
	spreadsheetID string
	name          string
}

var _ store.Table = (*table)(nil)

func (t *table) ReadRow(ctx context.Context, row, columnCount int) ([]interface{}, error) {
	rng := fmt.Sprintf("%s!A%d:%s%d", quoteSheet(t.name), row, columnLetter(columnCount), row)
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([]interface{}, columnCount)
	for i := range out {
		out[i] = ""
	}
	if len(resp.Values) > 0 {
		for i, v := range resp.Values[0] {
			if i >= columnCount {
				break
			}
			out[i] = v
		}
	}
	return out, nil
}

// WriteRow uses RAW input so header cells land exactly as given, without
// the Sheets parser reinterpreting them.
func (t *table) WriteRow(ctx context.Context, row int, values []interface{}) error {
	rng := fmt.Sprintf("%s!A%d", quoteSheet(t.name), row)
	vr := &gsheet.ValueRange{Values: [][]interface{}{values}}
	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	return nil
}

func (t *table) AppendRow(ctx context.Context, values []interface{}) (int, error) {
	rng := fmt.Sprintf("%s!A:%s", quoteSheet(t.name), columnLetter(len(values)))
	vr := &gsheet.ValueRange{Values: [][]interface{}{values}}
	resp, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", rng, err)
	}
	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return 0, fmt.Errorf("append to %s: response missing updated range", rng)
	}
	row, err := rowFromRange(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", rng, err)
	}
	return row, nil
}

func (t *table) ClearRow(ctx context.Context, row, columnCount int) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", quoteSheet(t.name), row, columnLetter(columnCount), row)
	_, err := t.svc.Spreadsheets.Values.Clear(t.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func (t *table) LastRow(ctx context.Context) (int, error) {
	values, err := t.usedRange(ctx)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

func (t *table) LastColumn(ctx context.Context) (int, error) {
	values, err := t.usedRange(ctx)
	if err != nil {
		return 0, err
	}
	last := 0
	for _, row := range values {
		if len(row) > last {
			last = len(row)
		}
	}
	return last, nil
}

// usedRange fetches the sheet's occupied extent. The values API trims
// trailing empty rows and columns on its own.
func (t *table) usedRange(ctx context.Context) ([][]interface{}, error) {
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, quoteSheet(t.name)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}
	return resp.Values, nil
}

// columnLetter converts a 1-based column index to A1 letters: 1=A, 26=Z,
// 27=AA.
func columnLetter(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// rowFromRange extracts the row index from an updated range like
// "'Expenses'!A5:G5".
func rowFromRange(a1 string) (int, error) {
	ref := a1
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		ref = ref[:i]
	}
	digits := strings.TrimLeft(ref, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if digits == "" {
		return 0, fmt.Errorf("no row in range %q", a1)
	}
	var row int
	if _, err := fmt.Sscanf(digits, "%d", &row); err != nil || row < 1 {
		return 0, fmt.Errorf("bad row in range %q", a1)
	}
	return row, nil
}

// quoteSheet wraps a sheet title for A1 notation; embedded single quotes
// are doubled.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
