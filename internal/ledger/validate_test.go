package ledger

import (
	"errors"
	"testing"
)

func validData() map[string]interface{} {
	return map[string]interface{}{
		"date":          "2025-08-28",
		"item":          "Lunch",
		"category":      "Food",
		"amount":        "150.50",
		"paymentMethod": "Card",
	}
}

func envelope(action string, data map[string]interface{}) map[string]interface{} {
	p := map[string]interface{}{"action": action}
	if data != nil {
		p["data"] = data
	}
	return p
}

func TestValidate_Actions(t *testing.T) {
	tests := []struct {
		name      string
		payload   map[string]interface{}
		wantField string
	}{
		{
			name:      "missing action",
			payload:   map[string]interface{}{},
			wantField: "action",
		},
		{
			name:      "non-string action",
			payload:   map[string]interface{}{"action": 42.0},
			wantField: "action",
		},
		{
			name:      "unknown action",
			payload:   envelope("unknown", nil),
			wantField: "action",
		},
		{
			name:    "initSheet needs only the action",
			payload: envelope(ActionInitSheet, nil),
		},
		{
			name:      "addExpense without data",
			payload:   envelope(ActionAddExpense, nil),
			wantField: "data",
		},
		{
			name:    "addExpense with valid data",
			payload: envelope(ActionAddExpense, validData()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.payload)
			checkFieldError(t, err, tt.wantField)
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	for _, field := range []string{"date", "item", "category", "amount", "paymentMethod"} {
		t.Run("missing "+field, func(t *testing.T) {
			data := validData()
			delete(data, field)
			_, err := Validate(envelope(ActionAddExpense, data))
			checkFieldError(t, err, field)
		})
		t.Run("blank "+field, func(t *testing.T) {
			data := validData()
			data[field] = "   "
			_, err := Validate(envelope(ActionAddExpense, data))
			checkFieldError(t, err, field)
		})
	}

	t.Run("note is optional", func(t *testing.T) {
		req, err := Validate(envelope(ActionAddExpense, validData()))
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if req.Record.Note != "" {
			t.Errorf("Note = %q, want empty default", req.Record.Note)
		}
	})
}

func TestValidate_Amount(t *testing.T) {
	tests := []struct {
		name    string
		amount  interface{}
		want    float64
		wantErr bool
	}{
		{name: "decimal string", amount: "150.50", want: 150.5},
		{name: "integer string", amount: "10", want: 10},
		{name: "zero", amount: "0", want: 0},
		{name: "json number", amount: 99.9, want: 99.9},
		{name: "padded string", amount: " 25 ", want: 25},
		{name: "negative string", amount: "-5", wantErr: true},
		{name: "negative number", amount: -1.0, wantErr: true},
		{name: "not numeric", amount: "lots", wantErr: true},
		{name: "NaN string parses but is rejected", amount: "NaN", wantErr: true},
		{name: "infinity rejected", amount: "Inf", wantErr: true},
		{name: "boolean", amount: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			data["amount"] = tt.amount
			req, err := Validate(envelope(ActionAddExpense, data))
			if tt.wantErr {
				checkFieldError(t, err, "amount")
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if req.Record.Amount != tt.want {
				t.Errorf("Amount = %v, want %v", req.Record.Amount, tt.want)
			}
		})
	}
}

func TestValidate_Date(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    string
		wantErr bool
	}{
		{name: "iso date", date: "2025-08-28", want: "2025-08-28"},
		{name: "slash date", date: "2025/08/28", want: "2025-08-28"},
		{name: "day out of range", date: "2025-02-30", wantErr: true},
		{name: "not a date", date: "yesterday", wantErr: true},
		{name: "time only", date: "15:04", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			data["date"] = tt.date
			req, err := Validate(envelope(ActionAddExpense, data))
			if tt.wantErr {
				checkFieldError(t, err, "date")
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := req.Record.Date.String(); got != tt.want {
				t.Errorf("Date = %q, want %q", got, tt.want)
			}
		})
	}
}

// checkFieldError asserts err is a ValidationFailed error naming field,
// or nil when field is "".
func checkFieldError(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *ledger.Error for field %q", err, field)
	}
	if le.Kind != ValidationFailed {
		t.Errorf("Kind = %v, want %v", le.Kind, ValidationFailed)
	}
	if le.Field != field {
		t.Errorf("Field = %q, want %q", le.Field, field)
	}
}
