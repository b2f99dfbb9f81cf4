package ledger

import (
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// dateLayouts are the calendar date formats accepted on input. Parsing is
// strict: out-of-range days ("2025-02-30") are rejected.
var dateLayouts = []string{"2006-01-02", "2006/01/02"}

// Validate narrows an untyped request payload into a typed Request. It is
// a pure function of its input: no I/O, no clock. Every rejection is a
// *Error with Kind ValidationFailed naming the offending field.
func Validate(payload map[string]interface{}) (Request, error) {
	action, err := validateAction(payload)
	if err != nil {
		return Request{}, err
	}
	if action == ActionInitSheet {
		return Request{Action: action}, nil
	}

	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		return Request{}, invalidField("data", "missing or not an object")
	}
	rec, err := validateExpense(data)
	if err != nil {
		return Request{}, err
	}
	return Request{Action: action, Record: &rec}, nil
}

func validateAction(payload map[string]interface{}) (string, error) {
	v, ok := payload["action"]
	if !ok {
		return "", invalidField("action", "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField("action", "has type %T, want string", v)
	}
	switch s {
	case ActionAddExpense, ActionInitSheet:
		return s, nil
	}
	return "", invalidField("action", "unsupported action %q", s)
}

func validateExpense(data map[string]interface{}) (ExpenseRecord, error) {
	dateStr, err := stringField(data, "date")
	if err != nil {
		return ExpenseRecord{}, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return ExpenseRecord{}, err
	}

	item, err := stringField(data, "item")
	if err != nil {
		return ExpenseRecord{}, err
	}
	category, err := stringField(data, "category")
	if err != nil {
		return ExpenseRecord{}, err
	}
	paymentMethod, err := stringField(data, "paymentMethod")
	if err != nil {
		return ExpenseRecord{}, err
	}
	amount, err := parseAmount(data["amount"])
	if err != nil {
		return ExpenseRecord{}, err
	}

	return ExpenseRecord{
		Date:          date,
		Item:          item,
		Category:      category,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Note:          optionalString(data, "note"),
	}, nil
}

// stringField requires a present, non-blank (post-trim) string value.
func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", invalidField(key, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField(key, "has type %T, want string", v)
	}
	if strings.TrimSpace(s) == "" {
		return "", invalidField(key, "blank")
	}
	return s, nil
}

func optionalString(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// parseAmount accepts a JSON number or a numeric string and requires a
// finite value >= 0.
func parseAmount(v interface{}) (float64, error) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, invalidField("amount", "missing")
	case float64:
		f = val
	case int:
		f = float64(val)
	case string:
		if strings.TrimSpace(val) == "" {
			return 0, invalidField("amount", "blank")
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, invalidField("amount", "not a number: %q", val)
		}
		f = parsed
	default:
		return 0, invalidField("amount", "has type %T, want number or string", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidField("amount", "not a finite number")
	}
	if f < 0 {
		return 0, invalidField("amount", "negative: %v", f)
	}
	return f, nil
}

func parseDate(s string) (civil.Date, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, invalidField("date", "not a calendar date: %q", s)
}
