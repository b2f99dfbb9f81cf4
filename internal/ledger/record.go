// Package ledger implements the expense append pipeline: payload
// validation, header reconciliation against the canonical column layout,
// row normalization and the single-row append itself.
package ledger

import (
	"cloud.google.com/go/civil"
)

// Actions recognized in the request envelope.
const (
	ActionAddExpense = "addExpense"
	ActionInitSheet  = "initSheet"
)

// canonicalHeader is the persisted schema contract. The first row of the
// managed table must equal this sequence before any data row is appended.
// Changing it requires a migration of existing sheets.
var canonicalHeader = []string{
	"Date",
	"Item",
	"Category",
	"Amount",
	"Payment Method",
	"Note",
	"Recorded At",
}

// Header returns a copy of the canonical column layout.
func Header() []string {
	h := make([]string, len(canonicalHeader))
	copy(h, canonicalHeader)
	return h
}

// ExpenseRecord is one validated expense. Untrusted payloads only become
// an ExpenseRecord through Validate.
type ExpenseRecord struct {
	Date          civil.Date // parsed from "date", no timezone normalization
	Item          string
	Category      string
	Amount        float64 // parsed from "amount", finite and >= 0
	PaymentMethod string
	Note          string // optional, defaults to ""
}

// Row is one canonical table row: the six record cells in header order
// plus the server-stamped recordedAt cell.
type Row []interface{}

// Request is the outcome of validating an envelope: the recognized action
// and, for addExpense, the narrowed record.
type Request struct {
	Action string
	Record *ExpenseRecord
}
