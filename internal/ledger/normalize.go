package ledger

import (
	"time"
)

// timestampLayout formats the server-stamped recordedAt cell. The wall
// clock is rendered in the configured location, Asia/Taipei in production.
const timestampLayout = "2006/01/02 15:04:05"

// Clock supplies the current time. Injected so tests can pin the
// recordedAt stamp instead of depending on wall-clock behavior.
type Clock func() time.Time

// Normalizer converts validated records into canonical rows.
type Normalizer struct {
	now Clock
	loc *time.Location
}

func NewNormalizer(now Clock, loc *time.Location) *Normalizer {
	return &Normalizer{now: now, loc: loc}
}

// Row produces the fixed-order 7-cell row for a validated record. The
// first six cells carry the record's fields in header order; the seventh
// is the recordedAt stamp taken at call time, never from client input.
func (n *Normalizer) Row(rec ExpenseRecord) Row {
	return Row{
		rec.Date.String(),
		rec.Item,
		rec.Category,
		rec.Amount,
		rec.PaymentMethod,
		rec.Note,
		n.now().In(n.loc).Format(timestampLayout),
	}
}
