package closure

import (
	"time"

	"github.com/lmonteiro/pindureta/internal/transaction"
)

// Window is a settlement period with inclusive bounds.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CurrentWeek returns the calendar week containing now. Weeks start on
// Sunday: Start is Sunday 00:00:00 and End is the last instant of the
// following Saturday.
func CurrentWeek(now time.Time) Window {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := day.AddDate(0, 0, -int(now.Weekday()))

	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}

// OpenInWindow selects the transactions that are still open and dated
// within the window. A transaction without a usable date (zero time) is
// skipped rather than failing the whole selection.
func OpenInWindow(txs []*transaction.Transaction, w Window) []*transaction.Transaction {
	var open []*transaction.Transaction

	for _, tx := range txs {
		if !tx.Open() {
			continue
		}

		if tx.Date.IsZero() || !w.Contains(tx.Date) {
			continue
		}

		open = append(open, tx)
	}

	return open
}

// SumBuckets splits transactions by sign and returns the candidate closure
// totals: received is the absolute value of the payment sum, debts is the
// sum of the positive amounts. A zero-amount transaction counts toward
// neither bucket but remains closeable by id.
func SumBuckets(txs []*transaction.Transaction) (received, debts int64) {
	for _, tx := range txs {
		switch {
		case tx.Amount < 0:
			received += -tx.Amount
		case tx.Amount > 0:
			debts += tx.Amount
		}
	}

	return received, debts
}
