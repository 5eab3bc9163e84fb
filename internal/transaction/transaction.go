package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Transaction is one ledger entry. Amount is signed cents: positive is new
// debt, negative is a payment received.
//
// Transactions are never edited in place. The only field that ever changes
// after creation is ClosureID, which moves from nil to a closure id exactly
// once when a weekly closure claims the transaction.
type Transaction struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string // loaded via JOIN
	Amount       int64  // amount in cents, signed
	Description  string
	Date         time.Time
	ClosureID    *uuid.UUID // nil while the transaction is still open
}

// Open reports whether the transaction has not yet been claimed by a
// closure.
func (t *Transaction) Open() bool {
	return t.ClosureID == nil
}
