package closure

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("closure not found")

// Closure is a write-once settlement snapshot of a batch of transactions.
// Once created it is never updated, reopened, merged, split or deleted.
//
// TotalReceived and TotalDebts are the totals the caller computed when it
// requested the closure, stored as given. Membership is held on the
// transaction side via closure_id; the closure itself carries no
// transaction list.
type Closure struct {
	ID            uuid.UUID
	TotalReceived int64 // cents, absolute value of the payments included
	TotalDebts    int64 // cents, sum of the debts included
	StartDate     time.Time
	EndDate       time.Time
	CreatedAt     time.Time
}
