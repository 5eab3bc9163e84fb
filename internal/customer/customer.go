package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

// Customer represents a person buying on informal credit ("fiado").
type Customer struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	CreatedAt time.Time

	// Balance is the signed sum of the customer's transaction amounts in
	// cents, recomputed by the store on every read. Positive means the
	// customer owes money.
	Balance int64
}
