package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/customer"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type customerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}

type transactionResponse struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description,omitempty"`
	Date         time.Time  `json:"date"`
	ClosureID    *uuid.UUID `json:"closure_id,omitempty"`
}

func toTransactionResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = transactionResponse{
			ID:           tx.ID,
			CustomerID:   tx.CustomerID,
			CustomerName: tx.CustomerName,
			Amount:       tx.Amount,
			Description:  tx.Description,
			Date:         tx.Date,
			ClosureID:    tx.ClosureID,
		}
	}

	return resp
}
