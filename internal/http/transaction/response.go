package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description,omitempty"`
	Date         time.Time  `json:"date"`
	ClosureID    *uuid.UUID `json:"closure_id,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		CustomerID:   tx.CustomerID,
		CustomerName: tx.CustomerName,
		Amount:       tx.Amount,
		Description:  tx.Description,
		Date:         tx.Date,
		ClosureID:    tx.ClosureID,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
