package closure

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/closure"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type closureResponse struct {
	ID            uuid.UUID `json:"id"`
	TotalReceived int64     `json:"total_received"`
	TotalDebts    int64     `json:"total_debts"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(c *closure.Closure) closureResponse {
	return closureResponse{
		ID:            c.ID,
		TotalReceived: c.TotalReceived,
		TotalDebts:    c.TotalDebts,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		CreatedAt:     c.CreatedAt,
	}
}

func toResponseList(closures []*closure.Closure) []closureResponse {
	resp := make([]closureResponse, len(closures))
	for i, c := range closures {
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

type weekResponse struct {
	StartDate     time.Time             `json:"start_date"`
	EndDate       time.Time             `json:"end_date"`
	TotalReceived int64                 `json:"total_received"`
	TotalDebts    int64                 `json:"total_debts"`
	Transactions  []transactionResponse `json:"transactions"`
}

func toWeekResponse(s *closure.WeekSummary) weekResponse {
	return weekResponse{
		StartDate:     s.Window.Start,
		EndDate:       s.Window.End,
		TotalReceived: s.TotalReceived,
		TotalDebts:    s.TotalDebts,
		Transactions:  toTransactionResponseList(s.Transactions),
	}
}
