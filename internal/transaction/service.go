package transaction

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	CustomerID  uuid.UUID
	Amount      int64 // signed cents: positive debt, negative payment
	Description string
}

// Create inserts a new ledger entry. The entry date is set by the store at
// insertion time and is not caller-controlled.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		CustomerID:  params.CustomerID,
		Amount:      params.Amount,
		Description: params.Description,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// ListByCustomer returns a customer's ledger, newest first. An unknown
// customer yields an empty list, not an error.
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListAll returns every transaction joined with its customer's name,
// newest first.
func (s *Service) ListAll(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListAll(ctx)
}
