package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var phone sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &phone, &c.CreatedAt, &c.Balance); err != nil {
		return nil, err
	}

	c.Phone = phone.String

	return &c, nil
}

// Balances are derived from the transaction log on every read. There is no
// stored balance column to keep in sync.
const selectCustomerColumns = `
	c.id, c.name, c.phone, c.created_at,
	COALESCE(SUM(t.amount), 0) AS balance
`

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	var phone any
	if c.Phone != "" {
		phone = c.Phone
	}

	err := s.db.QueryRowContext(ctx, query, c.Name, phone).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers c
		LEFT JOIN transactions t ON t.customer_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers c
		LEFT JOIN transactions t ON t.customer_id = c.id
		GROUP BY c.id
		ORDER BY balance DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

// DeleteCustomer removes the customer and every transaction they own,
// inside one database transaction. Closures referencing those transactions
// survive; their membership queries simply come back empty.
func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("deleting customer transactions: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}
