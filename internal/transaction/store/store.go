package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lmonteiro/pindureta/internal/transaction"
)

const pgForeignKeyViolation = "23503"

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

// scanTransaction reads a transaction row. Expected column order:
// id, customer_id, customer_name, amount, description, date, closure_id
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var desc sql.NullString

	var date sql.NullTime

	var closureID *uuid.UUID

	if err := s.Scan(
		&tx.ID, &tx.CustomerID, &tx.CustomerName, &tx.Amount, &desc, &date, &closureID,
	); err != nil {
		return nil, err
	}

	tx.Description = desc.String
	// A row with an unusable date keeps the zero time; window computations
	// skip it instead of failing.
	tx.Date = date.Time
	tx.ClosureID = closureID

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.customer_id, c.name AS customer_name, t.amount, t.description, t.date, t.closure_id
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (customer_id, amount, description)
		VALUES ($1, $2, $3)
		RETURNING id, date
	`

	var desc any
	if tx.Description != "" {
		desc = tx.Description
	}

	err := s.db.QueryRowContext(ctx, query, tx.CustomerID, tx.Amount, desc).
		Scan(&tx.ID, &tx.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return transaction.ErrCustomerNotFound
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		JOIN customers c ON c.id = t.customer_id
		WHERE t.customer_id = $1
		ORDER BY t.date DESC`

	return s.list(ctx, query, customerID)
}

func (s *Store) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		JOIN customers c ON c.id = t.customer_id
		ORDER BY t.date DESC`

	return s.list(ctx, query)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
