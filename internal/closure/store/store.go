package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/closure"
	"github.com/lmonteiro/pindureta/internal/transaction"
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

func scanClosure(s scanner) (*closure.Closure, error) {
	var c closure.Closure

	if err := s.Scan(
		&c.ID, &c.TotalReceived, &c.TotalDebts, &c.StartDate, &c.EndDate, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectClosureColumns = `
	id, total_received, total_debts, start_date, end_date, created_at
`

// CreateClosure inserts the closure row and stamps its membership inside a
// single database transaction, so a closure and its stamp appear together
// or not at all.
//
// The stamp is conditional on closure_id still being null. A transaction
// already claimed by an earlier closure is left untouched; a losing
// concurrent attempt stamps zero rows instead of overwriting the winner's
// claim.
func (s *Store) CreateClosure(ctx context.Context, c *closure.Closure, transactionIDs []uuid.UUID) (int64, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	insert := `
		INSERT INTO closures (total_received, total_debts, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insert,
		c.TotalReceived, c.TotalDebts, c.StartDate, c.EndDate,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting closure: %w", err)
	}

	var res sql.Result

	if len(transactionIDs) > 0 {
		stamp := `
			UPDATE transactions
			SET closure_id = $1
			WHERE id = ANY($2) AND closure_id IS NULL
		`
		res, err = dbTx.ExecContext(ctx, stamp, c.ID, transactionIDs)
	} else {
		stamp := `
			UPDATE transactions
			SET closure_id = $1
			WHERE closure_id IS NULL AND date BETWEEN $2 AND $3
		`
		res, err = dbTx.ExecContext(ctx, stamp, c.ID, c.StartDate, c.EndDate)
	}

	if err != nil {
		return 0, fmt.Errorf("stamping transactions: %w", err)
	}

	stamped, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting stamped transactions: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing closure: %w", err)
	}

	return stamped, nil
}

func (s *Store) ListClosures(ctx context.Context) ([]*closure.Closure, error) {
	query := `SELECT ` + selectClosureColumns + `
		FROM closures
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing closures: %w", err)
	}
	defer rows.Close()

	var closures []*closure.Closure

	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning closure: %w", err)
		}

		closures = append(closures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating closure rows: %w", err)
	}

	return closures, nil
}

func (s *Store) ListClosureTransactions(ctx context.Context, id uuid.UUID) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.customer_id, c.name AS customer_name, t.amount, t.description, t.date, t.closure_id
		FROM transactions t
		JOIN customers c ON c.id = t.customer_id
		WHERE t.closure_id = $1
		ORDER BY t.date DESC`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing closure transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var desc sql.NullString

		var date sql.NullTime

		if err := rows.Scan(
			&tx.ID, &tx.CustomerID, &tx.CustomerName, &tx.Amount, &desc, &date, &tx.ClosureID,
		); err != nil {
			return nil, fmt.Errorf("scanning closure transaction: %w", err)
		}

		tx.Description = desc.String
		tx.Date = date.Time

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating closure transaction rows: %w", err)
	}

	return txs, nil
}
