package closure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lmonteiro/pindureta/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=closure
type Repository interface {
	// CreateClosure persists the closure and stamps its membership in one
	// atomic step. With a non-empty id list the list is the authoritative
	// membership set; otherwise membership falls back to all open
	// transactions dated within the closure window. Either way the stamp
	// only ever claims transactions whose closure_id is still null.
	CreateClosure(ctx context.Context, c *Closure, transactionIDs []uuid.UUID) (stamped int64, err error)

	ListClosures(ctx context.Context) ([]*Closure, error)
	ListClosureTransactions(ctx context.Context, id uuid.UUID) ([]*transaction.Transaction, error)
}

// TransactionLister supplies the full transaction set for window
// computations.
type TransactionLister interface {
	ListAll(ctx context.Context) ([]*transaction.Transaction, error)
}

type Service struct {
	repo Repository
	txs  TransactionLister
}

func NewService(repo Repository, txs TransactionLister) *Service {
	return &Service{repo: repo, txs: txs}
}

type CreateParams struct {
	TotalReceived int64
	TotalDebts    int64
	StartDate     time.Time
	EndDate       time.Time

	// TransactionIDs selects membership exactly when non-empty. When
	// empty, membership is every open transaction dated within
	// [StartDate, EndDate]. The two modes are deliberately different:
	// id-exact ignores dates, the fallback ignores ids.
	TransactionIDs []uuid.UUID
}

// Create performs the settlement: it records the closure snapshot and
// stamps the member transactions with the new closure id. Stamped
// transactions are permanently excluded from future open-window
// selections and from future fallback-mode closures.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Closure, error) {
	c := &Closure{
		TotalReceived: params.TotalReceived,
		TotalDebts:    params.TotalDebts,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	}

	stamped, err := s.repo.CreateClosure(ctx, c, params.TransactionIDs)
	if err != nil {
		return nil, fmt.Errorf("creating closure: %w", err)
	}

	if n := len(params.TransactionIDs); n > 0 && stamped < int64(n) {
		// Some listed transactions were already claimed by an earlier
		// closure or no longer exist. The stamp never overwrites an
		// existing claim, so the shortfall is logged, not failed.
		slog.Warn("closure stamped fewer transactions than requested",
			"closure_id", c.ID, "requested", n, "stamped", stamped)
	}

	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Closure, error) {
	return s.repo.ListClosures(ctx)
}

// Transactions returns the transactions stamped with the given closure id,
// joined with their customer names. An unknown id yields an empty list.
func (s *Service) Transactions(ctx context.Context, id uuid.UUID) ([]*transaction.Transaction, error) {
	return s.repo.ListClosureTransactions(ctx, id)
}

// WeekSummary describes the current open settlement window.
type WeekSummary struct {
	Window        Window
	Transactions  []*transaction.Transaction
	TotalReceived int64
	TotalDebts    int64
}

// Week computes the open transactions of the calendar week containing now
// together with the candidate closure totals.
func (s *Service) Week(ctx context.Context, now time.Time) (*WeekSummary, error) {
	all, err := s.txs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	w := CurrentWeek(now)
	open := OpenInWindow(all, w)
	received, debts := SumBuckets(open)

	return &WeekSummary{
		Window:        w,
		Transactions:  open,
		TotalReceived: received,
		TotalDebts:    debts,
	}, nil
}
