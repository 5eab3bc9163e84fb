package store

import (
	"context"
	"database/sql/driver"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmonteiro/pindureta/internal/closure"
)

// pgxValues converts arguments the way the pgx stdlib driver does: Valuers
// are unwrapped and slice arguments pass through for array encoding.
type pgxValues struct{}

func (pgxValues) ConvertValue(v any) (driver.Value, error) {
	if driver.IsValue(v) {
		return v, nil
	}

	if valuer, ok := v.(driver.Valuer); ok {
		return valuer.Value()
	}

	return v, nil
}

// idList matches a []uuid.UUID argument by exact content.
type idList []uuid.UUID

func (l idList) Match(v driver.Value) bool {
	ids, ok := v.([]uuid.UUID)
	return ok && reflect.DeepEqual(ids, []uuid.UUID(l))
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(pgxValues{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db), mock
}

func TestStore_CreateClosure_Stamping(t *testing.T) {
	start := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

	newClosure := func() *closure.Closure {
		return &closure.Closure{
			TotalReceived: 2500,
			TotalDebts:    6000,
			StartDate:     start,
			EndDate:       end,
		}
	}

	expectInsert := func(mock sqlmock.Sqlmock, c *closure.Closure, id uuid.UUID) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO closures (total_received, total_debts, start_date, end_date) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		)).
			WithArgs(c.TotalReceived, c.TotalDebts, c.StartDate, c.EndDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow(id.String(), time.Now()))
	}

	// Both stamp statements must refuse rows that already belong to a
	// closure; losing that guard would let a later closure overwrite an
	// earlier one's claim.
	stampByID := regexp.QuoteMeta(
		`UPDATE transactions SET closure_id = $1 WHERE id = ANY($2) AND closure_id IS NULL`,
	)
	stampByWindow := regexp.QuoteMeta(
		`UPDATE transactions SET closure_id = $1 WHERE closure_id IS NULL AND date BETWEEN $2 AND $3`,
	)

	t.Run("IdExactStampSkipsSettledRows", func(t *testing.T) {
		store, mock := newMockStore(t)

		c := newClosure()
		closureID := uuid.New()
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		expectInsert(mock, c, closureID)
		// One of the three requested rows is already settled.
		mock.ExpectExec(stampByID).
			WithArgs(closureID.String(), idList(ids)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		stamped, err := store.CreateClosure(context.Background(), c, ids)

		require.NoError(t, err)
		assert.Equal(t, int64(2), stamped)
		assert.Equal(t, closureID, c.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FallbackStampOnlyTouchesOpenRowsInWindow", func(t *testing.T) {
		store, mock := newMockStore(t)

		c := newClosure()
		closureID := uuid.New()

		expectInsert(mock, c, closureID)
		mock.ExpectExec(stampByWindow).
			WithArgs(closureID.String(), c.StartDate, c.EndDate).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		stamped, err := store.CreateClosure(context.Background(), c, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(3), stamped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RepeatOverSettledIdsStampsNothing", func(t *testing.T) {
		store, mock := newMockStore(t)

		c := newClosure()
		closureID := uuid.New()
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		expectInsert(mock, c, closureID)
		// Every requested row was stamped by an earlier closure; the guard
		// filters them all, and the repeat reports zero rows instead of
		// re-stamping.
		mock.ExpectExec(stampByID).
			WithArgs(closureID.String(), idList(ids)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		stamped, err := store.CreateClosure(context.Background(), c, ids)

		require.NoError(t, err)
		assert.Equal(t, int64(0), stamped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StampErrorRollsBack", func(t *testing.T) {
		store, mock := newMockStore(t)

		c := newClosure()
		closureID := uuid.New()
		ids := []uuid.UUID{uuid.New()}

		expectInsert(mock, c, closureID)
		mock.ExpectExec(stampByID).
			WithArgs(closureID.String(), idList(ids)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := store.CreateClosure(context.Background(), c, ids)

		require.Error(t, err)
		assert.ErrorContains(t, err, "stamping transactions")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
