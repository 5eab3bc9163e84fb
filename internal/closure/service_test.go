package closure_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lmonteiro/pindureta/internal/closure"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

func TestService_Create(t *testing.T) {
	start := time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)

	ids := []uuid.UUID{uuid.New(), uuid.New()}

	type testCase struct {
		name      string
		params    closure.CreateParams
		setupMock func(m *closure.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "IdExactMode",
			params: closure.CreateParams{
				TotalReceived:  2000,
				TotalDebts:     5000,
				StartDate:      start,
				EndDate:        end,
				TransactionIDs: ids,
			},
			setupMock: func(m *closure.MockRepository) {
				m.EXPECT().
					CreateClosure(gomock.Any(), gomock.Any(), ids).
					DoAndReturn(func(_ context.Context, c *closure.Closure, txIDs []uuid.UUID) (int64, error) {
						assert.Equal(t, int64(2000), c.TotalReceived)
						assert.Equal(t, int64(5000), c.TotalDebts)
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return int64(len(txIDs)), nil
					})
			},
		},
		{
			name: "FallbackModeWithoutIds",
			params: closure.CreateParams{
				TotalReceived: 0,
				TotalDebts:    1500,
				StartDate:     start,
				EndDate:       end,
			},
			setupMock: func(m *closure.MockRepository) {
				m.EXPECT().
					CreateClosure(gomock.Any(), gomock.Any(), gomock.Len(0)).
					DoAndReturn(func(_ context.Context, c *closure.Closure, _ []uuid.UUID) (int64, error) {
						c.ID = uuid.New()
						return 3, nil
					})
			},
		},
		{
			name: "PartialStampIsNotAnError",
			params: closure.CreateParams{
				StartDate:      start,
				EndDate:        end,
				TransactionIDs: ids,
			},
			setupMock: func(m *closure.MockRepository) {
				// One of the listed transactions was already claimed; the
				// stamp skips it rather than reassigning ownership.
				m.EXPECT().
					CreateClosure(gomock.Any(), gomock.Any(), ids).
					DoAndReturn(func(_ context.Context, c *closure.Closure, _ []uuid.UUID) (int64, error) {
						c.ID = uuid.New()
						return 1, nil
					})
			},
		},
		{
			name: "RepoError",
			params: closure.CreateParams{
				StartDate: start,
				EndDate:   end,
			},
			setupMock: func(m *closure.MockRepository) {
				m.EXPECT().
					CreateClosure(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := closure.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := closure.NewService(repo, closure.NewMockTransactionLister(ctrl))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.StartDate, got.StartDate)
			assert.Equal(t, tt.params.EndDate, got.EndDate)
		})
	}
}

func TestService_Week(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC) // Wednesday
	w := closure.CurrentWeek(now)

	earlier := uuid.New()

	open1 := &transaction.Transaction{ID: uuid.New(), Amount: 5000, Date: now}
	open2 := &transaction.Transaction{ID: uuid.New(), Amount: -2000, Date: w.Start}
	zeroAmount := &transaction.Transaction{ID: uuid.New(), Amount: 0, Date: now}
	closed := &transaction.Transaction{ID: uuid.New(), Amount: 900, Date: now, ClosureID: &earlier}
	lastWeek := &transaction.Transaction{ID: uuid.New(), Amount: 700, Date: w.Start.AddDate(0, 0, -2)}
	noDate := &transaction.Transaction{ID: uuid.New(), Amount: 400}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := closure.NewMockTransactionLister(ctrl)
	lister.EXPECT().
		ListAll(gomock.Any()).
		Return([]*transaction.Transaction{open1, open2, zeroAmount, closed, lastWeek, noDate}, nil)

	svc := closure.NewService(closure.NewMockRepository(ctrl), lister)

	summary, err := svc.Week(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, summary.Window.Start.Equal(w.Start))
	assert.True(t, summary.Window.End.Equal(w.End))

	// Zero-amount entries stay closeable but count toward neither total.
	require.Len(t, summary.Transactions, 3)
	assert.Contains(t, summary.Transactions, open1)
	assert.Contains(t, summary.Transactions, open2)
	assert.Contains(t, summary.Transactions, zeroAmount)

	assert.Equal(t, int64(2000), summary.TotalReceived)
	assert.Equal(t, int64(5000), summary.TotalDebts)
}

func TestService_Week_ListerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := closure.NewMockTransactionLister(ctrl)
	lister.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db error"))

	svc := closure.NewService(closure.NewMockRepository(ctrl), lister)

	_, err := svc.Week(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestService_Transactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := closure.NewMockRepository(ctrl)
	repo.EXPECT().
		ListClosureTransactions(gomock.Any(), id).
		Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

	svc := closure.NewService(repo, closure.NewMockTransactionLister(ctrl))

	txs, err := svc.Transactions(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
