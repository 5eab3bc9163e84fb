package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lmonteiro/pindureta/internal/transaction"
)

func TestService_Create(t *testing.T) {
	customerID := uuid.New()

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NewDebt",
			params: transaction.CreateParams{
				CustomerID:  customerID,
				Amount:      5000,
				Description: "Arroz",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, customerID, tx.CustomerID)
						assert.Nil(t, tx.ClosureID)
						tx.ID = uuid.New()
						tx.Date = time.Now()
						return nil
					})
			},
		},
		{
			name: "Payment",
			params: transaction.CreateParams{
				CustomerID:  customerID,
				Amount:      -2000,
				Description: "Pagamento",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, int64(-2000), tx.Amount)
						tx.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "UnknownCustomer",
			params: transaction.CreateParams{
				CustomerID: uuid.New(),
				Amount:     100,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(transaction.ErrCustomerNotFound)
			},
			wantErr: transaction.ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.Open())
		})
	}
}

func TestService_ListByCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListByCustomer(gomock.Any(), customerID).
		Return([]*transaction.Transaction{
			{ID: uuid.New(), CustomerID: customerID},
			{ID: uuid.New(), CustomerID: customerID},
		}, nil)

	svc := transaction.NewService(repo)

	txs, err := svc.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_ListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListAll(gomock.Any()).
		Return(nil, errors.New("db error"))

	svc := transaction.NewService(repo)

	_, err := svc.ListAll(context.Background())
	assert.Error(t, err)
}
