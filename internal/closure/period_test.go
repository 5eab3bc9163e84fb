package closure_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmonteiro/pindureta/internal/closure"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

func TestCurrentWeek(t *testing.T) {
	type testCase struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{
			name:      "MidWeek",
			now:       time.Date(2024, 7, 10, 15, 30, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),    // Sunday
			wantEnd:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "OnSunday",
			now:       time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "OnSaturdayNight",
			now:       time.Date(2024, 7, 13, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := closure.CurrentWeek(tt.now)

			assert.True(t, w.Start.Equal(tt.wantStart), "start: got %v want %v", w.Start, tt.wantStart)
			assert.True(t, w.End.Equal(tt.wantEnd), "end: got %v want %v", w.End, tt.wantEnd)
		})
	}
}

func TestWindowContains_InclusiveBoundaries(t *testing.T) {
	w := closure.CurrentWeek(time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC))

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.End.Add(time.Nanosecond)))
}

func TestOpenInWindow(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	w := closure.CurrentWeek(now)

	earlier := uuid.New()

	inWindow := &transaction.Transaction{ID: uuid.New(), Amount: 5000, Date: now}
	atStart := &transaction.Transaction{ID: uuid.New(), Amount: -2000, Date: w.Start}
	atEnd := &transaction.Transaction{ID: uuid.New(), Amount: 1000, Date: w.End}
	beforeWindow := &transaction.Transaction{ID: uuid.New(), Amount: 700, Date: w.Start.Add(-time.Nanosecond)}
	afterWindow := &transaction.Transaction{ID: uuid.New(), Amount: 700, Date: w.End.Add(time.Nanosecond)}
	alreadyClosed := &transaction.Transaction{ID: uuid.New(), Amount: 900, Date: now, ClosureID: &earlier}
	noDate := &transaction.Transaction{ID: uuid.New(), Amount: 300}

	open := closure.OpenInWindow([]*transaction.Transaction{
		inWindow, atStart, atEnd, beforeWindow, afterWindow, alreadyClosed, noDate,
	}, w)

	require.Len(t, open, 3)
	assert.Equal(t, []*transaction.Transaction{inWindow, atStart, atEnd}, open)
}

func TestOpenInWindow_CorruptDateDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	w := closure.CurrentWeek(now)

	good := &transaction.Transaction{ID: uuid.New(), Amount: 100, Date: now}
	corrupt := &transaction.Transaction{ID: uuid.New(), Amount: 100} // zero date

	open := closure.OpenInWindow([]*transaction.Transaction{corrupt, good}, w)

	require.Len(t, open, 1)
	assert.Equal(t, good, open[0])
}

func TestSumBuckets(t *testing.T) {
	type testCase struct {
		name         string
		txs          []*transaction.Transaction
		wantReceived int64
		wantDebts    int64
	}

	tests := []testCase{
		{
			name: "MixedSigns",
			txs: []*transaction.Transaction{
				{Amount: 5000},
				{Amount: -2000},
				{Amount: 1500},
				{Amount: -500},
			},
			wantReceived: 2500,
			wantDebts:    6500,
		},
		{
			name: "ZeroAmountInNeitherBucket",
			txs: []*transaction.Transaction{
				{Amount: 0},
				{Amount: 100},
			},
			wantReceived: 0,
			wantDebts:    100,
		},
		{
			name:         "Empty",
			txs:          nil,
			wantReceived: 0,
			wantDebts:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			received, debts := closure.SumBuckets(tt.txs)

			assert.Equal(t, tt.wantReceived, received)
			assert.Equal(t, tt.wantDebts, debts)
		})
	}
}
