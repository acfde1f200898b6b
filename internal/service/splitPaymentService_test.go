package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/entity"
)

func TestSplitPaymentService_CreateAndPay(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	svc := NewSplitPaymentService(repo.Splits, locks)

	split, err := svc.CreateSplit(ctx, &CreateSplitRequest{
		TotalCents: 1000,
		Currency:   "EUR",
		Reason:     "table deposit",
		PayerIDs:   []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(334), split.Payers[0].Amount.AmountCents)

	split, err = svc.RecordPayment(ctx, split.ID, "a")
	require.NoError(t, err)
	assert.True(t, split.Payers[0].IsPaid)
	assert.Equal(t, entity.SplitPaymentStatusPending, split.Status)

	_, err = svc.RecordPayment(ctx, split.ID, "b")
	require.NoError(t, err)
	split, err = svc.RecordPayment(ctx, split.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, entity.SplitPaymentStatusCompleted, split.Status)

	t.Run("outsider", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, split.ID, "nobody")
		assert.ErrorIs(t, err, entity.ErrNotASplitPayer)
	})

	t.Run("unknown split", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, "ghost", "a")
		assert.ErrorIs(t, err, entity.ErrSplitNotFound)
	})
}

func TestSplitPaymentService_ConcurrentReplays(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	svc := NewSplitPaymentService(repo.Splits, locks)

	split, err := svc.CreateSplit(ctx, &CreateSplitRequest{
		TotalCents: 500,
		Currency:   "EUR",
		PayerIDs:   []string{"a", "b"},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPayment(ctx, split.ID, "a")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.GetSplit(ctx, split.ID)
	require.NoError(t, err)
	assert.True(t, stored.Payers[0].IsPaid)
	assert.False(t, stored.Payers[1].IsPaid)
	assert.Equal(t, entity.SplitPaymentStatusPending, stored.Status)
}
