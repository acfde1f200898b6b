package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRevenueDistribution(t *testing.T) {
	t.Run("fee then fixed costs", func(t *testing.T) {
		dist, err := NewRevenueDistribution("dst-1", "evt-1", eur(100000), 10, []FixedCost{
			{RecipientID: "dj-1", Role: "dj", Amount: eur(50000)},
			{RecipientID: "venue-1", Role: "venue", Amount: eur(30000)},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(10000), dist.PlatformFee.AmountCents)
		assert.Equal(t, int64(90000), dist.NetRevenue.AmountCents)
		require.Len(t, dist.Recipients, 2)
		assert.Equal(t, RecipientStatusPending, dist.Recipients[0].Status)
		assert.Equal(t, int64(10000), dist.Remainder().AmountCents)
		assert.Equal(t, DistributionStatusPending, dist.Status)
	})

	t.Run("costs overrun net revenue", func(t *testing.T) {
		_, err := NewRevenueDistribution("dst-1", "evt-1", eur(100000), 10, []FixedCost{
			{RecipientID: "dj-1", Role: "dj", Amount: eur(50000)},
			{RecipientID: "venue-1", Role: "venue", Amount: eur(50000)},
		})
		assert.ErrorIs(t, err, ErrInsufficientRevenue)
	})

	t.Run("exact coverage is fine", func(t *testing.T) {
		dist, err := NewRevenueDistribution("dst-1", "evt-1", eur(100000), 10, []FixedCost{
			{RecipientID: "dj-1", Role: "dj", Amount: eur(90000)},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), dist.Remainder().AmountCents)
	})

	t.Run("invalid percentage", func(t *testing.T) {
		_, err := NewRevenueDistribution("dst-1", "evt-1", eur(100000), 101, nil)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = NewRevenueDistribution("dst-1", "evt-1", eur(100000), -1, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRevenueDistribution_MarkProcessed(t *testing.T) {
	dist, err := NewRevenueDistribution("dst-1", "evt-1", eur(50000), 0, []FixedCost{
		{RecipientID: "dj-1", Role: "dj", Amount: eur(20000)},
	})
	require.NoError(t, err)

	dist.MarkProcessed()
	assert.Equal(t, DistributionStatusProcessed, dist.Status)
	assert.NotNil(t, dist.ProcessedAt)
	assert.Equal(t, RecipientStatusPaid, dist.Recipients[0].Status)

	firstProcessedAt := *dist.ProcessedAt
	dist.MarkProcessed()
	assert.Equal(t, firstProcessedAt, *dist.ProcessedAt)
}
