package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueAvailability_Transitions(t *testing.T) {
	v, err := NewVenueAvailability("ava-1", "venue-1", time.Now().Add(7*24*time.Hour), eur(50000), "2am close")
	require.NoError(t, err)
	assert.Equal(t, AvailabilityStatusOpen, v.Status)
	assert.True(t, v.AcceptsApplications())

	require.NoError(t, v.MarkNegotiating())
	assert.Equal(t, AvailabilityStatusNegotiating, v.Status)
	assert.True(t, v.AcceptsApplications())

	// second application arriving keeps it negotiating
	require.NoError(t, v.MarkNegotiating())

	require.NoError(t, v.Book())
	assert.Equal(t, AvailabilityStatusBooked, v.Status)
	assert.False(t, v.AcceptsApplications())

	assert.ErrorIs(t, v.Book(), ErrIllegalTransition)
	assert.ErrorIs(t, v.MarkNegotiating(), ErrIllegalTransition)
}

func TestVenueAvailability_BookDirectlyFromOpen(t *testing.T) {
	v, _ := NewVenueAvailability("ava-1", "venue-1", time.Now(), eur(0), "")
	require.NoError(t, v.Book())
	assert.Equal(t, AvailabilityStatusBooked, v.Status)
}

func TestGigApplication_AcceptReject(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		g, err := NewGigApplication("app-1", "ava-1", "dj-1", "deep house all night")
		require.NoError(t, err)
		require.NoError(t, g.Accept())
		assert.Equal(t, ApplicationStatusAccepted, g.Status)
		assert.ErrorIs(t, g.Accept(), ErrIllegalTransition)
		assert.ErrorIs(t, g.Reject(), ErrIllegalTransition)
	})

	t.Run("reject", func(t *testing.T) {
		g, _ := NewGigApplication("app-1", "ava-1", "dj-1", "")
		require.NoError(t, g.Reject())
		assert.Equal(t, ApplicationStatusRejected, g.Status)
		assert.ErrorIs(t, g.Accept(), ErrIllegalTransition)
	})

	t.Run("dj required", func(t *testing.T) {
		_, err := NewGigApplication("app-1", "ava-1", "", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
