package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventInput() NewEventInput {
	venue := "venue-1"
	return NewEventInput{
		OrganizerID: "organizer-1",
		Title:       "Warehouse Rave",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(30 * time.Hour),
		VenueID:     &venue,
	}
}

func TestNewEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		event, err := NewEvent("evt-1", validEventInput())
		require.NoError(t, err)
		assert.Equal(t, EventStatusDraft, event.Status)
		assert.False(t, event.IsEscrowFunded)
	})

	t.Run("end before start", func(t *testing.T) {
		in := validEventInput()
		in.EndTime = in.StartTime.Add(-time.Hour)
		_, err := NewEvent("evt-1", in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("end equals start", func(t *testing.T) {
		in := validEventInput()
		in.EndTime = in.StartTime
		_, err := NewEvent("evt-1", in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing title", func(t *testing.T) {
		in := validEventInput()
		in.Title = ""
		_, err := NewEvent("evt-1", in)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestEvent_Publish(t *testing.T) {
	t.Run("draft with venue", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		assert.Equal(t, EventStatusPublished, event.Status)
	})

	t.Run("without venue", func(t *testing.T) {
		in := validEventInput()
		in.VenueID = nil
		event, _ := NewEvent("evt-1", in)
		assert.ErrorIs(t, event.Publish(), ErrVenueRequired)
	})

	t.Run("not draft", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		assert.ErrorIs(t, event.Publish(), ErrIllegalTransition)
	})
}

func TestEvent_MarkAsFunded(t *testing.T) {
	t.Run("published becomes confirmed", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		event.MarkAsFunded()
		assert.Equal(t, EventStatusConfirmed, event.Status)
		assert.True(t, event.IsEscrowFunded)
	})

	t.Run("draft keeps status", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		event.MarkAsFunded()
		assert.Equal(t, EventStatusDraft, event.Status)
		assert.True(t, event.IsEscrowFunded)
	})

	t.Run("idempotent", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		event.MarkAsFunded()
		event.MarkAsFunded()
		assert.Equal(t, EventStatusConfirmed, event.Status)
	})
}

func TestEvent_Cancel(t *testing.T) {
	t.Run("from published", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		require.NoError(t, event.Cancel())
		assert.Equal(t, EventStatusCancelled, event.Status)
	})

	t.Run("re-cancel is a no-op", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Cancel())
		require.NoError(t, event.Cancel())
		assert.Equal(t, EventStatusCancelled, event.Status)
	})

	t.Run("completed cannot cancel", func(t *testing.T) {
		event, _ := NewEvent("evt-1", validEventInput())
		require.NoError(t, event.Publish())
		require.NoError(t, event.Complete())
		assert.ErrorIs(t, event.Cancel(), ErrIllegalTransition)
	})
}

func TestEvent_Complete(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*Event)
		wantErr bool
	}{
		{"from published", func(e *Event) { _ = e.Publish() }, false},
		{"from confirmed", func(e *Event) { _ = e.Publish(); e.MarkAsFunded() }, false},
		{"from draft", func(e *Event) {}, true},
		{"from cancelled", func(e *Event) { _ = e.Cancel() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, _ := NewEvent("evt-1", validEventInput())
			tt.prepare(event)
			err := event.Complete()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIllegalTransition)
			} else {
				require.NoError(t, err)
				assert.Equal(t, EventStatusCompleted, event.Status)
			}
		})
	}
}

func TestEvent_AcceptsRSVPs(t *testing.T) {
	event, _ := NewEvent("evt-1", validEventInput())
	assert.False(t, event.AcceptsRSVPs())

	require.NoError(t, event.Publish())
	assert.True(t, event.AcceptsRSVPs())

	event.MarkAsFunded()
	assert.True(t, event.AcceptsRSVPs())

	require.NoError(t, event.Complete())
	assert.False(t, event.AcceptsRSVPs())
}
