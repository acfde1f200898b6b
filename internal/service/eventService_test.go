package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

func newEventFixture(t *testing.T) (EventService, *database.Repository) {
	t.Helper()
	repo, locks := newTestFixture()
	return NewEventService(repo.Events, locks), repo
}

func createRequest() *CreateEventRequest {
	venue := "venue-1"
	return &CreateEventRequest{
		OrganizerID: "organizer-1",
		Title:       "Rooftop Sundowner",
		StartTime:   time.Now().Add(48 * time.Hour),
		EndTime:     time.Now().Add(54 * time.Hour),
		VenueID:     &venue,
	}
}

func TestEventService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventFixture(t)

	event, err := svc.CreateEvent(ctx, createRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusDraft, event.Status)

	event, err = svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusPublished, event.Status)

	event, err = svc.MarkAsFunded(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusConfirmed, event.Status)
	assert.True(t, event.IsEscrowFunded)

	event, err = svc.CompleteEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusCompleted, event.Status)
}

func TestEventService_CreateRejectsBadWindow(t *testing.T) {
	svc, _ := newEventFixture(t)

	req := createRequest()
	req.EndTime = req.StartTime.Add(-time.Hour)
	_, err := svc.CreateEvent(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestEventService_CancelCompleted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventFixture(t)

	event, err := svc.CreateEvent(ctx, createRequest())
	require.NoError(t, err)
	_, err = svc.PublishEvent(ctx, event.ID)
	require.NoError(t, err)
	_, err = svc.CompleteEvent(ctx, event.ID)
	require.NoError(t, err)

	_, err = svc.CancelEvent(ctx, event.ID)
	assert.ErrorIs(t, err, entity.ErrIllegalTransition)
}

func TestEventService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventFixture(t)

	a, err := svc.CreateEvent(ctx, createRequest())
	require.NoError(t, err)
	_, err = svc.PublishEvent(ctx, a.ID)
	require.NoError(t, err)

	req := createRequest()
	req.OrganizerID = "organizer-2"
	_, err = svc.CreateEvent(ctx, req)
	require.NoError(t, err)

	published, err := svc.ListEvents(ctx, database.EventFilter{Status: entity.EventStatusPublished})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, a.ID, published[0].ID)

	byOrganizer, err := svc.ListEvents(ctx, database.EventFilter{OrganizerID: "organizer-2"})
	require.NoError(t, err)
	assert.Len(t, byOrganizer, 1)

	all, err := svc.ListEvents(ctx, database.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventService_GetUnknown(t *testing.T) {
	svc, _ := newEventFixture(t)
	_, err := svc.GetEvent(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}
