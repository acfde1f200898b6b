package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

func newGigFixture(t *testing.T) (GigService, *database.Repository) {
	t.Helper()
	repo, locks := newTestFixture()
	svc := NewGigService(repo.Availabilities, repo.Applications, repo.Events, locks, quietLogger())
	return svc, repo
}

func postAvailability(t *testing.T, svc GigService, venueID string, date time.Time) *entity.VenueAvailability {
	t.Helper()
	availability, err := svc.PostAvailability(context.Background(), &PostAvailabilityRequest{
		VenueID:           venueID,
		Date:              date,
		MinGuaranteeCents: 50000,
		Currency:          "EUR",
		Terms:             "doors at 23:00",
	})
	require.NoError(t, err)
	return availability
}

func TestGigService_PostAvailability(t *testing.T) {
	svc, _ := newGigFixture(t)
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	postAvailability(t, svc, "venue-1", date)

	t.Run("same venue same date", func(t *testing.T) {
		_, err := svc.PostAvailability(context.Background(), &PostAvailabilityRequest{
			VenueID:  "venue-1",
			Date:     date.Add(3 * time.Hour),
			Currency: "EUR",
		})
		assert.ErrorIs(t, err, entity.ErrAvailabilityTaken)
	})

	t.Run("other venue same date", func(t *testing.T) {
		postAvailability(t, svc, "venue-2", date)
	})

	t.Run("same venue other date", func(t *testing.T) {
		postAvailability(t, svc, "venue-1", date.AddDate(0, 0, 1))
	})
}

func TestGigService_ApplyToGig(t *testing.T) {
	ctx := context.Background()
	svc, repo := newGigFixture(t)
	availability := postAvailability(t, svc, "venue-1", time.Now().AddDate(0, 0, 14))

	application, err := svc.ApplyToGig(ctx, &ApplyToGigRequest{
		AvailabilityID: availability.ID,
		DJID:           "dj-1",
		Proposal:       "disco till dawn",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusPending, application.Status)

	stored, err := repo.Availabilities.FindByID(ctx, availability.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AvailabilityStatusNegotiating, stored.Status)

	t.Run("booked date rejects applications", func(t *testing.T) {
		_, err := svc.AcceptApplication(ctx, application.ID, nil)
		require.NoError(t, err)

		_, err = svc.ApplyToGig(ctx, &ApplyToGigRequest{
			AvailabilityID: availability.ID,
			DJID:           "dj-2",
		})
		assert.ErrorIs(t, err, entity.ErrIllegalTransition)
	})
}

func TestGigService_AcceptApplication(t *testing.T) {
	ctx := context.Background()
	svc, repo := newGigFixture(t)
	availability := postAvailability(t, svc, "venue-1", time.Now().AddDate(0, 0, 14))

	winner, err := svc.ApplyToGig(ctx, &ApplyToGigRequest{AvailabilityID: availability.ID, DJID: "dj-1", Proposal: "techno"})
	require.NoError(t, err)
	loser, err := svc.ApplyToGig(ctx, &ApplyToGigRequest{AvailabilityID: availability.ID, DJID: "dj-2", Proposal: "house"})
	require.NoError(t, err)

	event, err := svc.AcceptApplication(ctx, winner.ID, &AcceptApplicationRequest{
		Title: "Warehouse Takeover",
		Genre: "techno",
	})
	require.NoError(t, err)

	assert.Equal(t, "dj-1", event.OrganizerID)
	assert.Equal(t, entity.EventStatusDraft, event.Status)
	assert.Equal(t, "Warehouse Takeover", event.Title)
	assert.Equal(t, "techno", event.Genre)
	require.NotNil(t, event.VenueID)
	assert.Equal(t, "venue-1", *event.VenueID)

	booked, err := repo.Availabilities.FindByID(ctx, availability.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AvailabilityStatusBooked, booked.Status)

	accepted, err := repo.Applications.FindByID(ctx, winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusAccepted, accepted.Status)

	rejected, err := repo.Applications.FindByID(ctx, loser.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusRejected, rejected.Status)

	t.Run("double accept fails", func(t *testing.T) {
		_, err := svc.AcceptApplication(ctx, winner.ID, nil)
		assert.ErrorIs(t, err, entity.ErrIllegalTransition)
	})
}

type flakyAvailabilityRepo struct {
	database.AvailabilityRepository
	failSaves bool
}

func (r *flakyAvailabilityRepo) Save(ctx context.Context, availability *entity.VenueAvailability) error {
	if r.failSaves {
		return errors.New("storage down")
	}
	return r.AvailabilityRepository.Save(ctx, availability)
}

func TestGigService_AcceptCompensatesFailedBooking(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	flaky := &flakyAvailabilityRepo{AvailabilityRepository: repo.Availabilities}
	svc := NewGigService(flaky, repo.Applications, repo.Events, locks, quietLogger())

	availability := postAvailability(t, svc, "venue-1", time.Now().AddDate(0, 0, 14))
	application, err := svc.ApplyToGig(ctx, &ApplyToGigRequest{AvailabilityID: availability.ID, DJID: "dj-1"})
	require.NoError(t, err)

	flaky.failSaves = true
	_, err = svc.AcceptApplication(ctx, application.ID, nil)
	require.Error(t, err)

	// the application is restored so the acceptance can be retried
	restored, err := repo.Applications.FindByID(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusPending, restored.Status)

	stored, err := repo.Availabilities.FindByID(ctx, availability.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AvailabilityStatusNegotiating, stored.Status)

	t.Run("retry succeeds once storage recovers", func(t *testing.T) {
		flaky.failSaves = false
		event, err := svc.AcceptApplication(ctx, application.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "dj-1", event.OrganizerID)
	})
}
