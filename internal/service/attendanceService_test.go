package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

func newAttendanceFixture(t *testing.T) (AttendanceService, *fixture) {
	t.Helper()
	repo, locks := newTestFixture()
	pub := &fakePublisher{}
	svc := NewAttendanceService(repo.Events, repo.Attendees, repo.Users, pub, locks)
	return svc, &fixture{repo: repo, pub: pub}
}

type fixture struct {
	repo *database.Repository
	pub  *fakePublisher
}

func TestAttendanceService_RSVP(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		event := seedPublishedEvent(t, f.repo, nil)
		user := seedUser(t, f.repo, entity.UserRoleFan)

		attendee, err := svc.RSVP(ctx, event.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.AttendeeStatusPending, attendee.Status)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		event := seedPublishedEvent(t, f.repo, nil)
		user := seedUser(t, f.repo, entity.UserRoleFan)

		_, err := svc.RSVP(ctx, event.ID, user.ID)
		require.NoError(t, err)
		_, err = svc.RSVP(ctx, event.ID, user.ID)
		assert.ErrorIs(t, err, entity.ErrAlreadyRSVPed)
	})

	t.Run("unpublished event", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		user := seedUser(t, f.repo, entity.UserRoleFan)
		event, err := entity.NewEvent("evt-draft", entity.NewEventInput{
			OrganizerID: "org-1",
			Title:       "Secret",
			StartTime:   time.Now().Add(24 * time.Hour),
			EndTime:     time.Now().Add(30 * time.Hour),
		})
		require.NoError(t, err)
		require.NoError(t, f.repo.Events.Save(ctx, event))

		_, err = svc.RSVP(ctx, event.ID, user.ID)
		assert.ErrorIs(t, err, entity.ErrIllegalTransition)
	})

	t.Run("debt gate", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		event := seedPublishedEvent(t, f.repo, nil)
		user := seedUser(t, f.repo, entity.UserRoleFan)
		require.NoError(t, user.RecordDebt(eur(1)))
		require.NoError(t, f.repo.Users.Save(ctx, user))

		_, err := svc.RSVP(ctx, event.ID, user.ID)
		assert.ErrorIs(t, err, entity.ErrOutstandingDebt)

		// exactly zero debt passes
		require.NoError(t, user.SettleDebt(eur(1)))
		require.NoError(t, f.repo.Users.Save(ctx, user))
		_, err = svc.RSVP(ctx, event.ID, user.ID)
		require.NoError(t, err)
	})

	t.Run("capacity", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		capacity := 2
		event := seedPublishedEvent(t, f.repo, &capacity)

		for i := 0; i < 2; i++ {
			user := seedUser(t, f.repo, entity.UserRoleFan)
			_, err := svc.RSVP(ctx, event.ID, user.ID)
			require.NoError(t, err)
		}

		extra := seedUser(t, f.repo, entity.UserRoleFan)
		_, err := svc.RSVP(ctx, event.ID, extra.ID)
		assert.ErrorIs(t, err, entity.ErrEventFull)
	})

	t.Run("cancelled spot is freed", func(t *testing.T) {
		svc, f := newAttendanceFixture(t)
		capacity := 1
		event := seedPublishedEvent(t, f.repo, &capacity)
		first := seedUser(t, f.repo, entity.UserRoleFan)
		second := seedUser(t, f.repo, entity.UserRoleFan)

		_, err := svc.RSVP(ctx, event.ID, first.ID)
		require.NoError(t, err)
		_, err = svc.CancelRSVP(ctx, event.ID, first.ID)
		require.NoError(t, err)

		_, err = svc.RSVP(ctx, event.ID, second.ID)
		require.NoError(t, err)
	})
}

func TestAttendanceService_RSVPConcurrentRace(t *testing.T) {
	ctx := context.Background()
	svc, f := newAttendanceFixture(t)

	capacity := 5
	event := seedPublishedEvent(t, f.repo, &capacity)

	users := make([]*entity.User, capacity+1)
	for i := range users {
		users[i] = seedUser(t, f.repo, entity.UserRoleFan)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, user := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = svc.RSVP(ctx, event.ID, userID)
		}(i, user.ID)
	}
	wg.Wait()

	successes, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, entity.ErrEventFull)
			full++
		}
	}
	assert.Equal(t, capacity, successes)
	assert.Equal(t, 1, full)
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	svc, f := newAttendanceFixture(t)
	event := seedPublishedEvent(t, f.repo, nil)
	user := seedUser(t, f.repo, entity.UserRoleFan)

	_, err := svc.RSVP(ctx, event.ID, user.ID)
	require.NoError(t, err)

	attendee, err := svc.CheckIn(ctx, event.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendeeStatusAttended, attendee.Status)

	attended := f.pub.attendedEvents()
	require.Len(t, attended, 1)
	assert.Equal(t, user.ID, attended[0].UserID)
	assert.Equal(t, event.ID, attended[0].EventID)

	// failed check-in publishes nothing
	_, err = svc.CheckIn(ctx, event.ID, user.ID)
	require.ErrorIs(t, err, entity.ErrAlreadyCheckedIn)
	assert.Len(t, f.pub.attendedEvents(), 1)
}

func TestAttendanceService_CheckInUnknownAttendee(t *testing.T) {
	ctx := context.Background()
	svc, f := newAttendanceFixture(t)
	event := seedPublishedEvent(t, f.repo, nil)

	_, err := svc.CheckIn(ctx, event.ID, "stranger")
	assert.ErrorIs(t, err, entity.ErrAttendeeNotFound)
}

func TestAttendanceService_Excuse(t *testing.T) {
	ctx := context.Background()
	svc, f := newAttendanceFixture(t)
	event := seedPublishedEvent(t, f.repo, nil)
	user := seedUser(t, f.repo, entity.UserRoleFan)

	_, err := svc.RSVP(ctx, event.ID, user.ID)
	require.NoError(t, err)

	attendee, err := svc.ExcuseAttendee(ctx, event.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendeeStatusExcused, attendee.Status)
}
