package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/database/memory"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func eur(cents int64) entity.Money {
	return entity.Money{AmountCents: cents, Currency: "EUR"}
}

type fakePublisher struct {
	mu       sync.Mutex
	created  []entity.UserCreated
	attended []entity.UserAttendedEvent
}

func (p *fakePublisher) PublishUserCreated(ev entity.UserCreated) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, ev)
}

func (p *fakePublisher) PublishUserAttended(ev entity.UserAttendedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attended = append(p.attended, ev)
}

func (p *fakePublisher) attendedEvents() []entity.UserAttendedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.UserAttendedEvent(nil), p.attended...)
}

func seedUser(t *testing.T, repo *database.Repository, role entity.UserRole) *entity.User {
	t.Helper()
	user, err := entity.NewUser(uuid.NewString(), uuid.NewString()+"@velvet.club", "Sam", role, "EUR")
	require.NoError(t, err)
	require.NoError(t, repo.Users.Save(context.Background(), user))
	return user
}

func seedPublishedEvent(t *testing.T, repo *database.Repository, maxCapacity *int) *entity.Event {
	t.Helper()
	venue := "venue-1"
	event, err := entity.NewEvent(uuid.NewString(), entity.NewEventInput{
		OrganizerID: "organizer-1",
		Title:       "Basement Session",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(30 * time.Hour),
		VenueID:     &venue,
		MaxCapacity: maxCapacity,
	})
	require.NoError(t, err)
	require.NoError(t, event.Publish())
	require.NoError(t, repo.Events.Save(context.Background(), event))
	return event
}

func newTestFixture() (*database.Repository, *keylock.KeyLock) {
	return memory.NewRepository(), keylock.New()
}
