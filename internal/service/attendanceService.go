package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

// AttendedPublisher decouples attendance from whoever reacts to check-ins.
type AttendedPublisher interface {
	PublishUserAttended(event entity.UserAttendedEvent)
}

type attendanceService struct {
	events    database.EventRepository
	attendees database.AttendeeRepository
	users     database.UserRepository
	publisher AttendedPublisher
	locks     *keylock.KeyLock
}

func NewAttendanceService(
	events database.EventRepository,
	attendees database.AttendeeRepository,
	users database.UserRepository,
	publisher AttendedPublisher,
	locks *keylock.KeyLock,
) AttendanceService {
	return &attendanceService{
		events:    events,
		attendees: attendees,
		users:     users,
		publisher: publisher,
		locks:     locks,
	}
}

// RSVP admits a user to an event. Capacity and uniqueness are checked inside
// the event's lock, so concurrent RSVPs for the last spot serialize.
func (s *attendanceService) RSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	var attendee *entity.EventAttendee
	err := s.locks.Do("event:"+eventID, func() error {
		event, err := s.events.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.AcceptsRSVPs() {
			return fmt.Errorf("%w: event %s is %s", entity.ErrIllegalTransition, eventID, event.Status)
		}

		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.HasOutstandingDebt() {
			return fmt.Errorf("%w: user %s owes %s", entity.ErrOutstandingDebt, userID, user.OutstandingDebt)
		}

		if _, err := s.attendees.FindByEventAndUser(ctx, eventID, userID); err == nil {
			return fmt.Errorf("%w: user %s already on event %s", entity.ErrAlreadyRSVPed, userID, eventID)
		} else if !errors.Is(err, entity.ErrAttendeeNotFound) {
			return err
		}

		if event.MaxCapacity != nil {
			count, err := s.attendees.CountByEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if count >= *event.MaxCapacity {
				return fmt.Errorf("%w: event %s at capacity %d", entity.ErrEventFull, eventID, *event.MaxCapacity)
			}
		}

		attendee = entity.NewEventAttendee(uuid.NewString(), eventID, userID)
		if err := s.attendees.Save(ctx, attendee); err != nil {
			return fmt.Errorf("save rsvp: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attendee, nil
}

// CheckIn marks the attendee present and announces it on the bus. Listeners
// handle attendance counters and invite unlocks asynchronously.
func (s *attendanceService) CheckIn(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	attendee, err := s.mutate(ctx, eventID, userID, (*entity.EventAttendee).CheckIn)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishUserAttended(entity.UserAttendedEvent{UserID: userID, EventID: eventID})
	return attendee, nil
}

func (s *attendanceService) CancelRSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	return s.mutate(ctx, eventID, userID, (*entity.EventAttendee).Cancel)
}

func (s *attendanceService) ConfirmRSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	return s.mutate(ctx, eventID, userID, (*entity.EventAttendee).Confirm)
}

func (s *attendanceService) ExcuseAttendee(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	return s.mutate(ctx, eventID, userID, func(a *entity.EventAttendee) error {
		a.Excuse()
		return nil
	})
}

func (s *attendanceService) mutate(ctx context.Context, eventID, userID string, transition func(*entity.EventAttendee) error) (*entity.EventAttendee, error) {
	var attendee *entity.EventAttendee
	err := s.locks.Do("event:"+eventID, func() error {
		var err error
		attendee, err = s.attendees.FindByEventAndUser(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if err := transition(attendee); err != nil {
			return err
		}
		if err := s.attendees.Save(ctx, attendee); err != nil {
			return fmt.Errorf("save attendee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attendee, nil
}

func (s *attendanceService) ListAttendees(ctx context.Context, eventID string) ([]*entity.EventAttendee, error) {
	return s.attendees.FindByEvent(ctx, eventID)
}
