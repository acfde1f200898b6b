package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

type eventService struct {
	events database.EventRepository
	locks  *keylock.KeyLock
}

func NewEventService(events database.EventRepository, locks *keylock.KeyLock) EventService {
	return &eventService{events: events, locks: locks}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	event, err := entity.NewEvent(uuid.NewString(), entity.NewEventInput{
		OrganizerID: req.OrganizerID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Genre:       req.Genre,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		VenueID:     req.VenueID,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) PublishEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, (*entity.Event).Publish)
}

func (s *eventService) MarkAsFunded(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, func(e *entity.Event) error {
		e.MarkAsFunded()
		return nil
	})
}

func (s *eventService) CancelEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, (*entity.Event).Cancel)
}

func (s *eventService) CompleteEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, (*entity.Event).Complete)
}

// transition runs a load-mutate-save cycle under the event's lock so
// concurrent state changes on the same event serialize.
func (s *eventService) transition(ctx context.Context, id string, mutate func(*entity.Event) error) (*entity.Event, error) {
	var event *entity.Event
	err := s.locks.Do("event:"+id, func() error {
		var err error
		event, err = s.events.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(event); err != nil {
			return err
		}
		if err := s.events.Save(ctx, event); err != nil {
			return fmt.Errorf("save event %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, filter database.EventFilter) ([]*entity.Event, error) {
	return s.events.FindAll(ctx, filter)
}
