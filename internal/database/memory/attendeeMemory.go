package memory

import (
	"context"
	"sync"

	"github.com/velvet-labs/velvet/internal/entity"
)

type AttendeeRepository struct {
	mu        sync.RWMutex
	attendees map[string]*entity.EventAttendee
}

func NewAttendeeRepository() *AttendeeRepository {
	return &AttendeeRepository{attendees: make(map[string]*entity.EventAttendee)}
}

func (r *AttendeeRepository) Save(_ context.Context, attendee *entity.EventAttendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attendees[attendee.ID] = copyAttendee(attendee)
	return nil
}

func (r *AttendeeRepository) FindByEventAndUser(_ context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attendees {
		if a.EventID == eventID && a.UserID == userID {
			return copyAttendee(a), nil
		}
	}
	return nil, entity.ErrAttendeeNotFound
}

func (r *AttendeeRepository) FindByEvent(_ context.Context, eventID string) ([]*entity.EventAttendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*entity.EventAttendee
	for _, a := range r.attendees {
		if a.EventID == eventID {
			res = append(res, copyAttendee(a))
		}
	}
	return res, nil
}

func (r *AttendeeRepository) CountByEvent(_ context.Context, eventID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, a := range r.attendees {
		if a.EventID == eventID && a.CountsTowardCapacity() {
			count++
		}
	}
	return count, nil
}
