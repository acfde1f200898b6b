package memory

import (
	"context"
	"sync"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*entity.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*entity.Event)}
}

func (r *EventRepository) Save(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = copyEvent(event)
	return nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	return copyEvent(event), nil
}

func (r *EventRepository) FindAll(_ context.Context, filter database.EventFilter) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*entity.Event
	for _, event := range r.events {
		if filter.OrganizerID != "" && event.OrganizerID != filter.OrganizerID {
			continue
		}
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		res = append(res, copyEvent(event))
	}
	return res, nil
}
