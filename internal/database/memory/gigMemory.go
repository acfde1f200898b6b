package memory

import (
	"context"
	"sync"
	"time"

	"github.com/velvet-labs/velvet/internal/entity"
)

type AvailabilityRepository struct {
	mu             sync.RWMutex
	availabilities map[string]*entity.VenueAvailability
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{availabilities: make(map[string]*entity.VenueAvailability)}
}

func (r *AvailabilityRepository) Save(_ context.Context, availability *entity.VenueAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.availabilities[availability.ID] = copyAvailability(availability)
	return nil
}

func (r *AvailabilityRepository) FindByID(_ context.Context, id string) (*entity.VenueAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	availability, ok := r.availabilities[id]
	if !ok {
		return nil, entity.ErrAvailabilityNotFound
	}
	return copyAvailability(availability), nil
}

func (r *AvailabilityRepository) FindByVenueAndDate(_ context.Context, venueID string, date time.Time) (*entity.VenueAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := date.UTC().Truncate(24 * time.Hour)
	for _, v := range r.availabilities {
		if v.VenueID == venueID && v.Date.UTC().Truncate(24*time.Hour).Equal(day) {
			return copyAvailability(v), nil
		}
	}
	return nil, entity.ErrAvailabilityNotFound
}

func (r *AvailabilityRepository) ListOpen(_ context.Context) ([]*entity.VenueAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*entity.VenueAvailability
	for _, v := range r.availabilities {
		if v.AcceptsApplications() {
			res = append(res, copyAvailability(v))
		}
	}
	return res, nil
}

type ApplicationRepository struct {
	mu           sync.RWMutex
	applications map[string]*entity.GigApplication
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{applications: make(map[string]*entity.GigApplication)}
}

func (r *ApplicationRepository) Save(_ context.Context, application *entity.GigApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[application.ID] = copyApplication(application)
	return nil
}

func (r *ApplicationRepository) FindByID(_ context.Context, id string) (*entity.GigApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	application, ok := r.applications[id]
	if !ok {
		return nil, entity.ErrApplicationNotFound
	}
	return copyApplication(application), nil
}

func (r *ApplicationRepository) ListByAvailability(_ context.Context, availabilityID string) ([]*entity.GigApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*entity.GigApplication
	for _, g := range r.applications {
		if g.AvailabilityID == availabilityID {
			res = append(res, copyApplication(g))
		}
	}
	return res, nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, entity.ErrUserNotFound
}
