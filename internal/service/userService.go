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

// CreatedPublisher announces registrations; wallet provisioning listens.
type CreatedPublisher interface {
	PublishUserCreated(event entity.UserCreated)
}

type userService struct {
	users           database.UserRepository
	publisher       CreatedPublisher
	locks           *keylock.KeyLock
	defaultCurrency string
}

func NewUserService(users database.UserRepository, publisher CreatedPublisher, locks *keylock.KeyLock, defaultCurrency string) UserService {
	return &userService{
		users:           users,
		publisher:       publisher,
		locks:           locks,
		defaultCurrency: defaultCurrency,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", entity.ErrValidation, req.Email)
	} else if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, err
	}

	user, err := entity.NewUser(uuid.NewString(), req.Email, req.Name, entity.UserRole(req.Role), s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.publisher.PublishUserCreated(entity.UserCreated{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) UseInvite(ctx context.Context, userID string) (*entity.User, error) {
	return s.mutate(ctx, userID, (*entity.User).UseInvite)
}

func (s *userService) RecordDebt(ctx context.Context, userID string, amount entity.Money) (*entity.User, error) {
	return s.mutate(ctx, userID, func(u *entity.User) error {
		return u.RecordDebt(amount)
	})
}

func (s *userService) SettleDebt(ctx context.Context, userID string, amount entity.Money) (*entity.User, error) {
	return s.mutate(ctx, userID, func(u *entity.User) error {
		return u.SettleDebt(amount)
	})
}

// HandleEventAttended consumes check-in announcements: bumps the attendance
// counter and, for a first-time fan, unlocks invite credits.
func (s *userService) HandleEventAttended(ctx context.Context, userID, eventID string) error {
	_, err := s.mutate(ctx, userID, func(u *entity.User) error {
		u.MarkEventAttended()
		return nil
	})
	if err != nil {
		return fmt.Errorf("record attendance of user %s at event %s: %w", userID, eventID, err)
	}
	return nil
}

func (s *userService) mutate(ctx context.Context, userID string, op func(*entity.User) error) (*entity.User, error) {
	var user *entity.User
	err := s.locks.Do("user:"+userID, func() error {
		var err error
		user, err = s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := op(user); err != nil {
			return err
		}
		if err := s.users.Save(ctx, user); err != nil {
			return fmt.Errorf("save user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
