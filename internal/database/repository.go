// Package database declares the repository ports the domain core consumes.
// Every call is an I/O boundary even when backed by the in-memory adapter,
// which keeps the interfaces substitutable with Postgres.
package database

import (
	"context"
	"time"

	"github.com/velvet-labs/velvet/internal/entity"
)

// EventFilter narrows FindAll; zero values mean "any".
type EventFilter struct {
	OrganizerID string
	Status      entity.EventStatus
}

type EventRepository interface {
	Save(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	FindAll(ctx context.Context, filter EventFilter) ([]*entity.Event, error)
}

type AttendeeRepository interface {
	Save(ctx context.Context, attendee *entity.EventAttendee) error
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	FindByEvent(ctx context.Context, eventID string) ([]*entity.EventAttendee, error)
	// CountByEvent counts RSVPs still occupying a spot (everything but cancelled).
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

type WalletRepository interface {
	Save(ctx context.Context, wallet *entity.Wallet) error
	FindByUserID(ctx context.Context, userID string) (*entity.Wallet, error)
}

type SplitPaymentRepository interface {
	Save(ctx context.Context, split *entity.SplitPayment) error
	FindByID(ctx context.Context, id string) (*entity.SplitPayment, error)
}

type AvailabilityRepository interface {
	Save(ctx context.Context, availability *entity.VenueAvailability) error
	FindByID(ctx context.Context, id string) (*entity.VenueAvailability, error)
	FindByVenueAndDate(ctx context.Context, venueID string, date time.Time) (*entity.VenueAvailability, error)
	ListOpen(ctx context.Context) ([]*entity.VenueAvailability, error)
}

type ApplicationRepository interface {
	Save(ctx context.Context, application *entity.GigApplication) error
	FindByID(ctx context.Context, id string) (*entity.GigApplication, error)
	ListByAvailability(ctx context.Context, availabilityID string) ([]*entity.GigApplication, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type DistributionRepository interface {
	Save(ctx context.Context, distribution *entity.RevenueDistribution) error
	FindByID(ctx context.Context, id string) (*entity.RevenueDistribution, error)
	FindByEvent(ctx context.Context, eventID string) (*entity.RevenueDistribution, error)
}

// Repository bundles every port for composition-root wiring.
type Repository struct {
	Events         EventRepository
	Attendees      AttendeeRepository
	Wallets        WalletRepository
	Splits         SplitPaymentRepository
	Availabilities AvailabilityRepository
	Applications   ApplicationRepository
	Users          UserRepository
	Distributions  DistributionRepository
}
