package service

import (
	"context"
	"time"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	PublishEvent(ctx context.Context, id string) (*entity.Event, error)
	MarkAsFunded(ctx context.Context, id string) (*entity.Event, error)
	CancelEvent(ctx context.Context, id string) (*entity.Event, error)
	CompleteEvent(ctx context.Context, id string) (*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	ListEvents(ctx context.Context, filter database.EventFilter) ([]*entity.Event, error)
}

type AttendanceService interface {
	RSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	CheckIn(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	CancelRSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	ConfirmRSVP(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	ExcuseAttendee(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)
	ListAttendees(ctx context.Context, eventID string) ([]*entity.EventAttendee, error)
}

type GigService interface {
	PostAvailability(ctx context.Context, req *PostAvailabilityRequest) (*entity.VenueAvailability, error)
	ListOpenAvailabilities(ctx context.Context) ([]*entity.VenueAvailability, error)
	ApplyToGig(ctx context.Context, req *ApplyToGigRequest) (*entity.GigApplication, error)
	AcceptApplication(ctx context.Context, applicationID string, req *AcceptApplicationRequest) (*entity.Event, error)
	RejectApplication(ctx context.Context, applicationID string) (*entity.GigApplication, error)
}

type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*entity.Wallet, error)
	Deposit(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error)
	Withdraw(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error)
	LockFunds(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error)
	ReleaseFunds(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error)
	ProvisionWallet(ctx context.Context, userID string) error
}

type SplitPaymentService interface {
	CreateSplit(ctx context.Context, req *CreateSplitRequest) (*entity.SplitPayment, error)
	RecordPayment(ctx context.Context, splitID, userID string) (*entity.SplitPayment, error)
	GetSplit(ctx context.Context, splitID string) (*entity.SplitPayment, error)
}

type RevenueService interface {
	CalculateDistribution(ctx context.Context, req *CalculateDistributionRequest) (*entity.RevenueDistribution, error)
	ProcessDistribution(ctx context.Context, distributionID string) (*entity.RevenueDistribution, error)
	GetDistribution(ctx context.Context, distributionID string) (*entity.RevenueDistribution, error)
}

// NoShowReport summarizes one penalty sweep over a completed event.
type NoShowReport struct {
	EventID   string `json:"event_id"`
	Processed int    `json:"processed"`
	Penalized int    `json:"penalized"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

type NoShowService interface {
	ProcessEvent(ctx context.Context, eventID string) (*NoShowReport, error)
	ListCompletedEvents(ctx context.Context) ([]*entity.Event, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UseInvite(ctx context.Context, userID string) (*entity.User, error)
	RecordDebt(ctx context.Context, userID string, amount entity.Money) (*entity.User, error)
	SettleDebt(ctx context.Context, userID string, amount entity.Money) (*entity.User, error)
	HandleEventAttended(ctx context.Context, userID, eventID string) error
}

type CreateEventRequest struct {
	OrganizerID string    `json:"organizer_id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Type        string    `json:"type"`
	Genre       string    `json:"genre"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location"`
	VenueID     *string   `json:"venue_id,omitempty"`
	MaxCapacity *int      `json:"max_capacity,omitempty"`
}

type PostAvailabilityRequest struct {
	VenueID           string    `json:"venue_id" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	MinGuaranteeCents int64     `json:"min_guarantee_cents" binding:"min=0"`
	Currency          string    `json:"currency" binding:"required,len=3"`
	Terms             string    `json:"terms"`
}

type ApplyToGigRequest struct {
	AvailabilityID string `json:"availability_id" binding:"required"`
	DJID           string `json:"dj_id" binding:"required"`
	Proposal       string `json:"proposal" binding:"max=2000"`
}

// AcceptApplicationRequest describes the draft event created on acceptance.
// Every field is optional; omissions fall back to the availability's venue
// and date.
type AcceptApplicationRequest struct {
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	Genre     string     `json:"genre"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

type CreateSplitRequest struct {
	TotalCents int64    `json:"total_cents" binding:"required,min=1"`
	Currency   string   `json:"currency" binding:"required,len=3"`
	Reason     string   `json:"reason" binding:"max=500"`
	PayerIDs   []string `json:"payer_ids" binding:"required,min=1"`
}

type CalculateDistributionRequest struct {
	EventID        string             `json:"event_id" binding:"required"`
	TotalCents     int64              `json:"total_cents" binding:"required,min=0"`
	Currency       string             `json:"currency" binding:"required,len=3"`
	// PlatformFeePct overrides the configured platform fee when set.
	PlatformFeePct *float64           `json:"platform_fee_pct" binding:"omitempty,min=0,max=100"`
	FixedCosts     []FixedCostRequest `json:"fixed_costs"`
}

type FixedCostRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Role        string `json:"role"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=0"`
}

type RegisterUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Role  string `json:"role" binding:"required,oneof=fan dj founder venue admin"`
}
