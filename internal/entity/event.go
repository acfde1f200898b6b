package entity

import (
	"fmt"
	"time"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Event is the lifecycle aggregate for a party/gig. All transitions go
// through the methods below; repositories only read the fields.
type Event struct {
	ID             string      `json:"id" db:"id"`
	OrganizerID    string      `json:"organizer_id" db:"organizer_id"`
	Title          string      `json:"title" db:"title"`
	Description    string      `json:"description" db:"description"`
	Type           string      `json:"type" db:"type"`
	Genre          string      `json:"genre" db:"genre"`
	Status         EventStatus `json:"status" db:"status"`
	StartTime      time.Time   `json:"start_time" db:"start_time"`
	EndTime        time.Time   `json:"end_time" db:"end_time"`
	Location       string      `json:"location" db:"location"`
	VenueID        *string     `json:"venue_id,omitempty" db:"venue_id"`
	MaxCapacity    *int        `json:"max_capacity,omitempty" db:"max_capacity"`
	IsEscrowFunded bool        `json:"is_escrow_funded" db:"is_escrow_funded"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

type NewEventInput struct {
	OrganizerID string
	Title       string
	Description string
	Type        string
	Genre       string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	VenueID     *string
	MaxCapacity *int
}

func NewEvent(id string, in NewEventInput) (*Event, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.OrganizerID == "" {
		return nil, fmt.Errorf("%w: organizer is required", ErrValidation)
	}
	now := time.Now().UTC()
	e := &Event{
		ID:          id,
		OrganizerID: in.OrganizerID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Genre:       in.Genre,
		Status:      EventStatusDraft,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		VenueID:     in.VenueID,
		MaxCapacity: in.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate re-checks the construction invariant; adapters call it on load.
func (e *Event) Validate() error {
	if !e.EndTime.After(e.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	return nil
}

// Publish moves a draft with an assigned venue to published.
func (e *Event) Publish() error {
	if e.Status != EventStatusDraft {
		return fmt.Errorf("%w: cannot publish event %s in status %s", ErrIllegalTransition, e.ID, e.Status)
	}
	if e.VenueID == nil || *e.VenueID == "" {
		return fmt.Errorf("%w: event %s", ErrVenueRequired, e.ID)
	}
	e.Status = EventStatusPublished
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkAsFunded records that escrow is in place. Idempotent; only a published
// event is promoted to confirmed, any other status keeps its status.
func (e *Event) MarkAsFunded() {
	e.IsEscrowFunded = true
	if e.Status == EventStatusPublished {
		e.Status = EventStatusConfirmed
	}
	e.UpdatedAt = time.Now().UTC()
}

// Cancel is allowed from any status except completed. Cancelling an already
// cancelled event is a no-op, not an error.
func (e *Event) Cancel() error {
	if e.Status == EventStatusCompleted {
		return fmt.Errorf("%w: cannot cancel completed event %s", ErrIllegalTransition, e.ID)
	}
	e.Status = EventStatusCancelled
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete is terminal and only reachable from published or confirmed.
func (e *Event) Complete() error {
	if e.Status != EventStatusPublished && e.Status != EventStatusConfirmed {
		return fmt.Errorf("%w: cannot complete event %s in status %s", ErrIllegalTransition, e.ID, e.Status)
	}
	e.Status = EventStatusCompleted
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// AcceptsRSVPs reports whether the event is open for attendance.
func (e *Event) AcceptsRSVPs() bool {
	return e.Status == EventStatusPublished || e.Status == EventStatusConfirmed
}
