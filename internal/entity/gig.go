package entity

import (
	"fmt"
	"time"
)

type AvailabilityStatus string

const (
	AvailabilityStatusOpen        AvailabilityStatus = "open"
	AvailabilityStatusNegotiating AvailabilityStatus = "negotiating"
	AvailabilityStatusBooked      AvailabilityStatus = "booked"
)

// VenueAvailability is a venue's open date on the gig marketplace, unique per
// (venue, date).
type VenueAvailability struct {
	ID           string             `json:"id" db:"id"`
	VenueID      string             `json:"venue_id" db:"venue_id"`
	Date         time.Time          `json:"date" db:"date"`
	MinGuarantee Money              `json:"min_guarantee"`
	Terms        string             `json:"terms" db:"terms"`
	Status       AvailabilityStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}

func NewVenueAvailability(id, venueID string, date time.Time, minGuarantee Money, terms string) (*VenueAvailability, error) {
	if venueID == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrValidation)
	}
	now := time.Now().UTC()
	return &VenueAvailability{
		ID:           id,
		VenueID:      venueID,
		Date:         date,
		MinGuarantee: minGuarantee,
		Terms:        terms,
		Status:       AvailabilityStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// MarkNegotiating flags the date once applications start arriving. No-op if
// already negotiating.
func (v *VenueAvailability) MarkNegotiating() error {
	switch v.Status {
	case AvailabilityStatusOpen:
		v.Status = AvailabilityStatusNegotiating
		v.UpdatedAt = time.Now().UTC()
		return nil
	case AvailabilityStatusNegotiating:
		return nil
	default:
		return fmt.Errorf("%w: availability %s is %s", ErrIllegalTransition, v.ID, v.Status)
	}
}

// Book closes the date. Only open or negotiating dates can be booked.
func (v *VenueAvailability) Book() error {
	if v.Status == AvailabilityStatusBooked {
		return fmt.Errorf("%w: availability %s is already booked", ErrIllegalTransition, v.ID)
	}
	v.Status = AvailabilityStatusBooked
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// AcceptsApplications reports whether DJs can still apply for this date.
func (v *VenueAvailability) AcceptsApplications() bool {
	return v.Status == AvailabilityStatusOpen || v.Status == AvailabilityStatusNegotiating
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// GigApplication is a DJ's pitch for a venue's open date.
type GigApplication struct {
	ID             string            `json:"id" db:"id"`
	AvailabilityID string            `json:"availability_id" db:"availability_id"`
	DJID           string            `json:"dj_id" db:"dj_id"`
	Proposal       string            `json:"proposal" db:"proposal"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

func NewGigApplication(id, availabilityID, djID, proposal string) (*GigApplication, error) {
	if djID == "" {
		return nil, fmt.Errorf("%w: DJ is required", ErrValidation)
	}
	now := time.Now().UTC()
	return &GigApplication{
		ID:             id,
		AvailabilityID: availabilityID,
		DJID:           djID,
		Proposal:       proposal,
		Status:         ApplicationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (g *GigApplication) Accept() error {
	if g.Status != ApplicationStatusPending {
		return fmt.Errorf("%w: cannot accept application %s in status %s", ErrIllegalTransition, g.ID, g.Status)
	}
	g.Status = ApplicationStatusAccepted
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *GigApplication) Reject() error {
	if g.Status != ApplicationStatusPending {
		return fmt.Errorf("%w: cannot reject application %s in status %s", ErrIllegalTransition, g.ID, g.Status)
	}
	g.Status = ApplicationStatusRejected
	g.UpdatedAt = time.Now().UTC()
	return nil
}
