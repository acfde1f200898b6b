package entity

import (
	"fmt"
	"time"
)

type AttendeeStatus string

const (
	AttendeeStatusPending   AttendeeStatus = "pending"
	AttendeeStatusConfirmed AttendeeStatus = "confirmed"
	AttendeeStatusAttended  AttendeeStatus = "attended"
	AttendeeStatusNoShow    AttendeeStatus = "no_show"
	AttendeeStatusCancelled AttendeeStatus = "cancelled"
	AttendeeStatusExcused   AttendeeStatus = "excused"
)

// EventAttendee is one user's RSVP record for one event. Exactly one record
// exists per (event, user) pair; the RSVP use case enforces that under the
// event lock and the database backs it with a unique index.
type EventAttendee struct {
	ID            string         `json:"id" db:"id"`
	EventID       string         `json:"event_id" db:"event_id"`
	UserID        string         `json:"user_id" db:"user_id"`
	Status        AttendeeStatus `json:"status" db:"status"`
	RSVPDate      time.Time      `json:"rsvp_date" db:"rsvp_date"`
	CheckInDate   *time.Time     `json:"check_in_date,omitempty" db:"check_in_date"`
	CancelledDate *time.Time     `json:"cancelled_date,omitempty" db:"cancelled_date"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

func NewEventAttendee(id, eventID, userID string) *EventAttendee {
	now := time.Now().UTC()
	return &EventAttendee{
		ID:        id,
		EventID:   eventID,
		UserID:    userID,
		Status:    AttendeeStatusPending,
		RSVPDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CheckIn marks the attendee as having shown up.
func (a *EventAttendee) CheckIn() error {
	if a.Status == AttendeeStatusCancelled {
		return fmt.Errorf("%w: cannot check in attendee %s", ErrAlreadyCancelled, a.ID)
	}
	if a.Status == AttendeeStatusAttended {
		return fmt.Errorf("%w: attendee %s", ErrAlreadyCheckedIn, a.ID)
	}
	now := time.Now().UTC()
	a.Status = AttendeeStatusAttended
	a.CheckInDate = &now
	a.UpdatedAt = now
	return nil
}

// Cancel withdraws the RSVP. Unlike the no-op style used elsewhere, a double
// cancel is an error: the caller asked to undo something already undone.
func (a *EventAttendee) Cancel() error {
	if a.Status == AttendeeStatusAttended {
		return fmt.Errorf("%w: attendee %s has already checked in", ErrIllegalTransition, a.ID)
	}
	if a.Status == AttendeeStatusCancelled {
		return fmt.Errorf("%w: attendee %s", ErrAlreadyCancelled, a.ID)
	}
	now := time.Now().UTC()
	a.Status = AttendeeStatusCancelled
	a.CancelledDate = &now
	a.UpdatedAt = now
	return nil
}

// Confirm promotes a pending RSVP.
func (a *EventAttendee) Confirm() error {
	if a.Status != AttendeeStatusPending {
		return fmt.Errorf("%w: cannot confirm attendee %s in status %s", ErrIllegalTransition, a.ID, a.Status)
	}
	a.Status = AttendeeStatusConfirmed
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkAsNoShow transitions pending/confirmed attendees to no-show and
// reports whether a fresh transition happened. Attended, cancelled, excused
// and already-no-show attendees stay put; that makes the no-show batch safe
// to re-run without re-penalizing anyone.
func (a *EventAttendee) MarkAsNoShow() bool {
	if a.Status != AttendeeStatusPending && a.Status != AttendeeStatusConfirmed {
		return false
	}
	a.Status = AttendeeStatusNoShow
	a.UpdatedAt = time.Now().UTC()
	return true
}

// Excuse is an administrative override exempting the attendee from the
// no-show penalty. Idempotent.
func (a *EventAttendee) Excuse() {
	if a.Status == AttendeeStatusExcused {
		return
	}
	a.Status = AttendeeStatusExcused
	a.UpdatedAt = time.Now().UTC()
}

// CountsTowardCapacity reports whether this RSVP still occupies a spot.
func (a *EventAttendee) CountsTowardCapacity() bool {
	return a.Status != AttendeeStatusCancelled
}
