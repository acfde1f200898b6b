// Package memory provides map-backed repository adapters. They honor the same
// contracts as the Postgres adapters (fresh copy per load, upsert on save) so
// services and tests run without a database.
package memory

import (
	"time"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

// NewRepository wires every in-memory adapter into one bundle.
func NewRepository() *database.Repository {
	return &database.Repository{
		Events:         NewEventRepository(),
		Attendees:      NewAttendeeRepository(),
		Wallets:        NewWalletRepository(),
		Splits:         NewSplitPaymentRepository(),
		Availabilities: NewAvailabilityRepository(),
		Applications:   NewApplicationRepository(),
		Users:          NewUserRepository(),
		Distributions:  NewDistributionRepository(),
	}
}

func copyEvent(e *entity.Event) *entity.Event {
	c := *e
	if e.VenueID != nil {
		v := *e.VenueID
		c.VenueID = &v
	}
	if e.MaxCapacity != nil {
		m := *e.MaxCapacity
		c.MaxCapacity = &m
	}
	return &c
}

func copyAttendee(a *entity.EventAttendee) *entity.EventAttendee {
	c := *a
	c.CheckInDate = copyTime(a.CheckInDate)
	c.CancelledDate = copyTime(a.CancelledDate)
	return &c
}

func copyWallet(w *entity.Wallet) *entity.Wallet {
	c := *w
	return &c
}

func copySplit(s *entity.SplitPayment) *entity.SplitPayment {
	c := *s
	c.Payers = make([]entity.SplitPayer, len(s.Payers))
	copy(c.Payers, s.Payers)
	for i := range c.Payers {
		c.Payers[i].PaidAt = copyTime(s.Payers[i].PaidAt)
	}
	return &c
}

func copyAvailability(v *entity.VenueAvailability) *entity.VenueAvailability {
	c := *v
	return &c
}

func copyApplication(g *entity.GigApplication) *entity.GigApplication {
	c := *g
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyDistribution(d *entity.RevenueDistribution) *entity.RevenueDistribution {
	c := *d
	c.Recipients = make([]entity.PayoutRecipient, len(d.Recipients))
	copy(c.Recipients, d.Recipients)
	c.ProcessedAt = copyTime(d.ProcessedAt)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
