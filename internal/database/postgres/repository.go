// Package postgres implements the repository ports on database/sql + lib/pq.
// Save is an upsert so the service layer's load-mutate-save cycle needs no
// insert/update distinction.
package postgres

import (
	"database/sql"

	"github.com/velvet-labs/velvet/internal/database"
)

func NewRepository(db *sql.DB) *database.Repository {
	return &database.Repository{
		Events:         NewEventRepository(db),
		Attendees:      NewAttendeeRepository(db),
		Wallets:        NewWalletRepository(db),
		Splits:         NewSplitPaymentRepository(db),
		Availabilities: NewAvailabilityRepository(db),
		Applications:   NewApplicationRepository(db),
		Users:          NewUserRepository(db),
		Distributions:  NewDistributionRepository(db),
	}
}
