package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/velvet-labs/velvet/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL,
			reputation_score BIGINT NOT NULL DEFAULT 100,
			invites_unlimited BOOLEAN NOT NULL DEFAULT FALSE,
			invites_remaining BIGINT NOT NULL DEFAULT 0,
			events_attended BIGINT NOT NULL DEFAULT 0,
			has_unlocked_invites BOOLEAN NOT NULL DEFAULT FALSE,
			debt_cents BIGINT NOT NULL DEFAULT 0,
			debt_currency CHAR(3) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			organizer_id UUID NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			type VARCHAR(50),
			genre VARCHAR(50),
			status VARCHAR(20) NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			location TEXT,
			venue_id UUID,
			max_capacity INTEGER,
			is_escrow_funded BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS event_attendees (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES events(id),
			user_id UUID NOT NULL,
			status VARCHAR(20) NOT NULL,
			rsvp_date TIMESTAMPTZ NOT NULL,
			check_in_date TIMESTAMPTZ,
			cancelled_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS wallets (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			balance_cents BIGINT NOT NULL DEFAULT 0,
			locked_cents BIGINT NOT NULL DEFAULT 0,
			currency CHAR(3) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS split_payments (
			id UUID PRIMARY KEY,
			total_cents BIGINT NOT NULL,
			currency CHAR(3) NOT NULL,
			reason TEXT,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS split_payers (
			split_id UUID NOT NULL REFERENCES split_payments(id),
			position INTEGER NOT NULL,
			user_id UUID NOT NULL,
			amount_cents BIGINT NOT NULL,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TIMESTAMPTZ,
			PRIMARY KEY (split_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS venue_availabilities (
			id UUID PRIMARY KEY,
			venue_id UUID NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			min_guarantee_cents BIGINT NOT NULL DEFAULT 0,
			currency CHAR(3) NOT NULL,
			terms TEXT,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS gig_applications (
			id UUID PRIMARY KEY,
			availability_id UUID NOT NULL REFERENCES venue_availabilities(id),
			dj_id UUID NOT NULL,
			proposal TEXT,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS revenue_distributions (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES events(id),
			total_cents BIGINT NOT NULL,
			fee_cents BIGINT NOT NULL,
			net_cents BIGINT NOT NULL,
			currency CHAR(3) NOT NULL,
			status VARCHAR(20) NOT NULL,
			calculated_at TIMESTAMPTZ NOT NULL,
			processed_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS payout_recipients (
			distribution_id UUID NOT NULL REFERENCES revenue_distributions(id),
			position INTEGER NOT NULL,
			recipient_id UUID NOT NULL,
			role VARCHAR(50),
			amount_cents BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			PRIMARY KEY (distribution_id, position)
		)`,

		// uniqueness the domain depends on
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendees_event_user ON event_attendees(event_id, user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallets_user ON wallets(user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_availabilities_venue_date ON venue_availabilities(venue_id, ((date AT TIME ZONE 'UTC')::date))`,

		`CREATE INDEX IF NOT EXISTS idx_events_organizer ON events(organizer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_status ON events(status)`,
		`CREATE INDEX IF NOT EXISTS idx_attendees_event ON event_attendees(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_availability ON gig_applications(availability_id)`,
		`CREATE INDEX IF NOT EXISTS idx_distributions_event ON revenue_distributions(event_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
