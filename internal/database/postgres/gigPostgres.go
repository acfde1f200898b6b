package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) database.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Save(ctx context.Context, availability *entity.VenueAvailability) error {
	query := `
		INSERT INTO venue_availabilities (
			id, venue_id, date, min_guarantee_cents, currency, terms, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			terms = EXCLUDED.terms,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		availability.ID, availability.VenueID, availability.Date,
		availability.MinGuarantee.AmountCents, availability.MinGuarantee.Currency,
		availability.Terms, availability.Status, availability.CreatedAt, availability.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		// unique index on (venue_id, date) backs the one-listing-per-date rule
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrAvailabilityTaken
		}
		return fmt.Errorf("save availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, id string) (*entity.VenueAvailability, error) {
	query := `
		SELECT id, venue_id, date, min_guarantee_cents, currency, terms, status, created_at, updated_at
		FROM venue_availabilities
		WHERE id = $1
	`
	availability, err := scanAvailability(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("find availability: %w", err)
	}
	return availability, nil
}

func (r *availabilityRepository) FindByVenueAndDate(ctx context.Context, venueID string, date time.Time) (*entity.VenueAvailability, error) {
	query := `
		SELECT id, venue_id, date, min_guarantee_cents, currency, terms, status, created_at, updated_at
		FROM venue_availabilities
		WHERE venue_id = $1 AND date::date = $2::date
	`
	availability, err := scanAvailability(r.db.QueryRowContext(ctx, query, venueID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("find availability by date: %w", err)
	}
	return availability, nil
}

func (r *availabilityRepository) ListOpen(ctx context.Context) ([]*entity.VenueAvailability, error) {
	query := `
		SELECT id, venue_id, date, min_guarantee_cents, currency, terms, status, created_at, updated_at
		FROM venue_availabilities
		WHERE status IN ($1, $2)
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query,
		entity.AvailabilityStatusOpen, entity.AvailabilityStatusNegotiating)
	if err != nil {
		return nil, fmt.Errorf("list open availabilities: %w", err)
	}
	defer rows.Close()

	var res []*entity.VenueAvailability
	for rows.Next() {
		availability, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		res = append(res, availability)
	}
	return res, rows.Err()
}

func scanAvailability(row rowScanner) (*entity.VenueAvailability, error) {
	var (
		v        entity.VenueAvailability
		cents    int64
		currency string
	)
	err := row.Scan(
		&v.ID, &v.VenueID, &v.Date, &cents, &currency,
		&v.Terms, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.MinGuarantee = entity.Money{AmountCents: cents, Currency: currency}
	return &v, nil
}

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) database.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Save(ctx context.Context, application *entity.GigApplication) error {
	query := `
		INSERT INTO gig_applications (
			id, availability_id, dj_id, proposal, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		application.ID, application.AvailabilityID, application.DJID,
		application.Proposal, application.Status, application.CreatedAt, application.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*entity.GigApplication, error) {
	query := `
		SELECT id, availability_id, dj_id, proposal, status, created_at, updated_at
		FROM gig_applications
		WHERE id = $1
	`
	var a entity.GigApplication
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.AvailabilityID, &a.DJID, &a.Proposal, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &a, nil
}

func (r *applicationRepository) ListByAvailability(ctx context.Context, availabilityID string) ([]*entity.GigApplication, error) {
	query := `
		SELECT id, availability_id, dj_id, proposal, status, created_at, updated_at
		FROM gig_applications
		WHERE availability_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, availabilityID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var res []*entity.GigApplication
	for rows.Next() {
		var a entity.GigApplication
		if err := rows.Scan(
			&a.ID, &a.AvailabilityID, &a.DJID, &a.Proposal, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}
