package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

const uniqueViolation = "23505"

type attendeeRepository struct {
	db *sql.DB
}

func NewAttendeeRepository(db *sql.DB) database.AttendeeRepository {
	return &attendeeRepository{db: db}
}

func (r *attendeeRepository) Save(ctx context.Context, attendee *entity.EventAttendee) error {
	query := `
		INSERT INTO event_attendees (
			id, event_id, user_id, status, rsvp_date,
			check_in_date, cancelled_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			check_in_date = EXCLUDED.check_in_date,
			cancelled_date = EXCLUDED.cancelled_date,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		attendee.ID, attendee.EventID, attendee.UserID, attendee.Status,
		attendee.RSVPDate, attendee.CheckInDate, attendee.CancelledDate,
		attendee.CreatedAt, attendee.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		// unique index on (event_id, user_id) backs the one-RSVP invariant
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrAlreadyRSVPed
		}
		return fmt.Errorf("save attendee: %w", err)
	}
	return nil
}

func (r *attendeeRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error) {
	query := `
		SELECT id, event_id, user_id, status, rsvp_date,
		       check_in_date, cancelled_date, created_at, updated_at
		FROM event_attendees
		WHERE event_id = $1 AND user_id = $2
	`
	var a entity.EventAttendee
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&a.ID, &a.EventID, &a.UserID, &a.Status, &a.RSVPDate,
		&a.CheckInDate, &a.CancelledDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("find attendee: %w", err)
	}
	return &a, nil
}

func (r *attendeeRepository) FindByEvent(ctx context.Context, eventID string) ([]*entity.EventAttendee, error) {
	query := `
		SELECT id, event_id, user_id, status, rsvp_date,
		       check_in_date, cancelled_date, created_at, updated_at
		FROM event_attendees
		WHERE event_id = $1
		ORDER BY rsvp_date
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var res []*entity.EventAttendee
	for rows.Next() {
		var a entity.EventAttendee
		if err := rows.Scan(
			&a.ID, &a.EventID, &a.UserID, &a.Status, &a.RSVPDate,
			&a.CheckInDate, &a.CancelledDate, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}

func (r *attendeeRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1 AND status <> $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID, entity.AttendeeStatusCancelled).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return count, nil
}
