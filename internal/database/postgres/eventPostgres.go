package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) database.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Save(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (
			id, organizer_id, title, description, type, genre, status,
			start_time, end_time, location, venue_id, max_capacity,
			is_escrow_funded, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			genre = EXCLUDED.genre,
			status = EXCLUDED.status,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			location = EXCLUDED.location,
			venue_id = EXCLUDED.venue_id,
			max_capacity = EXCLUDED.max_capacity,
			is_escrow_funded = EXCLUDED.is_escrow_funded,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.OrganizerID, event.Title, event.Description,
		event.Type, event.Genre, event.Status, event.StartTime, event.EndTime,
		event.Location, event.VenueID, event.MaxCapacity,
		event.IsEscrowFunded, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `
		SELECT id, organizer_id, title, description, type, genre, status,
		       start_time, end_time, location, venue_id, max_capacity,
		       is_escrow_funded, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter database.EventFilter) ([]*entity.Event, error) {
	query := `
		SELECT id, organizer_id, title, description, type, genre, status,
		       start_time, end_time, location, venue_id, max_capacity,
		       is_escrow_funded, created_at, updated_at
		FROM events
		WHERE ($1 = '' OR organizer_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY start_time
	`
	rows, err := r.db.QueryContext(ctx, query, filter.OrganizerID, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var res []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, event)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	var e entity.Event
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Type, &e.Genre,
		&e.Status, &e.StartTime, &e.EndTime, &e.Location, &e.VenueID,
		&e.MaxCapacity, &e.IsEscrowFunded, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
