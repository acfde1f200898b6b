package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) database.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (
			id, email, name, role, reputation_score,
			invites_unlimited, invites_remaining, events_attended,
			has_unlocked_invites, debt_cents, debt_currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			reputation_score = EXCLUDED.reputation_score,
			invites_unlimited = EXCLUDED.invites_unlimited,
			invites_remaining = EXCLUDED.invites_remaining,
			events_attended = EXCLUDED.events_attended,
			has_unlocked_invites = EXCLUDED.has_unlocked_invites,
			debt_cents = EXCLUDED.debt_cents,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Role, user.ReputationScore,
		user.InviteCredits.Unlimited, user.InviteCredits.Remaining, user.EventsAttended,
		user.HasUnlockedInvites, user.OutstandingDebt.AmountCents, user.OutstandingDebt.Currency,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := userSelect + ` WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := userSelect + ` WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

const userSelect = `
	SELECT id, email, name, role, reputation_score,
	       invites_unlimited, invites_remaining, events_attended,
	       has_unlocked_invites, debt_cents, debt_currency, created_at, updated_at
	FROM users`

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u            entity.User
		debtCents    int64
		debtCurrency string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.ReputationScore,
		&u.InviteCredits.Unlimited, &u.InviteCredits.Remaining, &u.EventsAttended,
		&u.HasUnlockedInvites, &debtCents, &debtCurrency, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.OutstandingDebt = entity.Money{AmountCents: debtCents, Currency: debtCurrency}
	return &u, nil
}
