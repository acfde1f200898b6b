package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type splitPaymentRepository struct {
	db *sql.DB
}

func NewSplitPaymentRepository(db *sql.DB) database.SplitPaymentRepository {
	return &splitPaymentRepository{db: db}
}

// Save writes the split and its payer rows in one transaction. Payer rows are
// replaced wholesale; the set of payers never changes after creation, only
// their paid flags.
func (r *splitPaymentRepository) Save(ctx context.Context, split *entity.SplitPayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin split tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO split_payments (
			id, total_cents, currency, reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`,
		split.ID, split.TotalAmount.AmountCents, split.TotalAmount.Currency,
		split.Reason, split.Status, split.CreatedAt, split.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save split: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM split_payers WHERE split_id = $1`, split.ID); err != nil {
		return fmt.Errorf("clear split payers: %w", err)
	}
	for i, p := range split.Payers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO split_payers (split_id, position, user_id, amount_cents, is_paid, paid_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, split.ID, i, p.UserID, p.Amount.AmountCents, p.IsPaid, p.PaidAt)
		if err != nil {
			return fmt.Errorf("save split payer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit split: %w", err)
	}
	return nil
}

func (r *splitPaymentRepository) FindByID(ctx context.Context, id string) (*entity.SplitPayment, error) {
	var (
		s          entity.SplitPayment
		totalCents int64
		currency   string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, total_cents, currency, reason, status, created_at, updated_at
		FROM split_payments
		WHERE id = $1
	`, id).Scan(&s.ID, &totalCents, &currency, &s.Reason, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSplitNotFound
		}
		return nil, fmt.Errorf("find split: %w", err)
	}
	s.TotalAmount = entity.Money{AmountCents: totalCents, Currency: currency}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, amount_cents, is_paid, paid_at
		FROM split_payers
		WHERE split_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list split payers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p     entity.SplitPayer
			cents int64
		)
		if err := rows.Scan(&p.UserID, &cents, &p.IsPaid, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan split payer: %w", err)
		}
		p.Amount = entity.Money{AmountCents: cents, Currency: currency}
		s.Payers = append(s.Payers, p)
	}
	return &s, rows.Err()
}
