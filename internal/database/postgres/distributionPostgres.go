package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type distributionRepository struct {
	db *sql.DB
}

func NewDistributionRepository(db *sql.DB) database.DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Save(ctx context.Context, dist *entity.RevenueDistribution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin distribution tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO revenue_distributions (
			id, event_id, total_cents, fee_cents, net_cents, currency,
			status, calculated_at, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			processed_at = EXCLUDED.processed_at
	`,
		dist.ID, dist.EventID,
		dist.TotalRevenue.AmountCents, dist.PlatformFee.AmountCents, dist.NetRevenue.AmountCents,
		dist.TotalRevenue.Currency, dist.Status, dist.CalculatedAt, dist.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("save distribution: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payout_recipients WHERE distribution_id = $1`, dist.ID); err != nil {
		return fmt.Errorf("clear payout recipients: %w", err)
	}
	for i, rec := range dist.Recipients {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payout_recipients (distribution_id, position, recipient_id, role, amount_cents, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, dist.ID, i, rec.RecipientID, rec.Role, rec.Amount.AmountCents, rec.Status)
		if err != nil {
			return fmt.Errorf("save payout recipient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit distribution: %w", err)
	}
	return nil
}

func (r *distributionRepository) FindByID(ctx context.Context, id string) (*entity.RevenueDistribution, error) {
	return r.findOne(ctx, distributionSelect+` WHERE id = $1`, id, entity.ErrDistributionNotFound)
}

func (r *distributionRepository) FindByEvent(ctx context.Context, eventID string) (*entity.RevenueDistribution, error) {
	return r.findOne(ctx, distributionSelect+` WHERE event_id = $1`, eventID, entity.ErrDistributionNotFound)
}

const distributionSelect = `
	SELECT id, event_id, total_cents, fee_cents, net_cents, currency,
	       status, calculated_at, processed_at
	FROM revenue_distributions`

func (r *distributionRepository) findOne(ctx context.Context, query, arg string, notFound error) (*entity.RevenueDistribution, error) {
	var (
		d                           entity.RevenueDistribution
		totalCents, feeCents, netCents int64
		currency                    string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&d.ID, &d.EventID, &totalCents, &feeCents, &netCents, &currency,
		&d.Status, &d.CalculatedAt, &d.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find distribution: %w", err)
	}
	d.TotalRevenue = entity.Money{AmountCents: totalCents, Currency: currency}
	d.PlatformFee = entity.Money{AmountCents: feeCents, Currency: currency}
	d.NetRevenue = entity.Money{AmountCents: netCents, Currency: currency}

	rows, err := r.db.QueryContext(ctx, `
		SELECT recipient_id, role, amount_cents, status
		FROM payout_recipients
		WHERE distribution_id = $1
		ORDER BY position
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("list payout recipients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec   entity.PayoutRecipient
			cents int64
		)
		if err := rows.Scan(&rec.RecipientID, &rec.Role, &cents, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan payout recipient: %w", err)
		}
		rec.Amount = entity.Money{AmountCents: cents, Currency: currency}
		d.Recipients = append(d.Recipients, rec)
	}
	return &d, rows.Err()
}
