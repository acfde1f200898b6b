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

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) database.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Save(ctx context.Context, wallet *entity.Wallet) error {
	query := `
		INSERT INTO wallets (
			id, user_id, balance_cents, locked_cents, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			balance_cents = EXCLUDED.balance_cents,
			locked_cents = EXCLUDED.locked_cents,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		wallet.ID, wallet.UserID,
		wallet.Balance.AmountCents, wallet.LockedBalance.AmountCents,
		wallet.Balance.Currency, wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrWalletExists
		}
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	query := `
		SELECT id, user_id, balance_cents, locked_cents, currency, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`
	var (
		w                    entity.Wallet
		balanceCents, locked int64
		currency             string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&w.ID, &w.UserID, &balanceCents, &locked, &currency, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrWalletNotFound
		}
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	w.Balance = entity.Money{AmountCents: balanceCents, Currency: currency}
	w.LockedBalance = entity.Money{AmountCents: locked, Currency: currency}
	return &w, nil
}
