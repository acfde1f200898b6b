package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvet-labs/velvet/internal/entity"
)

func TestWalletService_ProvisionWallet(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	svc := NewWalletService(repo.Wallets, locks, "EUR", quietLogger())

	require.NoError(t, svc.ProvisionWallet(ctx, "usr-1"))

	wallet, err := svc.GetWallet(ctx, "usr-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
	assert.Equal(t, "EUR", wallet.Balance.Currency)

	// a replayed registration event keeps the existing wallet
	_, err = svc.Deposit(ctx, "usr-1", eur(500))
	require.NoError(t, err)
	require.NoError(t, svc.ProvisionWallet(ctx, "usr-1"))

	wallet, err = svc.GetWallet(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), wallet.Balance.AmountCents)
}

func TestWalletService_Operations(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	svc := NewWalletService(repo.Wallets, locks, "EUR", quietLogger())
	require.NoError(t, svc.ProvisionWallet(ctx, "usr-1"))

	_, err := svc.Deposit(ctx, "usr-1", eur(1000))
	require.NoError(t, err)

	wallet, err := svc.LockFunds(ctx, "usr-1", eur(400))
	require.NoError(t, err)
	assert.Equal(t, int64(400), wallet.LockedBalance.AmountCents)

	wallet, err = svc.ReleaseFunds(ctx, "usr-1", eur(400))
	require.NoError(t, err)
	assert.Equal(t, int64(1400), wallet.Balance.AmountCents)
	assert.Equal(t, int64(0), wallet.LockedBalance.AmountCents)

	_, err = svc.Withdraw(ctx, "usr-1", eur(2000))
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)

	_, err = svc.ReleaseFunds(ctx, "usr-1", eur(1))
	assert.ErrorIs(t, err, entity.ErrInsufficientLockedFunds)
}

func TestWalletService_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo, locks := newTestFixture()
	svc := NewWalletService(repo.Wallets, locks, "EUR", quietLogger())

	_, err := svc.GetWallet(ctx, "ghost")
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)

	_, err = svc.Deposit(ctx, "ghost", eur(100))
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
}
