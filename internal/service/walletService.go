package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

type walletService struct {
	wallets         database.WalletRepository
	locks           *keylock.KeyLock
	defaultCurrency string
	log             *logrus.Logger
}

func NewWalletService(wallets database.WalletRepository, locks *keylock.KeyLock, defaultCurrency string, log *logrus.Logger) WalletService {
	return &walletService{
		wallets:         wallets,
		locks:           locks,
		defaultCurrency: defaultCurrency,
		log:             log,
	}
}

func (s *walletService) GetWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	return s.wallets.FindByUserID(ctx, userID)
}

func (s *walletService) Deposit(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error) {
	return s.mutate(ctx, userID, func(w *entity.Wallet) error {
		return w.Deposit(amount)
	})
}

func (s *walletService) Withdraw(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error) {
	return s.mutate(ctx, userID, func(w *entity.Wallet) error {
		return w.Withdraw(amount)
	})
}

func (s *walletService) LockFunds(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error) {
	return s.mutate(ctx, userID, func(w *entity.Wallet) error {
		return w.LockFunds(amount)
	})
}

func (s *walletService) ReleaseFunds(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error) {
	return s.mutate(ctx, userID, func(w *entity.Wallet) error {
		return w.ReleaseFunds(amount)
	})
}

func (s *walletService) mutate(ctx context.Context, userID string, op func(*entity.Wallet) error) (*entity.Wallet, error) {
	var wallet *entity.Wallet
	err := s.locks.Do("wallet:"+userID, func() error {
		var err error
		wallet, err = s.wallets.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := op(wallet); err != nil {
			return err
		}
		if err := s.wallets.Save(ctx, wallet); err != nil {
			return fmt.Errorf("save wallet for user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// ProvisionWallet reacts to user registration. Replays are harmless: an
// existing wallet short-circuits to success.
func (s *walletService) ProvisionWallet(ctx context.Context, userID string) error {
	return s.locks.Do("wallet:"+userID, func() error {
		_, err := s.wallets.FindByUserID(ctx, userID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entity.ErrWalletNotFound) {
			return err
		}

		wallet := entity.NewWallet(uuid.NewString(), userID, s.defaultCurrency)
		if err := s.wallets.Save(ctx, wallet); err != nil {
			if errors.Is(err, entity.ErrWalletExists) {
				return nil
			}
			return fmt.Errorf("provision wallet for user %s: %w", userID, err)
		}
		s.log.WithField("user_id", userID).Info("wallet provisioned")
		return nil
	})
}
