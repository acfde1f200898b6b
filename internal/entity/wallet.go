package entity

import (
	"fmt"
	"time"
)

// Wallet holds one user's available and escrow-locked funds. Both balances
// stay non-negative; every mutation goes through the methods below.
type Wallet struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Balance       Money     `json:"balance"`
	LockedBalance Money     `json:"locked_balance"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewWallet(id, userID, currency string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:            id,
		UserID:        userID,
		Balance:       ZeroMoney(currency),
		LockedBalance: ZeroMoney(currency),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (w *Wallet) Deposit(amount Money) error {
	balance, err := w.Balance.Add(amount)
	if err != nil {
		return fmt.Errorf("deposit to wallet %s: %w", w.ID, err)
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (w *Wallet) Withdraw(amount Money) error {
	if w.Balance.Currency == amount.Currency && w.Balance.AmountCents < amount.AmountCents {
		return fmt.Errorf("%w: wallet %s has %s, requested %s", ErrInsufficientFunds, w.ID, w.Balance, amount)
	}
	balance, err := w.Balance.Sub(amount)
	if err != nil {
		return fmt.Errorf("withdraw from wallet %s: %w", w.ID, err)
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// LockFunds adds pre-escrowed funds directly to the locked balance.
func (w *Wallet) LockFunds(amount Money) error {
	locked, err := w.LockedBalance.Add(amount)
	if err != nil {
		return fmt.Errorf("lock funds in wallet %s: %w", w.ID, err)
	}
	w.LockedBalance = locked
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// ReleaseFunds moves escrowed funds back to the available balance. Releasing
// more than is locked fails instead of driving the locked balance negative.
func (w *Wallet) ReleaseFunds(amount Money) error {
	if w.LockedBalance.Currency == amount.Currency && w.LockedBalance.AmountCents < amount.AmountCents {
		return fmt.Errorf("%w: wallet %s has %s locked, requested %s",
			ErrInsufficientLockedFunds, w.ID, w.LockedBalance, amount)
	}
	locked, err := w.LockedBalance.Sub(amount)
	if err != nil {
		return fmt.Errorf("release funds in wallet %s: %w", w.ID, err)
	}
	balance, err := w.Balance.Add(amount)
	if err != nil {
		return fmt.Errorf("release funds in wallet %s: %w", w.ID, err)
	}
	w.LockedBalance = locked
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}
