package entity

import (
	"fmt"
	"time"
)

type SplitPaymentStatus string

const (
	SplitPaymentStatusPending   SplitPaymentStatus = "pending"
	SplitPaymentStatusCompleted SplitPaymentStatus = "completed"
)

type SplitPayer struct {
	UserID string     `json:"user_id" db:"user_id"`
	Amount Money      `json:"amount"`
	IsPaid bool       `json:"is_paid" db:"is_paid"`
	PaidAt *time.Time `json:"paid_at,omitempty" db:"paid_at"`
}

// SplitPayment divides one total among several payers. The shares always sum
// exactly to the total: base share for everyone, the first total%n payers in
// input order carry one extra cent.
type SplitPayment struct {
	ID          string             `json:"id" db:"id"`
	TotalAmount Money              `json:"total_amount"`
	Reason      string             `json:"reason" db:"reason"`
	Payers      []SplitPayer       `json:"payers"`
	Status      SplitPaymentStatus `json:"status" db:"status"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

func NewSplitPayment(id string, total Money, reason string, payerIDs []string) (*SplitPayment, error) {
	if len(payerIDs) == 0 {
		return nil, fmt.Errorf("%w: split payment needs at least one payer", ErrValidation)
	}

	shares, err := total.Split(len(payerIDs))
	if err != nil {
		return nil, err
	}

	payers := make([]SplitPayer, 0, len(payerIDs))
	for i, userID := range payerIDs {
		payers = append(payers, SplitPayer{UserID: userID, Amount: shares[i]})
	}

	now := time.Now().UTC()
	return &SplitPayment{
		ID:          id,
		TotalAmount: total,
		Reason:      reason,
		Payers:      payers,
		Status:      SplitPaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RecordPayment marks the user's share as paid and reports whether anything
// changed. Paying an already-paid share is a no-op so at-least-once delivery
// of payment confirmations stays safe. The split completes once every payer
// has paid.
func (s *SplitPayment) RecordPayment(userID string) (bool, error) {
	idx := -1
	for i := range s.Payers {
		if s.Payers[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, fmt.Errorf("%w: user %s in split %s", ErrNotASplitPayer, userID, s.ID)
	}

	if s.Payers[idx].IsPaid {
		return false, nil
	}

	now := time.Now().UTC()
	s.Payers[idx].IsPaid = true
	s.Payers[idx].PaidAt = &now
	s.UpdatedAt = now

	if s.allPaid() {
		s.Status = SplitPaymentStatusCompleted
	}
	return true, nil
}

func (s *SplitPayment) allPaid() bool {
	for i := range s.Payers {
		if !s.Payers[i].IsPaid {
			return false
		}
	}
	return true
}
