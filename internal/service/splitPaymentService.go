package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

type splitPaymentService struct {
	splits database.SplitPaymentRepository
	locks  *keylock.KeyLock
}

func NewSplitPaymentService(splits database.SplitPaymentRepository, locks *keylock.KeyLock) SplitPaymentService {
	return &splitPaymentService{splits: splits, locks: locks}
}

func (s *splitPaymentService) CreateSplit(ctx context.Context, req *CreateSplitRequest) (*entity.SplitPayment, error) {
	total, err := entity.NewMoney(req.TotalCents, req.Currency)
	if err != nil {
		return nil, err
	}

	split, err := entity.NewSplitPayment(uuid.NewString(), total, req.Reason, req.PayerIDs)
	if err != nil {
		return nil, err
	}
	if err := s.splits.Save(ctx, split); err != nil {
		return nil, fmt.Errorf("create split: %w", err)
	}
	return split, nil
}

// RecordPayment serializes per split so two confirmations for the same share
// cannot interleave between load and save.
func (s *splitPaymentService) RecordPayment(ctx context.Context, splitID, userID string) (*entity.SplitPayment, error) {
	var split *entity.SplitPayment
	err := s.locks.Do("split:"+splitID, func() error {
		var err error
		split, err = s.splits.FindByID(ctx, splitID)
		if err != nil {
			return err
		}
		changed, err := split.RecordPayment(userID)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if err := s.splits.Save(ctx, split); err != nil {
			return fmt.Errorf("save split %s: %w", splitID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return split, nil
}

func (s *splitPaymentService) GetSplit(ctx context.Context, splitID string) (*entity.SplitPayment, error) {
	return s.splits.FindByID(ctx, splitID)
}
