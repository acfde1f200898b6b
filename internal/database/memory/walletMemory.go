package memory

import (
	"context"
	"sync"

	"github.com/velvet-labs/velvet/internal/entity"
)

type WalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*entity.Wallet // keyed by user id: one wallet per user
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{wallets: make(map[string]*entity.Wallet)}
}

func (r *WalletRepository) Save(_ context.Context, wallet *entity.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[wallet.UserID] = copyWallet(wallet)
	return nil
}

func (r *WalletRepository) FindByUserID(_ context.Context, userID string) (*entity.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[userID]
	if !ok {
		return nil, entity.ErrWalletNotFound
	}
	return copyWallet(wallet), nil
}

type SplitPaymentRepository struct {
	mu     sync.RWMutex
	splits map[string]*entity.SplitPayment
}

func NewSplitPaymentRepository() *SplitPaymentRepository {
	return &SplitPaymentRepository{splits: make(map[string]*entity.SplitPayment)}
}

func (r *SplitPaymentRepository) Save(_ context.Context, split *entity.SplitPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splits[split.ID] = copySplit(split)
	return nil
}

func (r *SplitPaymentRepository) FindByID(_ context.Context, id string) (*entity.SplitPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	split, ok := r.splits[id]
	if !ok {
		return nil, entity.ErrSplitNotFound
	}
	return copySplit(split), nil
}

type DistributionRepository struct {
	mu            sync.RWMutex
	distributions map[string]*entity.RevenueDistribution
}

func NewDistributionRepository() *DistributionRepository {
	return &DistributionRepository{distributions: make(map[string]*entity.RevenueDistribution)}
}

func (r *DistributionRepository) Save(_ context.Context, distribution *entity.RevenueDistribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.distributions[distribution.ID] = copyDistribution(distribution)
	return nil
}

func (r *DistributionRepository) FindByID(_ context.Context, id string) (*entity.RevenueDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	distribution, ok := r.distributions[id]
	if !ok {
		return nil, entity.ErrDistributionNotFound
	}
	return copyDistribution(distribution), nil
}

func (r *DistributionRepository) FindByEvent(_ context.Context, eventID string) (*entity.RevenueDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.distributions {
		if d.EventID == eventID {
			return copyDistribution(d), nil
		}
	}
	return nil, entity.ErrDistributionNotFound
}
