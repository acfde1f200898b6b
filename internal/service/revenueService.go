package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
)

type revenueService struct {
	distributions database.DistributionRepository
	events        database.EventRepository
	defaultFeePct float64
}

func NewRevenueService(distributions database.DistributionRepository, events database.EventRepository, defaultFeePct float64) RevenueService {
	return &revenueService{distributions: distributions, events: events, defaultFeePct: defaultFeePct}
}

// CalculateDistribution builds the payout ledger for a completed event and
// stores it pending. The calculation is all-or-nothing; an overrun never
// leaves a partial ledger behind.
func (s *revenueService) CalculateDistribution(ctx context.Context, req *CalculateDistributionRequest) (*entity.RevenueDistribution, error) {
	event, err := s.events.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.EventStatusCompleted {
		return nil, fmt.Errorf("%w: event %s is %s, revenue settles after completion",
			entity.ErrIllegalTransition, event.ID, event.Status)
	}

	total, err := entity.NewMoney(req.TotalCents, req.Currency)
	if err != nil {
		return nil, err
	}

	fixedCosts := make([]entity.FixedCost, 0, len(req.FixedCosts))
	for _, cost := range req.FixedCosts {
		amount, err := entity.NewMoney(cost.AmountCents, req.Currency)
		if err != nil {
			return nil, err
		}
		fixedCosts = append(fixedCosts, entity.FixedCost{
			RecipientID: cost.RecipientID,
			Role:        cost.Role,
			Amount:      amount,
		})
	}

	feePct := s.defaultFeePct
	if req.PlatformFeePct != nil {
		feePct = *req.PlatformFeePct
	}

	dist, err := entity.NewRevenueDistribution(uuid.NewString(), req.EventID, total, feePct, fixedCosts)
	if err != nil {
		return nil, err
	}
	if err := s.distributions.Save(ctx, dist); err != nil {
		return nil, fmt.Errorf("save distribution: %w", err)
	}
	return dist, nil
}

func (s *revenueService) ProcessDistribution(ctx context.Context, distributionID string) (*entity.RevenueDistribution, error) {
	dist, err := s.distributions.FindByID(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	dist.MarkProcessed()
	if err := s.distributions.Save(ctx, dist); err != nil {
		return nil, fmt.Errorf("save processed distribution: %w", err)
	}
	return dist, nil
}

func (s *revenueService) GetDistribution(ctx context.Context, distributionID string) (*entity.RevenueDistribution, error) {
	return s.distributions.FindByID(ctx, distributionID)
}
