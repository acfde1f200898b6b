package entity

import (
	"fmt"
	"time"
)

type DistributionStatus string

const (
	DistributionStatusPending   DistributionStatus = "pending"
	DistributionStatusProcessed DistributionStatus = "processed"
)

type RecipientStatus string

const (
	RecipientStatusPending RecipientStatus = "pending"
	RecipientStatusPaid    RecipientStatus = "paid"
)

type FixedCost struct {
	RecipientID string `json:"recipient_id"`
	Role        string `json:"role"`
	Amount      Money  `json:"amount"`
}

type PayoutRecipient struct {
	RecipientID string          `json:"recipient_id" db:"recipient_id"`
	Role        string          `json:"role" db:"role"`
	Amount      Money           `json:"amount"`
	Status      RecipientStatus `json:"status" db:"status"`
}

// RevenueDistribution is the payout ledger for one event: gross revenue minus
// the platform fee, then fixed costs in order. Construction is a pure
// calculation; nothing is paid out until MarkProcessed.
type RevenueDistribution struct {
	ID           string             `json:"id" db:"id"`
	EventID      string             `json:"event_id" db:"event_id"`
	TotalRevenue Money              `json:"total_revenue"`
	PlatformFee  Money              `json:"platform_fee"`
	NetRevenue   Money              `json:"net_revenue"`
	Recipients   []PayoutRecipient  `json:"recipients"`
	Status       DistributionStatus `json:"status" db:"status"`
	CalculatedAt time.Time          `json:"calculated_at" db:"calculated_at"`
	ProcessedAt  *time.Time         `json:"processed_at,omitempty" db:"processed_at"`
}

// NewRevenueDistribution fails outright when the fixed costs overrun the net
// revenue; a partial ledger is never produced.
func NewRevenueDistribution(id, eventID string, total Money, platformFeePct float64, fixedCosts []FixedCost) (*RevenueDistribution, error) {
	if platformFeePct < 0 || platformFeePct > 100 {
		return nil, fmt.Errorf("%w: platform fee percentage %.2f", ErrValidation, platformFeePct)
	}

	fee := total.Percent(platformFeePct)
	net, err := total.Sub(fee)
	if err != nil {
		return nil, err
	}

	remainder := net
	recipients := make([]PayoutRecipient, 0, len(fixedCosts))
	for _, cost := range fixedCosts {
		remainder, err = remainder.Sub(cost.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s for %s exceeds remaining %s",
				ErrInsufficientRevenue, cost.Amount, cost.RecipientID, net)
		}
		recipients = append(recipients, PayoutRecipient{
			RecipientID: cost.RecipientID,
			Role:        cost.Role,
			Amount:      cost.Amount,
			Status:      RecipientStatusPending,
		})
	}

	return &RevenueDistribution{
		ID:           id,
		EventID:      eventID,
		TotalRevenue: total,
		PlatformFee:  fee,
		NetRevenue:   net,
		Recipients:   recipients,
		Status:       DistributionStatusPending,
		CalculatedAt: time.Now().UTC(),
	}, nil
}

// Remainder is what is left of the net revenue after all fixed costs.
func (d *RevenueDistribution) Remainder() Money {
	remainder := d.NetRevenue
	for _, r := range d.Recipients {
		remainder, _ = remainder.Sub(r.Amount)
	}
	return remainder
}

// MarkProcessed finalizes the ledger: the distribution and every recipient
// entry move to their terminal paid state. Idempotent.
func (d *RevenueDistribution) MarkProcessed() {
	if d.Status == DistributionStatusProcessed {
		return
	}
	now := time.Now().UTC()
	d.Status = DistributionStatusProcessed
	d.ProcessedAt = &now
	for i := range d.Recipients {
		d.Recipients[i].Status = RecipientStatusPaid
	}
}
