package entity

import (
	"fmt"
	"math"
)

// Money is an immutable amount of minor units (cents) in a single currency.
// Every operation returns a new value; balances are never negative.
type Money struct {
	AmountCents int64  `json:"amount_cents" db:"amount_cents"`
	Currency    string `json:"currency" db:"currency"`
}

func NewMoney(amountCents int64, currency string) (Money, error) {
	if amountCents < 0 {
		return Money{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	if len(currency) != 3 {
		return Money{}, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidAmount)
	}
	return Money{AmountCents: amountCents, Currency: currency}, nil
}

func ZeroMoney(currency string) Money {
	return Money{AmountCents: 0, Currency: currency}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{AmountCents: m.AmountCents + other.AmountCents, Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	if other.AmountCents > m.AmountCents {
		return Money{}, fmt.Errorf("%w: %d - %d", ErrNegativeAmount, m.AmountCents, other.AmountCents)
	}
	return Money{AmountCents: m.AmountCents - other.AmountCents, Currency: m.Currency}, nil
}

// Percent returns pct percent of the amount, rounded half away from zero.
func (m Money) Percent(pct float64) Money {
	cents := int64(math.Round(float64(m.AmountCents) * pct / 100))
	return Money{AmountCents: cents, Currency: m.Currency}
}

// Split divides the amount into n shares that sum exactly to the original:
// the first amount%n shares carry one extra cent.
func (m Money) Split(n int) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cannot split among %d", ErrInvalidAmount, n)
	}
	base := m.AmountCents / int64(n)
	remainder := m.AmountCents % int64(n)

	shares := make([]Money, 0, n)
	for i := 0; i < n; i++ {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares = append(shares, Money{AmountCents: cents, Currency: m.Currency})
	}
	return shares, nil
}

func (m Money) IsZero() bool {
	return m.AmountCents == 0
}

func (m Money) IsPositive() bool {
	return m.AmountCents > 0
}

func (m Money) Equal(other Money) bool {
	return m.AmountCents == other.AmountCents && m.Currency == other.Currency
}

func (m Money) LessThan(other Money) bool {
	return m.Currency == other.Currency && m.AmountCents < other.AmountCents
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.AmountCents/100, m.AmountCents%100, m.Currency)
}
