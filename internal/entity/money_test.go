package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency string
		wantErr  bool
	}{
		{"valid", 1500, "EUR", false},
		{"zero", 0, "USD", false},
		{"negative amount", -1, "EUR", true},
		{"bad currency", 100, "EURO", true},
		{"empty currency", 100, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.cents, tt.currency)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.AmountCents)
			assert.Equal(t, tt.currency, m.Currency)
		})
	}
}

func TestMoney_AddSub(t *testing.T) {
	a := Money{AmountCents: 1000, Currency: "EUR"}
	b := Money{AmountCents: 400, Currency: "EUR"}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1400), sum.AmountCents)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(600), diff.AmountCents)

	_, err = a.Add(Money{AmountCents: 100, Currency: "USD"})
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMoney_Split(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		n     int
		want  []int64
	}{
		{"even", 900, 3, []int64{300, 300, 300}},
		{"remainder to first", 1000, 3, []int64{334, 333, 333}},
		{"two way odd", 101, 2, []int64{51, 50}},
		{"single payer", 777, 1, []int64{777}},
		{"more payers than cents", 2, 3, []int64{1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Money{AmountCents: tt.cents, Currency: "EUR"}
			shares, err := m.Split(tt.n)
			require.NoError(t, err)
			require.Len(t, shares, tt.n)

			var sum int64
			for i, share := range shares {
				assert.Equal(t, tt.want[i], share.AmountCents)
				sum += share.AmountCents
			}
			assert.Equal(t, tt.cents, sum, "shares must sum to the total")
		})
	}

	_, err := Money{AmountCents: 100, Currency: "EUR"}.Split(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMoney_SplitSpreadAtMostOneCent(t *testing.T) {
	for cents := int64(0); cents < 50; cents++ {
		for n := 1; n <= 7; n++ {
			shares, err := Money{AmountCents: cents, Currency: "EUR"}.Split(n)
			require.NoError(t, err)

			min, max := shares[0].AmountCents, shares[0].AmountCents
			var sum int64
			for _, s := range shares {
				if s.AmountCents < min {
					min = s.AmountCents
				}
				if s.AmountCents > max {
					max = s.AmountCents
				}
				sum += s.AmountCents
			}
			assert.Equal(t, cents, sum)
			assert.LessOrEqual(t, max-min, int64(1))
		}
	}
}

func TestMoney_Percent(t *testing.T) {
	m := Money{AmountCents: 10000, Currency: "EUR"}
	assert.Equal(t, int64(1000), m.Percent(10).AmountCents)
	assert.Equal(t, int64(0), m.Percent(0).AmountCents)
	assert.Equal(t, int64(10000), m.Percent(100).AmountCents)

	// rounds half away from zero
	odd := Money{AmountCents: 5, Currency: "EUR"}
	assert.Equal(t, int64(1), odd.Percent(10).AmountCents)
}
