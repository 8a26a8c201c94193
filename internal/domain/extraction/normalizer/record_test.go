package normalizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
)

func testGrammar() grammar.Grammar {
	return grammar.Grammar{
		Provider:       "phonepe",
		CurrencyMarker: "₹",
		CleanupMarkers: []string{"UPI ID:", "UPI Ref No:", "Note:"},
	}
}

func TestNormalize(t *testing.T) {
	t.Run("well-formed candidate", func(t *testing.T) {
		c := grammar.Candidate{
			DateRaw:   "Feb 13, 2025",
			Merchant:  "Swiggy",
			Direction: grammar.DirectionDebit,
			AmountRaw: "₹1,250.50",
		}

		record, err := Normalize(c, testGrammar())
		require.NoError(t, err)
		assert.Equal(t, "Feb 13, 2025", record.Date)
		assert.Equal(t, "Swiggy", record.Merchant)
		assert.Equal(t, grammar.DirectionDebit, record.Direction)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("1250.50")))
		assert.Equal(t, "phonepe", record.Provider)
	})

	t.Run("leading minus infers debit", func(t *testing.T) {
		c := grammar.Candidate{
			Merchant:  "Airtel",
			Direction: grammar.DirectionUnknown,
			AmountRaw: "-22",
		}

		record, err := Normalize(c, testGrammar())
		require.NoError(t, err)
		assert.Equal(t, grammar.DirectionDebit, record.Direction)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("22")), "amount is stored absolute")
	})

	t.Run("leading plus infers credit", func(t *testing.T) {
		c := grammar.Candidate{
			Merchant:  "Ravi Kumar",
			Direction: grammar.DirectionUnknown,
			AmountRaw: "+500.00",
		}

		record, err := Normalize(c, testGrammar())
		require.NoError(t, err)
		assert.Equal(t, grammar.DirectionCredit, record.Direction)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("500")), "amount is stored absolute")
	})

	t.Run("unsigned unknown direction is rejected", func(t *testing.T) {
		c := grammar.Candidate{
			Merchant:  "Airtel",
			Direction: grammar.DirectionUnknown,
			AmountRaw: "22",
		}

		_, err := Normalize(c, testGrammar())
		assert.ErrorIs(t, err, ErrNoDirection)
	})

	t.Run("amount rejections", func(t *testing.T) {
		tests := []struct {
			name      string
			amountRaw string
		}{
			{"empty", ""},
			{"marker only", "₹"},
			{"garbage", "₹abc"},
			{"zero", "0.00"},
			{"negative zero", "-0.00"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := grammar.Candidate{
					Merchant:  "Swiggy",
					Direction: grammar.DirectionDebit,
					AmountRaw: tt.amountRaw,
				}
				_, err := Normalize(c, testGrammar())
				assert.ErrorIs(t, err, ErrBadAmount)
			})
		}
	})

	t.Run("merchant cleanup", func(t *testing.T) {
		tests := []struct {
			name     string
			merchant string
			want     string
		}{
			{"whitespace collapse", "  Simhadri \n Super   Market ", "Simhadri Super Market"},
			{"cut at marker", "Swiggy UPI ID: swiggy@ybl", "Swiggy"},
			{"marker match is case-insensitive", "Swiggy upi id: swiggy@ybl", "Swiggy"},
			{"second marker", "Airtel Note: july recharge", "Airtel"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := grammar.Candidate{
					Merchant:  tt.merchant,
					Direction: grammar.DirectionDebit,
					AmountRaw: "100",
				}
				record, err := Normalize(c, testGrammar())
				require.NoError(t, err)
				assert.Equal(t, tt.want, record.Merchant)
			})
		}
	})

	t.Run("empty merchant after cleanup is rejected", func(t *testing.T) {
		c := grammar.Candidate{
			Merchant:  "UPI ID: swiggy@ybl",
			Direction: grammar.DirectionDebit,
			AmountRaw: "100",
		}
		_, err := Normalize(c, testGrammar())
		assert.ErrorIs(t, err, ErrEmptyMerchant)
	})
}
