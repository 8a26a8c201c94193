package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperMoneyStructured(t *testing.T) {
	strategy := superMoneyStructured{}

	t.Run("parses a strict ledger line", func(t *testing.T) {
		text := "SIMHADRI SUPER MARKET SBI 7317 -10.00 25 January 2025 SUCCESS"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)

		c := candidates[0]
		assert.Equal(t, "SIMHADRI SUPER MARKET", c.Merchant)
		assert.Equal(t, "SBI 7317", c.BankAccount)
		assert.Equal(t, "-10.00", c.AmountRaw)
		assert.Equal(t, "25 January 2025", c.DateRaw)
		assert.Equal(t, "SUCCESS", c.Status)
		assert.Equal(t, DirectionUnknown, c.Direction)
	})

	t.Run("filters boilerplate", func(t *testing.T) {
		tests := []struct {
			name string
			line string
		}{
			{"header", "Transaction History"},
			{"column banner", "NAME BANK AMOUNT DATE STATUS"},
			{"footer", "Powered by YES BANK"},
			{"date range banner", "01 January 2025 to 31 January 2025"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Empty(t, strategy.Extract(tt.line))
			})
		}
	})

	t.Run("reconstructs when the status is missing", func(t *testing.T) {
		text := "RAVI GENERAL STORE HDFC 1204 -250.50 3 February 2025"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)

		c := candidates[0]
		assert.Equal(t, "RAVI GENERAL STORE", c.Merchant)
		assert.Equal(t, "HDFC 1204", c.BankAccount)
		assert.Equal(t, "-250.50", c.AmountRaw)
		assert.Equal(t, "3 February 2025", c.DateRaw)
		assert.Equal(t, "SUCCESS", c.Status, "missing status defaults to SUCCESS")
	})

	t.Run("reconstruction needs name bank amount and date", func(t *testing.T) {
		tests := []struct {
			name string
			line string
		}{
			{"no amount token", "SIMHADRI SUPER MARKET SBI 7317 25 January 2025 SUCCESS"},
			{"no bank keyword", "SIMHADRI SUPER MARKET 7317 -10.00 25 January 2025"},
			{"bank first means no name", "SBI 7317 -10.00 25 January 2025"},
			{"nothing after amount", "SIMHADRI SUPER MARKET SBI 7317 -10.00 SUCCESS"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Empty(t, strategy.Extract(tt.line))
			})
		}
	})

	t.Run("collapses uneven spacing", func(t *testing.T) {
		text := "SIMHADRI   SUPER MARKET   SBI  7317   -10.00   25 January 2025  SUCCESS"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)
		assert.Equal(t, "SIMHADRI SUPER MARKET", candidates[0].Merchant)
	})

	t.Run("multiple ledger lines", func(t *testing.T) {
		text := "Transaction History\n" +
			"NAME BANK AMOUNT DATE STATUS\n" +
			"SIMHADRI SUPER MARKET SBI 7317 -10.00 25 January 2025 SUCCESS\n" +
			"BHARTI AIRTEL HDFC 1204 -239.00 26 January 2025 SUCCESS\n" +
			"RAVI KUMAR ICICI 8852 +500.00 27 January 2025 PENDING\n" +
			"Powered by YES BANK\n"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 3)
		assert.Equal(t, "BHARTI AIRTEL", candidates[1].Merchant)
		assert.Equal(t, "PENDING", candidates[2].Status)
	})
}
