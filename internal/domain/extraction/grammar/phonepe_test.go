package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhonePeSinglePass(t *testing.T) {
	strategy := phonePeSinglePass{}

	t.Run("extracts a dense statement line", func(t *testing.T) {
		text := "Feb 13, 2025 Paid to Swiggy DEBIT ₹250"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)

		c := candidates[0]
		assert.Equal(t, "Feb 13, 2025", c.DateRaw)
		assert.Equal(t, "Swiggy", c.Merchant)
		assert.Equal(t, DirectionDebit, c.Direction)
		assert.Equal(t, "250", c.AmountRaw)
	})

	t.Run("preserves document order", func(t *testing.T) {
		text := "Feb 13, 2025 Paid to Swiggy DEBIT ₹250\n" +
			"Feb 14, 2025 Received from Ravi Kumar CREDIT ₹1,000.50\n" +
			"Feb 15, 2025 Paid to Amazon Pay DEBIT ₹499.00\n"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 3)
		assert.Equal(t, "Swiggy", candidates[0].Merchant)
		assert.Equal(t, "Ravi Kumar", candidates[1].Merchant)
		assert.Equal(t, DirectionCredit, candidates[1].Direction)
		assert.Equal(t, "1,000.50", candidates[1].AmountRaw)
		assert.Equal(t, "Amazon Pay", candidates[2].Merchant)
	})

	t.Run("merchant may span lines", func(t *testing.T) {
		text := "Feb 13, 2025 Paid to Simhadri\nSuper Market DEBIT ₹88.20"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Simhadri\nSuper Market", candidates[0].Merchant)
	})

	t.Run("skips malformed rows", func(t *testing.T) {
		tests := []struct {
			name string
			text string
		}{
			{"missing amount", "Feb 13, 2025 Paid to Swiggy DEBIT"},
			{"missing direction", "Feb 13, 2025 Paid to Swiggy ₹250"},
			{"missing date", "Paid to Swiggy DEBIT ₹250"},
			{"empty text", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Empty(t, strategy.Extract(tt.text))
			})
		}
	})
}
