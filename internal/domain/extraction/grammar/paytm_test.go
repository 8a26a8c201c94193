package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paytmReceiptSample = `15 Jul
8:02 PM
Paid to Airtel
UPI ID: airtel@paytm
State Bank of India - 7317
- Rs.22
16 Jul
10:15 AM
Received from Anil Sharma
UPI Ref No: 520934871234
HDFC Bank - 1204
Rs.500
17 Jul
1:40 PM
Paid to Zomato
UPI ID: zomato@paytm
State Bank of India - 7317
- Rs.318.50
`

func TestPaytmLineScan(t *testing.T) {
	strategy := paytmLineScan{}

	t.Run("parses receipt-style blocks", func(t *testing.T) {
		candidates := strategy.Extract(paytmReceiptSample)
		require.Len(t, candidates, 3)

		first := candidates[0]
		assert.Equal(t, "15 Jul", first.DateRaw)
		assert.Equal(t, "8:02 PM", first.TimeRaw)
		assert.Equal(t, "Airtel", first.Merchant)
		assert.Equal(t, DirectionDebit, first.Direction)
		assert.Equal(t, "22", first.AmountRaw)

		second := candidates[1]
		assert.Equal(t, "16 Jul", second.DateRaw)
		assert.Equal(t, "Anil Sharma", second.Merchant)
		assert.Equal(t, DirectionCredit, second.Direction)
		assert.Equal(t, "500", second.AmountRaw)

		third := candidates[2]
		assert.Equal(t, "Zomato", third.Merchant)
		assert.Equal(t, "318.50", third.AmountRaw)
	})

	t.Run("minus before the marker forces debit", func(t *testing.T) {
		text := "15 Jul\n8:02 PM\nReceived from Airtel\n- Rs.22"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)
		assert.Equal(t, DirectionDebit, candidates[0].Direction)
	})

	t.Run("drops blocks without a merchant", func(t *testing.T) {
		text := "15 Jul\n8:02 PM\nUPI ID: airtel@paytm\n- Rs.22"
		assert.Empty(t, strategy.Extract(text))
	})

	t.Run("drops blocks without an amount", func(t *testing.T) {
		text := "15 Jul\n8:02 PM\nPaid to Airtel\nUPI ID: airtel@paytm"
		assert.Empty(t, strategy.Extract(text))
	})

	t.Run("amount search stops at the next block", func(t *testing.T) {
		// The first block has no amount of its own; the second block's
		// amount must not leak backwards.
		text := "15 Jul\nPaid to Airtel\n16 Jul\nPaid to Zomato\n- Rs.318.50"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Zomato", candidates[0].Merchant)
	})
}

func TestPaytmWideWindow(t *testing.T) {
	strategy := paytmWideWindow{}

	t.Run("spans boilerplate between merchant and amount", func(t *testing.T) {
		candidates := strategy.Extract(paytmReceiptSample)
		require.NotEmpty(t, candidates)

		first := candidates[0]
		assert.Equal(t, "15 Jul", first.DateRaw)
		assert.Equal(t, "Paid to Airtel", "Paid to "+first.Merchant)
		assert.Equal(t, DirectionDebit, first.Direction)
		assert.Equal(t, "22", first.AmountRaw)
	})

	t.Run("signed amount wins over the verb", func(t *testing.T) {
		text := "15 Jul\n8:02 PM\nReceived from Airtel\nnoise\n- Rs.22"

		candidates := strategy.Extract(text)
		require.Len(t, candidates, 1)
		assert.Equal(t, DirectionDebit, candidates[0].Direction)
	})
}
