package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineMatch(t *testing.T) {
	t.Run("default patterns", func(t *testing.T) {
		engine := NewEngine(DefaultPatterns())

		tests := []struct {
			merchant string
			want     string
		}{
			{"Swiggy", "Food & Dining"},
			{"SWIGGY INSTAMART ORDER", "Food & Dining"},
			{"Simhadri Super Market", "Groceries"},
			{"Airtel Prepaid Recharge", "Utilities"},
			{"Zerodha Broking Ltd", "Investments"},
			{"Ravi Kumar", ""},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, engine.Match(tt.merchant), tt.merchant)
		}
	})

	t.Run("longest keyword wins", func(t *testing.T) {
		engine := NewEngine([]Pattern{
			{Keyword: "amazon", Category: "Shopping"},
			{Keyword: "amazon pay", Category: "Payments"},
		})

		assert.Equal(t, "Payments", engine.Match("AMAZON PAY INDIA"))
		assert.Equal(t, "Shopping", engine.Match("Amazon Retail"))
	})

	t.Run("build skips blank patterns", func(t *testing.T) {
		engine := NewEngine([]Pattern{
			{Keyword: "  ", Category: "Noise"},
			{Keyword: "swiggy", Category: ""},
			{Keyword: "zomato", Category: "Food & Dining"},
		})

		assert.Equal(t, "", engine.Match("Swiggy"))
		assert.Equal(t, "Food & Dining", engine.Match("Zomato"))
	})

	t.Run("build replaces the pattern set", func(t *testing.T) {
		engine := NewEngine([]Pattern{{Keyword: "swiggy", Category: "Food & Dining"}})
		engine.Build([]Pattern{{Keyword: "swiggy", Category: "Takeout"}})

		assert.Equal(t, "Takeout", engine.Match("Swiggy"))
	})

	t.Run("empty pattern set never matches", func(t *testing.T) {
		engine := NewEngine(nil)
		assert.Equal(t, "", engine.Match("Swiggy"))
	})
}

func TestCategorize(t *testing.T) {
	svc := NewService()

	t.Run("exact hit", func(t *testing.T) {
		assert.Equal(t, "Food & Dining", svc.Categorize("Zomato Online Order"))
	})

	t.Run("fuzzy pass recovers garbled names", func(t *testing.T) {
		tests := []struct {
			merchant string
			want     string
		}{
			{"Swigy", "Food & Dining"},
			{"NETFLX SUBSCRIPTION", "Entertainment"},
			{"Blnkit Delivery", "Groceries"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, svc.Categorize(tt.merchant), tt.merchant)
		}
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, "", svc.Categorize("Ravi Kumar"))
		assert.Equal(t, "", svc.Categorize(""))
	})
}
