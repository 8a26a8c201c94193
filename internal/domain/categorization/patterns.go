package categorization

// DefaultPatterns cover the merchants commonly seen on Indian UPI
// statements. Users can extend these with their own category rules.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Keyword: "swiggy", Category: "Food & Dining"},
		{Keyword: "zomato", Category: "Food & Dining"},
		{Keyword: "dominos", Category: "Food & Dining"},
		{Keyword: "mcdonald", Category: "Food & Dining"},
		{Keyword: "kfc", Category: "Food & Dining"},

		{Keyword: "bigbasket", Category: "Groceries"},
		{Keyword: "blinkit", Category: "Groceries"},
		{Keyword: "zepto", Category: "Groceries"},
		{Keyword: "dmart", Category: "Groceries"},
		{Keyword: "super market", Category: "Groceries"},
		{Keyword: "supermarket", Category: "Groceries"},
		{Keyword: "kirana", Category: "Groceries"},

		{Keyword: "amazon", Category: "Shopping"},
		{Keyword: "flipkart", Category: "Shopping"},
		{Keyword: "myntra", Category: "Shopping"},
		{Keyword: "ajio", Category: "Shopping"},

		{Keyword: "airtel", Category: "Utilities"},
		{Keyword: "jio", Category: "Utilities"},
		{Keyword: "vodafone", Category: "Utilities"},
		{Keyword: "bsnl", Category: "Utilities"},
		{Keyword: "electricity", Category: "Utilities"},
		{Keyword: "tata power", Category: "Utilities"},

		{Keyword: "uber", Category: "Transport"},
		{Keyword: "ola", Category: "Transport"},
		{Keyword: "rapido", Category: "Transport"},
		{Keyword: "irctc", Category: "Transport"},
		{Keyword: "redbus", Category: "Transport"},
		{Keyword: "petrol", Category: "Transport"},
		{Keyword: "indian oil", Category: "Transport"},

		{Keyword: "netflix", Category: "Entertainment"},
		{Keyword: "spotify", Category: "Entertainment"},
		{Keyword: "hotstar", Category: "Entertainment"},
		{Keyword: "bookmyshow", Category: "Entertainment"},

		{Keyword: "pharmacy", Category: "Health"},
		{Keyword: "apollo", Category: "Health"},
		{Keyword: "medplus", Category: "Health"},
		{Keyword: "hospital", Category: "Health"},

		{Keyword: "zerodha", Category: "Investments"},
		{Keyword: "groww", Category: "Investments"},
		{Keyword: "mutual fund", Category: "Investments"},
	}
}
