// Package money provides currency-safe financial arithmetic using integer
// cents and the Fowler Money pattern.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Common currency codes (ISO-4217)
const (
	INR = "INR" // Indian Rupee
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
)

// ErrCurrencyMismatch is returned when arithmetic mixes currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money represents a monetary value with currency. It wraps go-money for
// safe arithmetic and shopspring/decimal for precise conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from cents (minor units) and a currency code.
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: money.New(amountCents, currencyCode)}
}

// NewFromDecimal converts a decimal major-unit amount to Money, rounding to
// the currency's minor unit. JPY has no minor unit, KWD has three.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	minor := amount.Shift(int32(fraction(currencyCode))).Round(0).IntPart()
	return New(minor, currencyCode)
}

// fraction returns the currency's minor-unit digit count, defaulting to 2
// for codes go-money does not know.
func fraction(currencyCode string) int {
	if c := money.GetCurrency(currencyCode); c != nil {
		return c.Fraction
	}
	return 2
}

// Zero returns a zero value in the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	return m.m.Currency().Code
}

// IsNegative reports whether the value is below zero.
func (m *Money) IsNegative() bool {
	return m.m.IsNegative()
}

// Negate returns the value with the opposite sign.
func (m *Money) Negate() *Money {
	return New(-m.Amount(), m.Currency())
}

// Add returns the sum of two values in the same currency.
func (m *Money) Add(other *Money) (*Money, error) {
	if m.Currency() != other.Currency() {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: sum}, nil
}

// ToDecimal returns the value in major units.
func (m *Money) ToDecimal() decimal.Decimal {
	return decimal.New(m.Amount(), -int32(fraction(m.Currency())))
}

// Display renders the value with its currency symbol.
func (m *Money) Display() string {
	return m.m.Display()
}

// String implements fmt.Stringer.
func (m *Money) String() string {
	return m.Display()
}

type moneyJSON struct {
	Amount   int64  `json:"amount_cents"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes as {"amount_cents": N, "currency": "INR"}.
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount(), Currency: m.Currency()})
}

// UnmarshalJSON decodes the MarshalJSON representation.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Currency == "" {
		return errors.New("money: missing currency")
	}
	m.m = money.New(v.Amount, v.Currency)
	return nil
}

// Value implements driver.Valuer, storing minor units.
func (m *Money) Value() (driver.Value, error) {
	return m.Amount(), nil
}

// Scan implements sql.Scanner for integer minor-unit columns. The currency
// must be set separately by the caller.
func (m *Money) Scan(value any) error {
	cents, ok := value.(int64)
	if !ok {
		return fmt.Errorf("money: cannot scan %T", value)
	}
	currency := INR
	if m.m != nil {
		currency = m.Currency()
	}
	m.m = money.New(cents, currency)
	return nil
}
