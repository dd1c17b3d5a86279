package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent accepted from JSON. Arithmetic
// between two decimals rescales by 10^|exponent difference|.
const maxExponent = 18

// parseDecimal parses s and reports false for non-numeric text and for
// exponents outside ±maxExponent.
func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !inRange(d) {
		return decimal.Decimal{}, false
	}
	return d, true
}

func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxExponent && exp <= maxExponent
}

// Price is a nullable decimal amount. A product without a price, or a cart
// line that omits it, has Valid == false.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// NewPrice returns a present price.
func NewPrice(amount decimal.Decimal) Price {
	return Price{Amount: amount, Valid: true}
}

// MustPrice parses s and panics if it is not a decimal. Intended for fixtures.
func MustPrice(s string) Price {
	return NewPrice(decimal.RequireFromString(s))
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Price{}
		return nil
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	if !inRange(amount) {
		return fmt.Errorf("price %s is out of range", bytes.TrimSpace(data))
	}
	*p = NewPrice(amount)
	return nil
}

// Money is a decimal amount computed by the server. It is written as a bare
// JSON number carrying the exact decimal digits.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
