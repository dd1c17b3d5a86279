package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CartLine is a line of a cart as submitted by the client.
// Quantity and Price are claims, not facts: nothing here is trusted.
type CartLine struct {
	ID       ID
	HasID    bool
	Quantity int64
	Price    Price
}

type cartLineJSON struct {
	ID       json.RawMessage `json:"id"`
	Quantity json.RawMessage `json:"quantity"`
	Price    json.RawMessage `json:"price"`
}

// UnmarshalJSON decodes a cart line leniently, the way browsers actually
// send them: quantities and prices may arrive as numbers or strings.
// A missing or non-numeric quantity decodes to 0 and a missing price
// decodes to an invalid Price, so the reconciliation rules reject them.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw cartLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, hasID := scalarID(raw.ID)
	*l = CartLine{
		ID:       ID(id),
		HasID:    hasID,
		Quantity: coerceQuantity(raw.Quantity),
		Price:    coercePrice(raw.Price),
	}
	return nil
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       *ID   `json:"id,omitempty"`
		Quantity int64 `json:"quantity"`
		Price    Price `json:"price"`
	}{Quantity: l.Quantity, Price: l.Price}
	if l.HasID {
		id := l.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

// ValidatedLine is a cart line after reconciliation. UnitPrice always comes
// from the catalog.
type ValidatedLine struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  Money  `json:"subtotal"`
}

// OrderSummary is the authoritative result of a successful reconciliation.
type OrderSummary struct {
	Reference string          `json:"reference"`
	Lines     []ValidatedLine `json:"lines"`
	Total     Money           `json:"total"`
}

func scalarValue(raw json.RawMessage) (any, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func coerceQuantity(raw json.RawMessage) int64 {
	v, ok := scalarValue(raw)
	if !ok {
		return 0
	}

	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(math.Trunc(f))
}

func coercePrice(raw json.RawMessage) Price {
	v, ok := scalarValue(raw)
	if !ok {
		return Price{}
	}

	switch t := v.(type) {
	case json.Number:
		d, ok := parseDecimal(t.String())
		if !ok {
			return NewPrice(decimal.Zero)
		}
		return NewPrice(d)
	case string:
		d, ok := parseDecimal(strings.TrimSpace(t))
		if !ok {
			return NewPrice(decimal.Zero)
		}
		return NewPrice(d)
	case bool:
		if t {
			return NewPrice(decimal.NewFromInt(1))
		}
		return NewPrice(decimal.Zero)
	default:
		return NewPrice(decimal.Zero)
	}
}
