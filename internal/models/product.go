package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a product or a category.
// The store data and the browser client use both numeric and string ids,
// so 1 and "1" decode to the same ID.
type ID string

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	s, ok := scalarID(data)
	if !ok {
		return fmt.Errorf("id must be a number or a string, got %s", data)
	}
	*id = ID(s)
	return nil
}

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// scalarID extracts the textual form of a JSON number or string.
func scalarID(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", false
		}
		return canonicalNumber(n.String()), true
	default:
		return "", false
	}
}

// canonicalNumber rewrites integral numbers such as 1.0 or 1e2 in their
// plain integer form, so they index the same product as 1 and 100.
func canonicalNumber(s string) string {
	d, ok := parseDecimal(s)
	if !ok || !d.IsInteger() {
		return s
	}
	return d.String()
}

// Product is a purchasable item of the store catalog.
// Price is authoritative: it is the only price the server ever charges.
type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	CategoryID  ID     `json:"category_id"`
	Image       string `json:"image,omitempty"`
	Format      string `json:"format,omitempty"`
	Flavor      string `json:"flavor,omitempty"`
	Description string `json:"description,omitempty"`
	Featured    bool   `json:"featured"`
}

// Category groups products on the storefront.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Catalog is a snapshot of the trusted store data file.
// A Catalog returned by a repository is shared and must be treated as read-only.
type Catalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// FindProduct returns the product with the given id.
func (c *Catalog) FindProduct(id ID) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductsInCategory returns the products whose category matches id, in catalog order.
func (c *Catalog) ProductsInCategory(id ID) []Product {
	products := make([]Product, 0)
	for _, p := range c.Products {
		if p.CategoryID == id {
			products = append(products, p)
		}
	}
	return products
}

// Featured returns the products flagged for the storefront landing page.
func (c *Catalog) Featured() []Product {
	products := make([]Product, 0)
	for _, p := range c.Products {
		if p.Featured {
			products = append(products, p)
		}
	}
	return products
}
