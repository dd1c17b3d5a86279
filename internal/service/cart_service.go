package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/repository"
)

// PriceTolerance is the largest accepted difference between the price a
// client claims and the catalog price. It absorbs display rounding only.
var PriceTolerance = decimal.New(1, -2)

// summaryNamespace scopes the deterministic order summary references.
var summaryNamespace = uuid.MustParse("5b0e7c9e-3f1d-5a43-9d1e-0c6f2b8a4e71")

// CartService reconciles client carts against the trusted catalog.
// It holds no mutable state; concurrent calls are independent.
type CartService struct {
	catalog     repository.CatalogRepository
	credentials auth.CredentialChecker
}

// NewCartService creates a new cart service
func NewCartService(catalog repository.CatalogRepository, credentials auth.CredentialChecker) *CartService {
	return &CartService{
		catalog:     catalog,
		credentials: credentials,
	}
}

// ValidateCart authenticates the caller, decodes the submitted cart and
// reconciles it. The credential is checked before the cart is looked at.
func (s *CartService) ValidateCart(ctx context.Context, credential string, cart json.RawMessage) (*models.OrderSummary, error) {
	if err := s.credentials.Check(credential); err != nil {
		return nil, ErrUnauthorized
	}

	lines, err := DecodeCart(cart)
	if err != nil {
		return nil, err
	}

	return s.Reconcile(ctx, lines)
}

// DecodeCart decodes a JSON array of cart lines. Anything other than a
// non-empty array of objects is rejected with ErrEmptyCart.
func DecodeCart(raw json.RawMessage) ([]models.CartLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrEmptyCart
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, errors.Wrapf(ErrEmptyCart, "decode lines: %v", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return lines, nil
}

// Reconcile recomputes the order from the catalog. Lines are processed in
// submission order and the first failing line rejects the whole cart.
func (s *CartService) Reconcile(ctx context.Context, lines []models.CartLine) (*models.OrderSummary, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if !line.HasID {
			return nil, ErrMissingProductID
		}
	}

	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	index := newCatalogIndex(catalog.Products)

	total := decimal.Zero
	validated := make([]models.ValidatedLine, 0, len(lines))
	for _, line := range lines {
		v, err := reconcileLine(index, line)
		if err != nil {
			return nil, err
		}
		total = total.Add(v.Subtotal.Decimal)
		validated = append(validated, v)
	}

	summary := &models.OrderSummary{
		Lines: validated,
		Total: models.NewMoney(total),
	}
	summary.Reference = summaryReference(summary)
	return summary, nil
}

func reconcileLine(index catalogIndex, line models.CartLine) (models.ValidatedLine, error) {
	product, ok := index.lookup(line.ID)
	if !ok {
		return models.ValidatedLine{}, lineError(line.ID, ErrUnknownProduct)
	}

	if line.Quantity < 1 {
		return models.ValidatedLine{}, lineError(line.ID, ErrInvalidQuantity)
	}

	if !line.Price.Valid || !product.Price.Valid {
		return models.ValidatedLine{}, lineError(line.ID, ErrMissingPrice)
	}

	if line.Price.Amount.Sub(product.Price.Amount).Abs().GreaterThan(PriceTolerance) {
		return models.ValidatedLine{}, lineError(line.ID, ErrPriceMismatch)
	}

	// Always the catalog price, even inside the tolerance.
	unit := product.Price.Amount
	subtotal := unit.Mul(decimal.NewFromInt(line.Quantity))

	return models.ValidatedLine{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: models.NewMoney(unit),
		Quantity:  line.Quantity,
		Subtotal:  models.NewMoney(subtotal),
	}, nil
}

// summaryReference derives a stable UUIDv5 from the summary contents, so
// identical carts against the same catalog get identical references.
func summaryReference(summary *models.OrderSummary) string {
	var b strings.Builder
	for _, l := range summary.Lines {
		fmt.Fprintf(&b, "%s|%d|%s|%s\n", l.ID, l.Quantity, l.UnitPrice.String(), l.Subtotal.String())
	}
	fmt.Fprintf(&b, "total|%s", summary.Total.String())
	return uuid.NewSHA1(summaryNamespace, []byte(b.String())).String()
}
