package service

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/repository"
)

var (
	ErrUnauthorized     = errors.New("invalid authentication token")
	ErrEmptyCart        = errors.New("cart is empty or malformed")
	ErrMissingProductID = errors.New("a cart line has no product id")

	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrMissingPrice    = errors.New("missing price")
	ErrPriceMismatch   = errors.New("price mismatch")

	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidLogin       = errors.New("invalid username or password")
)

// LineError reports the first cart line that failed reconciliation.
type LineError struct {
	ProductID models.ID
	Err       error
}

func (e *LineError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownProduct):
		return fmt.Sprintf("product with id %s does not exist in the store", e.ProductID)
	case errors.Is(e.Err, ErrInvalidQuantity):
		return fmt.Sprintf("invalid quantity for product with id %s", e.ProductID)
	case errors.Is(e.Err, ErrMissingPrice):
		return fmt.Sprintf("missing price for product with id %s", e.ProductID)
	case errors.Is(e.Err, ErrPriceMismatch):
		return fmt.Sprintf("price mismatch detected for product with id %s", e.ProductID)
	default:
		return fmt.Sprintf("product %s: %v", e.ProductID, e.Err)
	}
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(id models.ID, err error) error {
	return &LineError{ProductID: id, Err: err}
}

// ErrorClass groups failures by who has to act on them.
type ErrorClass string

const (
	ClassNone      ErrorClass = "none"
	ClassInput     ErrorClass = "input"
	ClassAuth      ErrorClass = "auth"
	ClassIntegrity ErrorClass = "integrity"
	ClassFatal     ErrorClass = "fatal"
	ClassInternal  ErrorClass = "internal"
)

// Classify maps an error returned by this package to its class.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredential), errors.Is(err, ErrInvalidLogin):
		return ClassAuth
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrMissingProductID), errors.Is(err, ErrMissingCredentials):
		return ClassInput
	case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrMissingPrice), errors.Is(err, ErrPriceMismatch):
		return ClassIntegrity
	case errors.Is(err, repository.ErrCatalogUnavailable), errors.Is(err, repository.ErrUsersUnavailable):
		return ClassFatal
	default:
		return ClassInternal
	}
}
