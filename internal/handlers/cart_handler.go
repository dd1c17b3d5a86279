package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/apex-supplements/store-api/internal/metrics"
	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/service"
)

// maxCartBody bounds the request body of a cart submission.
const maxCartBody = 1 << 20

// CartHandler handles cart validation requests
type CartHandler struct {
	cartService *service.CartService
	metrics     *metrics.Metrics
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, m *metrics.Metrics, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		metrics:     m,
		log:         log,
	}
}

// ValidateCartRequest is the body of POST /cart/validate.
// Both fields are kept raw: the credential must be a JSON string and the
// cart's shape is checked by the cart service.
type ValidateCartRequest struct {
	Credential json.RawMessage `json:"credential"`
	Cart       json.RawMessage `json:"cart"`
}

// ValidateCartResponse is the success body of POST /cart/validate
type ValidateCartResponse struct {
	Response
	Summary *models.OrderSummary `json:"summary"`
}

// ValidateCart handles POST /cart/validate
func (h *CartHandler) ValidateCart(w http.ResponseWriter, r *http.Request) {
	req, err := decodeObject[ValidateCartRequest](w, r, maxCartBody)
	if err != nil {
		h.log.Warn("invalid cart request body", "error", err)
		h.metrics.ObserveValidation(string(service.ClassInput))
		WriteError(w, http.StatusBadRequest, "Request body must be a valid JSON object", h.log)
		return
	}

	summary, err := h.cartService.ValidateCart(r.Context(), jsonString(req.Credential), req.Cart)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	h.metrics.ObserveValidation("ok")
	h.metrics.CartTotal.Observe(summary.Total.InexactFloat64())
	h.log.Info("cart validated",
		"reference", summary.Reference,
		"lines", len(summary.Lines),
		"total", summary.Total.String(),
	)

	WriteJSON(w, http.StatusOK, ValidateCartResponse{
		Response: Response{OK: true, Message: "Cart validated successfully"},
		Summary:  summary,
	}, h.log)
}

func (h *CartHandler) writeValidationError(w http.ResponseWriter, err error) {
	class := service.Classify(err)
	h.metrics.ObserveValidation(string(class))

	switch class {
	case service.ClassAuth:
		h.log.Warn("cart rejected: bad credential")
		WriteError(w, http.StatusUnauthorized, "Invalid authentication token", h.log)
	case service.ClassInput:
		h.log.Info("cart rejected: malformed cart", "error", err)
		if errors.Is(err, service.ErrMissingProductID) {
			WriteError(w, http.StatusBadRequest, "A cart line has no product id", h.log)
			return
		}
		WriteError(w, http.StatusBadRequest, "The cart is empty or malformed", h.log)
	case service.ClassIntegrity:
		attrs := []any{"error", err}
		var lineErr *service.LineError
		if errors.As(err, &lineErr) {
			attrs = append(attrs, "product_id", lineErr.ProductID.String())
		}
		if errors.Is(err, service.ErrPriceMismatch) {
			h.log.Warn("cart rejected: price tampering suspected", attrs...)
		} else {
			h.log.Info("cart rejected: integrity check failed", attrs...)
		}
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	case service.ClassFatal:
		h.log.Error("store catalog unavailable", "error", err)
		WriteError(w, http.StatusInternalServerError, "Store catalog is unavailable", h.log)
	default:
		h.log.Error("failed to validate cart", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

var errNotObject = errors.New("body is not a JSON object")

// decodeObject reads a JSON object body into T.
func decodeObject[T any](w http.ResponseWriter, r *http.Request, limit int64) (T, error) {
	var out T

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return out, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return out, errNotObject
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// jsonString returns raw as a string if it is a JSON string, "" otherwise.
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
