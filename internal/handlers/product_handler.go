package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
// Returns all products, or those of one category with ?category=<id>
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := models.ID(strings.TrimSpace(r.URL.Query().Get("category")))

	products, err := h.service.ListProducts(r.Context(), category)
	if err != nil {
		h.writeCatalogError(w, "failed to list products", err)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// ListFeatured handles GET /api/products/featured
func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FeaturedProducts(r.Context())
	if err != nil {
		h.writeCatalogError(w, "failed to list featured products", err)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/products/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))

	if productID == "" {
		h.logger.Warn("product ID is required")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), models.ID(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.writeCatalogError(w, "failed to get product", err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.writeCatalogError(w, "failed to list categories", err)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

func (h *ProductHandler) writeCatalogError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	if service.Classify(err) == service.ClassFatal {
		WriteError(w, http.StatusInternalServerError, "Store catalog is unavailable", h.logger)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
}
