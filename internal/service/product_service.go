package service

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductService handles read access to the catalog
type ProductService struct {
	repo repository.CatalogRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.CatalogRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// Catalog returns the whole catalog snapshot
func (s *ProductService) Catalog(ctx context.Context) (*models.Catalog, error) {
	return s.repo.Load(ctx)
}

// ListProducts returns all products, or those of one category when categoryID is set
func (s *ProductService) ListProducts(ctx context.Context, categoryID models.ID) ([]models.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return catalog.Products, nil
	}
	return catalog.ProductsInCategory(categoryID), nil
}

// FeaturedProducts returns the products flagged as featured
func (s *ProductService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Featured(), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product, ok := catalog.FindProduct(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// ListCategories returns all categories
func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories, nil
}
