package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/giftboxhq/giftbox-platform/internal/cache"
	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/microcosm-cc/bluemonday"
)

// CatalogService manages the product catalog. The full catalog is staff
// territory; customers only see the available subset.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	UpdateProduct(ctx context.Context, sku string, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	ListAvailableProducts(ctx context.Context, category string) ([]*models.Product, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	cache        cache.Cache
	availableTTL time.Duration
	sanitizer    *bluemonday.Policy
}

func NewCatalogService(productRepo repository.ProductRepository, c cache.Cache, availableTTL time.Duration) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		cache:        c,
		availableTTL: availableTTL,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func availableCacheKey(category string) string {
	if category == "" {
		return "available_inventory:all"
	}
	return "available_inventory:" + category
}

// invalidateAvailable drops every cached available-inventory view. Cache
// misses are cheap; stale availability is not.
func (s *catalogService) invalidateAvailable(ctx context.Context, category string) {

	keys := []string{availableCacheKey(""), availableCacheKey(category)}

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			slog.Warn("Failed to invalidate inventory cache", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:            uuid.New(),
		SKU:           req.SKU,
		Category:      req.Category,
		Name:          s.sanitizer.Sanitize(req.Name),
		Description:   s.sanitizer.Sanitize(req.Description),
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageData:     req.ImageData,
		Available:     req.Available,
		Status:        "active",
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, appErrors.DuplicateEntryError("Product already exists: " + req.SKU)
		}
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidateAvailable(ctx, product.Category)

	return product, nil
}

func (s *catalogService) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {

	product, err := s.productRepo.GetProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found: " + sku).WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to retrieve product").WithError(err)
	}

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, sku string, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.Available != nil {
		product.Available = *req.Available
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found: " + sku).WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidateAvailable(ctx, product.Category)

	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	products, total, err := s.productRepo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

// ListAvailableProducts serves the customer-facing inventory, cached per
// category. A cache failure falls through to the database.
func (s *catalogService) ListAvailableProducts(ctx context.Context, category string) ([]*models.Product, error) {

	key := availableCacheKey(category)

	var cached []*models.Product

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Inventory cache lookup failed", slog.String("key", key), slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	products, err := s.productRepo.ListAvailableProducts(ctx, category)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list available products").WithError(err)
	}

	if err := s.cache.Set(ctx, key, products, s.availableTTL); err != nil {
		slog.Warn("Failed to cache available inventory", slog.String("key", key), slog.Any("error", err))
	}

	return products, nil
}
