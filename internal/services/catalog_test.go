package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repoMocks "github.com/giftboxhq/giftbox-platform/internal/repositories/mocks"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	return args.Bool(0), args.Error(1)
}

func (m *cacheMock) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *cacheMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *cacheMock) Close() error {
	args := m.Called()

	return args.Error(0)
}

const availableTTL = time.Minute

func setupCatalogService() (*repoMocks.ProductRepository, *cacheMock, service.CatalogService) {
	productRepo := new(repoMocks.ProductRepository)
	c := new(cacheMock)

	return productRepo, c, service.NewCatalogService(productRepo, c, availableTTL)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	req := &models.CreateProductRequest{
		SKU:           "BC123",
		Category:      models.CategoryCustomization,
		Name:          "Birthday Card",
		Price:         150.00,
		StockQuantity: 10,
		Available:     true,
	}

	t.Run("Success - Invalidates Available Cache", func(t *testing.T) {
		// Arrange
		productRepo, c, svc := setupCatalogService()

		productRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.SKU == "BC123" && p.Status == "active"
		})).Return(nil).Once()
		c.On("Delete", ctx, "available_inventory:all").Return(nil).Once()
		c.On("Delete", ctx, "available_inventory:"+models.CategoryCustomization).Return(nil).Once()

		// Act
		product, err := svc.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "BC123", product.SKU)
		assert.Equal(t, "active", product.Status)

		productRepo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate SKU", func(t *testing.T) {
		// Arrange
		productRepo, _, svc := setupCatalogService()

		productRepo.On("CreateProduct", ctx, mock.Anything).
			Return(&pq.Error{Code: "23505"}).Once()

		// Act
		_, err := svc.CreateProduct(ctx, req)

		// Assert
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		assert.Contains(t, appErr.Message, "BC123")
	})
}

func TestGetProductBySKU(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productRepo, _, svc := setupCatalogService()

		productRepo.On("GetProductBySKU", ctx, "BC123").Return(birthdayCard(), nil).Once()

		// Act
		product, err := svc.GetProductBySKU(ctx, "BC123")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "BC123", product.SKU)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		productRepo, _, svc := setupCatalogService()

		productRepo.On("GetProductBySKU", ctx, "NOPE").Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := svc.GetProductBySKU(ctx, "NOPE")

		// Assert
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Patches Provided Fields Only", func(t *testing.T) {
		// Arrange
		productRepo, c, svc := setupCatalogService()

		existing := birthdayCard()
		newPrice := 175.00
		unavailable := false

		productRepo.On("GetProductBySKU", ctx, "BC123").Return(existing, nil).Once()
		productRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Price == 175.00 && !p.Available && p.Name == existing.Name
		})).Return(nil).Once()
		c.On("Delete", ctx, mock.Anything).Return(nil)

		// Act
		product, err := svc.UpdateProduct(ctx, "BC123", &models.UpdateProductRequest{
			Price:     &newPrice,
			Available: &unavailable,
		})

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 175.00, product.Price, 0.001)
		assert.False(t, product.Available)

		productRepo.AssertExpectations(t)
	})
}

func TestListAvailableProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache Miss - Fetches And Caches", func(t *testing.T) {
		// Arrange
		productRepo, c, svc := setupCatalogService()

		available := []*models.Product{birthdayCard()}

		c.On("Get", ctx, "available_inventory:beverages", mock.Anything).Return(false, nil).Once()
		productRepo.On("ListAvailableProducts", ctx, models.CategoryBeverages).Return(available, nil).Once()
		c.On("Set", ctx, "available_inventory:beverages", available, availableTTL).Return(nil).Once()

		// Act
		products, err := svc.ListAvailableProducts(ctx, models.CategoryBeverages)

		// Assert
		require.NoError(t, err)
		assert.Len(t, products, 1)

		c.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Cache Hit - Skips Database", func(t *testing.T) {
		// Arrange
		productRepo, c, svc := setupCatalogService()

		c.On("Get", ctx, "available_inventory:all", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*[]*models.Product)
				*out = []*models.Product{birthdayCard()}
			}).Return(true, nil).Once()

		// Act
		products, err := svc.ListAvailableProducts(ctx, "")

		// Assert
		require.NoError(t, err)
		assert.Len(t, products, 1)

		productRepo.AssertNotCalled(t, "ListAvailableProducts", mock.Anything, mock.Anything)
	})

	t.Run("Cache Failure - Falls Through To Database", func(t *testing.T) {
		// Arrange
		productRepo, c, svc := setupCatalogService()

		available := []*models.Product{birthdayCard()}

		c.On("Get", ctx, "available_inventory:all", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		productRepo.On("ListAvailableProducts", ctx, "").Return(available, nil).Once()
		c.On("Set", ctx, "available_inventory:all", available, availableTTL).
			Return(errors.New("redis down")).Once()

		// Act
		products, err := svc.ListAvailableProducts(ctx, "")

		// Assert
		require.NoError(t, err, "Cache failures must not break inventory reads")
		assert.Len(t, products, 1)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Page Arguments", func(t *testing.T) {
		// Arrange
		productRepo, _, svc := setupCatalogService()

		productRepo.On("ListProducts", ctx, 1, 20).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, total, err := svc.ListProducts(ctx, 0, 1000)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		productRepo.AssertExpectations(t)
	})
}
