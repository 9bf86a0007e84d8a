package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/giftboxhq/giftbox-platform/internal/api/middleware"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	"github.com/giftboxhq/giftbox-platform/internal/utils"
	"github.com/giftboxhq/giftbox-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *CatalogHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("sku", req.SKU), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("sku", product.SKU))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sku := r.PathValue("sku")

		product, err := h.catalogService.GetProductBySKU(r.Context(), sku)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *CatalogHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sku := r.PathValue("sku")

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.UpdateProduct(r.Context(), sku, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("sku", sku), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("sku", sku))
		response.Success(w, http.StatusOK, product)
	}
}

// ListInventory returns the full catalog, paginated. Staff view.
func (h *CatalogHandler) ListInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		products, total, err := h.catalogService.ListProducts(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list inventory", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, &models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListAvailableInventory returns the curated subset customers build gift
// boxes from, optionally filtered by category.
func (h *CatalogHandler) ListAvailableInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		category := r.URL.Query().Get("category")

		products, err := h.catalogService.ListAvailableProducts(r.Context(), category)
		if err != nil {
			logger.Error("Failed to list available inventory", slog.String("category", category), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
