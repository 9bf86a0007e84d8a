package models

import (
	"time"

	"github.com/google/uuid"
)

// Product categories a gift box can draw from.
const (
	CategoryPackaging     = "packaging"
	CategoryBeverages     = "beverages"
	CategoryFood          = "food"
	CategoryKitchenware   = "kitchenware"
	CategoryHomeDecor     = "home decor"
	CategoryFaceAndBody   = "face & body"
	CategoryClothing      = "clothing"
	CategoryCustomization = "customization"
	CategoryOthers        = "others"
)

type Product struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Category      string    `json:"category"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	ImageData     []byte    `json:"image_data,omitempty"`
	// Available marks staff-curated products exposed to customers.
	Available bool      `json:"available"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	SKU           string  `json:"sku"            validate:"required"`
	Category      string  `json:"category"       validate:"required"`
	Name          string  `json:"name"           validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"          validate:"required,gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	ImageData     []byte  `json:"image_data,omitempty"`
	Available     bool    `json:"available"`
}

type UpdateProductRequest struct {
	Category      *string  `json:"category,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Available     *bool    `json:"available,omitempty"`
	Status        *string  `json:"status,omitempty"`
}
