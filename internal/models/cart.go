package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a customer's cart, keyed by SKU.
type CartItem struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageData   []byte  `json:"image_data,omitempty"`
	TotalPrice  float64 `json:"total_price"`
}

// Cart holds at most one CartItem per SKU. ItemCount and Total are always
// recomputed server-side after a mutation, never trusted from the client.
type Cart struct {
	ID         uuid.UUID           `json:"id"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Items      map[string]CartItem `json:"items"`
	ItemCount  int                 `json:"item_count"`
	Total      float64             `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type CartTotals struct {
	ItemCount int     `json:"itemCount"`
	CartTotal float64 `json:"cartTotal"`
}

// CartSnapshot is the wire shape of GET /api/cart: the item lines plus the
// server-computed totals the client must adopt wholesale.
type CartSnapshot struct {
	Cart   []CartItem `json:"cart"`
	Totals CartTotals `json:"totals"`
}

type AddItemRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,min=0"`
}

type RemoveItemRequest struct {
	SKU string `json:"sku" validate:"required"`
}

type CheckoutRequest struct {
	CustomerName    string  `json:"customer_name"    validate:"required"`
	Email           string  `json:"email"            validate:"required,email"`
	ContactNumber   string  `json:"contact_number"   validate:"required"`
	ShippingAddress Address `json:"shipping_address" validate:"required"`
	PaymentMethodID string  `json:"payment_method_id,omitempty"`
}

type CheckoutResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	OrderID   uuid.UUID `json:"orderId"`
	TotalCost float64   `json:"totalCost"`
}

type CartCountResponse struct {
	Success   bool `json:"success"`
	ItemCount int  `json:"itemCount"`
}
