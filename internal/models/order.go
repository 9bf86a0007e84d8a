package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

// OrderProductLine is one resolved line of a draft order: a SKU the catalog
// could vouch for plus the requested quantity.
type OrderProductLine struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                  uuid.UUID     `json:"id"`
	CustomerID          uuid.UUID     `json:"customer_id"`
	CustomerName        string        `json:"customer_name"`
	Email               string        `json:"email"`
	ContactNumber       string        `json:"contact_number"`
	Status              OrderStatus   `json:"status"`
	TotalAmount         float64       `json:"total_amount"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	PaymentIntentID     string        `json:"payment_intent_id,omitempty"`
	ShippingAddress     *Address      `json:"shipping_address"`
	DeliveryDate        *time.Time    `json:"delivery_date,omitempty"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	PackageName         string        `json:"package_name,omitempty"`
	Items               []OrderItem   `json:"items"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// CreateOrderRequest is the persisted form of a client-assembled draft order.
// The email must carry a live OTP verification before the order is accepted.
type CreateOrderRequest struct {
	CustomerName        string             `json:"customer_name"        validate:"required"`
	Email               string             `json:"email"                validate:"required,email"`
	ContactNumber       string             `json:"contact_number"       validate:"required"`
	ShippingAddress     Address            `json:"shipping_address"     validate:"required"`
	DeliveryDate        *time.Time         `json:"delivery_date"        validate:"required"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	PackageName         string             `json:"package_name,omitempty"`
	Items               []OrderProductLine `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipping delivered cancelled"`
}
