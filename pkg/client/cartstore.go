package client

import (
	"context"
	"net/http"
	"sync"
)

// CartItem is one product line of the customer's server-held cart.
type CartItem struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageData   []byte  `json:"image_data,omitempty"`
	TotalPrice  float64 `json:"total_price"`
}

type cartSnapshot struct {
	Cart   []CartItem `json:"cart"`
	Totals struct {
		ItemCount int     `json:"itemCount"`
		CartTotal float64 `json:"cartTotal"`
	} `json:"totals"`
}

// OpResult reports the outcome of a single cart mutation.
type OpResult struct {
	Success bool
	Message string
}

// CheckoutData carries the shipping and payment fields for cart checkout.
type CheckoutData struct {
	CustomerName    string  `json:"customer_name"`
	Email           string  `json:"email"`
	ContactNumber   string  `json:"contact_number"`
	ShippingAddress Address `json:"shipping_address"`
	PaymentMethodID string  `json:"payment_method_id,omitempty"`
}

// CheckoutResult is the server's answer to a successful checkout.
type CheckoutResult struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	OrderID   string  `json:"orderId"`
	TotalCost float64 `json:"totalCost"`
}

// CartStore is the single source of truth for the customer's cart on this
// side of the wire. Every mutation goes through the server and is followed by
// a full reload, so local totals never drift from the server's computation.
type CartStore struct {
	client *Client

	mu        sync.RWMutex
	items     []CartItem
	itemCount int
	total     float64
	lastErr   string
}

func NewCartStore(client *Client) *CartStore {
	return &CartStore{client: client}
}

// LoadCart replaces the local view with the server's cart snapshot. On
// failure the prior state is kept and the error recorded.
func (s *CartStore) LoadCart(ctx context.Context) error {

	var snapshot cartSnapshot

	if err := s.client.do(ctx, http.MethodGet, "/api/cart", nil, &snapshot); err != nil {
		s.setError(errorMessage(err, "Failed to load cart"))
		return err
	}

	s.mu.Lock()
	s.items = snapshot.Cart
	s.itemCount = snapshot.Totals.ItemCount
	s.total = snapshot.Totals.CartTotal
	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// AddToCart adds quantity of the SKU, then reloads. No optimistic insert.
func (s *CartStore) AddToCart(ctx context.Context, sku string, quantity int) OpResult {

	if quantity < 1 {
		quantity = 1
	}

	payload := map[string]any{"sku": sku, "quantity": quantity}

	if err := s.client.do(ctx, http.MethodPost, "/api/cart/add", payload, nil); err != nil {
		msg := errorMessage(err, "Failed to add item to cart")
		s.setError(msg)
		return OpResult{Success: false, Message: msg}
	}

	if err := s.LoadCart(ctx); err != nil {
		return OpResult{Success: false, Message: errorMessage(err, "Item added but cart reload failed")}
	}

	return OpResult{Success: true, Message: "Item added to cart"}
}

// UpdateCartItem sets the SKU's quantity. Zero removes the line.
func (s *CartStore) UpdateCartItem(ctx context.Context, sku string, quantity int) OpResult {

	payload := map[string]any{"sku": sku, "quantity": quantity}

	if err := s.client.do(ctx, http.MethodPut, "/api/cart/update", payload, nil); err != nil {
		msg := errorMessage(err, "Failed to update cart item")
		s.setError(msg)
		return OpResult{Success: false, Message: msg}
	}

	if err := s.LoadCart(ctx); err != nil {
		return OpResult{Success: false, Message: errorMessage(err, "Cart updated but reload failed")}
	}

	return OpResult{Success: true, Message: "Cart updated"}
}

func (s *CartStore) RemoveFromCart(ctx context.Context, sku string) OpResult {

	payload := map[string]any{"sku": sku}

	if err := s.client.do(ctx, http.MethodDelete, "/api/cart/remove", payload, nil); err != nil {
		msg := errorMessage(err, "Failed to remove item from cart")
		s.setError(msg)
		return OpResult{Success: false, Message: msg}
	}

	if err := s.LoadCart(ctx); err != nil {
		return OpResult{Success: false, Message: errorMessage(err, "Item removed but cart reload failed")}
	}

	return OpResult{Success: true, Message: "Item removed"}
}

// ClearCart empties the cart. The result is deterministic, so the local
// state is reset directly without a reload.
func (s *CartStore) ClearCart(ctx context.Context) OpResult {

	if err := s.client.do(ctx, http.MethodDelete, "/api/cart/clear", nil, nil); err != nil {
		msg := errorMessage(err, "Failed to clear cart")
		s.setError(msg)
		return OpResult{Success: false, Message: msg}
	}

	s.mu.Lock()
	s.items = nil
	s.itemCount = 0
	s.total = 0
	s.lastErr = ""
	s.mu.Unlock()

	return OpResult{Success: true, Message: "Cart cleared"}
}

// Checkout submits the cart for payment and order creation. On success the
// local cart state is cleared; on failure it is left untouched.
func (s *CartStore) Checkout(ctx context.Context, data *CheckoutData) CheckoutResult {

	var result CheckoutResult

	if err := s.client.do(ctx, http.MethodPost, "/api/cart/checkout", data, &result); err != nil {
		return CheckoutResult{Success: false, Message: errorMessage(err, "Checkout failed")}
	}

	s.mu.Lock()
	s.items = nil
	s.itemCount = 0
	s.total = 0
	s.lastErr = ""
	s.mu.Unlock()

	result.Success = true

	return result
}

// IsInCart is a pure local lookup; no network call.
func (s *CartStore) IsInCart(sku string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.SKU == sku {
			return true
		}
	}

	return false
}

// GetItemQuantity returns the local quantity for the SKU, zero when absent.
func (s *CartStore) GetItemQuantity(sku string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.SKU == sku {
			return item.Quantity
		}
	}

	return 0
}

// Items returns a copy of the current cart lines.
func (s *CartStore) Items() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]CartItem, len(s.items))
	copy(items, s.items)

	return items
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemCount
}

func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Err returns the message from the most recent failed operation, empty after
// any success.
func (s *CartStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CartStore) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
