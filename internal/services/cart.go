package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	"github.com/giftboxhq/giftbox-platform/pkg/stripe"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*models.CartSnapshot, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.CartSnapshot, error)
	UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSnapshot, error)
	RemoveItem(ctx context.Context, customerID uuid.UUID, sku string) (*models.CartSnapshot, error)
	ClearCart(ctx context.Context, customerID uuid.UUID) error
	ItemCount(ctx context.Context, customerID uuid.UUID) (int, error)
	Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	stripeClient stripe.Client
	currency     string
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, stripeClient stripe.Client, currency string) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		stripeClient: stripeClient,
		currency:     currency,
	}
}

// getOrCreateCart lazily creates an empty cart on first touch, so customers
// always have exactly one cart row.
func (s *cartService) getOrCreateCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	cart = &models.Cart{
		ID:         uuid.New(),
		CustomerID: customerID,
		Items:      make(map[string]models.CartItem),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// recalculate derives item count and total from the item lines. Totals are
// never accepted from the client.
func recalculate(cart *models.Cart) {

	var itemCount int
	var total float64

	for _, item := range cart.Items {
		itemCount += item.Quantity
		total += item.TotalPrice
	}

	cart.ItemCount = itemCount
	cart.Total = total
	cart.UpdatedAt = time.Now()
}

func snapshot(cart *models.Cart) *models.CartSnapshot {

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })

	return &models.CartSnapshot{
		Cart: items,
		Totals: models.CartTotals{
			ItemCount: cart.ItemCount,
			CartTotal: cart.Total,
		},
	}
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.CartSnapshot, error) {

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return snapshot(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.CartSnapshot, error) {

	product, err := s.productRepo.GetProductBySKU(ctx, req.SKU)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.BadRequestError("Unknown product: " + req.SKU)
		}
		return nil, appErrors.DatabaseError("Failed to look up product").WithError(err)
	}

	if !product.Available || product.Status != "active" {
		return nil, appErrors.BadRequestError("Product is not available: " + product.Name)
	}

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// One line per SKU: adding an existing SKU grows its quantity.
	quantity := req.Quantity
	if existing, ok := cart.Items[req.SKU]; ok {
		quantity += existing.Quantity
	}

	if product.StockQuantity < quantity {
		return nil, appErrors.OutOfStockError(fmt.Sprintf("Insufficient stock for %s: %d available", product.Name, product.StockQuantity))
	}

	cart.Items[req.SKU] = models.CartItem{
		SKU:         product.SKU,
		ProductName: product.Name,
		Description: product.Description,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		ImageData:   product.ImageData,
		TotalPrice:  float64(quantity) * product.Price,
	}

	recalculate(cart)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return snapshot(cart), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSnapshot, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	item, exists := cart.Items[req.SKU]
	if !exists {
		return nil, appErrors.BadRequestError("Item not found in the cart")
	}

	quantity := *req.Quantity

	if quantity == 0 {
		// Quantity zero means removal.
		delete(cart.Items, req.SKU)
	} else {
		product, err := s.productRepo.GetProductBySKU(ctx, req.SKU)
		if err == nil && product.StockQuantity < quantity {
			return nil, appErrors.OutOfStockError(fmt.Sprintf("Insufficient stock for %s: %d available", product.Name, product.StockQuantity))
		}

		item.Quantity = quantity
		item.TotalPrice = item.UnitPrice * float64(quantity)
		cart.Items[req.SKU] = item
	}

	recalculate(cart)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return snapshot(cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID uuid.UUID, sku string) (*models.CartSnapshot, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	if _, exists := cart.Items[sku]; !exists {
		return nil, appErrors.BadRequestError("Item not found in the cart")
	}

	delete(cart.Items, sku)
	recalculate(cart)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return snapshot(cart), nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {

	if err := s.cartRepo.ClearCart(ctx, customerID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) ItemCount(ctx context.Context, customerID uuid.UUID) (int, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	return cart.ItemCount, nil
}

// Checkout drains the cart into an order: stock is re-checked against the
// catalog, a payment intent is opened, stock is decremented, and the cart is
// emptied. The returned total is the server-computed cart total.
func (s *cartService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.BadRequestError("Cannot checkout an empty cart")
		}
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot checkout an empty cart")
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.GetProductBySKU(ctx, item.SKU)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.BadRequestError("Product no longer exists: " + item.SKU)
			}
			return nil, appErrors.DatabaseError("Failed to look up product").WithError(err)
		}
		if product.StockQuantity < item.Quantity {
			return nil, appErrors.OutOfStockError(fmt.Sprintf("Insufficient stock for %s: %d available", product.Name, product.StockQuantity))
		}
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		ContactNumber:   req.ContactNumber,
		Status:          models.OrderStatusPending,
		TotalAmount:     cart.Total,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: &req.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: time.Now(),
		})
	}

	intent, err := s.stripeClient.CreatePaymentIntent(
		int64(math.Round(cart.Total*100)), s.currency,
		"Gift box order for "+req.CustomerName, req.PaymentMethodID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to initiate payment").WithError(err)
	}

	order.PaymentIntentID = intent.ID

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	for _, item := range cart.Items {
		if err := s.productRepo.AdjustStock(ctx, item.SKU, -item.Quantity); err != nil {
			return nil, appErrors.DatabaseError("Failed to update inventory").WithError(err)
		}
	}

	if err := s.cartRepo.ClearCart(ctx, customerID); err != nil {
		return nil, appErrors.DatabaseError("Order created but failed to clear cart").WithError(err)
	}

	return &models.CheckoutResponse{
		Success:   true,
		Message:   "Order placed successfully",
		OrderID:   order.ID,
		TotalCost: order.TotalAmount,
	}, nil
}
