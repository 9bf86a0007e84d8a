package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type OrderService interface {
	CreateOrder(ctx context.Context, customerID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	otpRepo      repository.OtpRepository
	notification NotificationService
	sanitizer    *bluemonday.Policy
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, otpRepo repository.OtpRepository, notification NotificationService) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		otpRepo:      otpRepo,
		notification: notification,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

// dedupeLines keeps the first occurrence of each SKU.
func dedupeLines(lines []models.OrderProductLine) []models.OrderProductLine {

	seen := make(map[string]bool, len(lines))
	out := lines[:0]

	for _, line := range lines {
		if seen[line.SKU] {
			continue
		}
		seen[line.SKU] = true
		out = append(out, line)
	}

	return out
}

// CreateOrder persists a confirmed draft order. The customer's email must
// hold a live OTP verification; the verification is consumed here so one
// verified code admits exactly one order.
func (s *orderService) CreateOrder(ctx context.Context, customerID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {

	lines := dedupeLines(req.Items)

	if len(lines) == 0 {
		return nil, appErrors.BadRequestError("No products selected or available")
	}

	verified, err := s.otpRepo.ConsumeVerification(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Verification service unavailable").WithError(err)
	}

	if !verified {
		return nil, appErrors.NewAppError(appErrors.ErrCodeOtpRequired,
			"Email not verified. Please confirm the code sent to your email", 400)
	}

	order := &models.Order{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		CustomerName:        s.sanitizer.Sanitize(req.CustomerName),
		Email:               req.Email,
		ContactNumber:       req.ContactNumber,
		Status:              models.OrderStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
		ShippingAddress:     &req.ShippingAddress,
		DeliveryDate:        req.DeliveryDate,
		SpecialInstructions: s.sanitizer.Sanitize(req.SpecialInstructions),
		PackageName:         s.sanitizer.Sanitize(req.PackageName),
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	var total float64

	for _, line := range lines {
		product, err := s.productRepo.GetProductBySKU(ctx, line.SKU)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.BadRequestError("Unknown product: " + line.SKU)
			}
			return nil, appErrors.DatabaseError("Failed to look up product").WithError(err)
		}

		if product.StockQuantity < line.Quantity {
			return nil, appErrors.OutOfStockError(fmt.Sprintf("Insufficient stock for %s: %d available", product.Name, product.StockQuantity))
		}

		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			SKU:       product.SKU,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			CreatedAt: time.Now(),
		})

		total += float64(line.Quantity) * product.Price
	}

	order.TotalAmount = total

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.SKU, -item.Quantity); err != nil {
			return nil, appErrors.DatabaseError("Failed to update inventory").WithError(err)
		}
	}

	// Confirmation email is best effort; the order is already persisted.
	if _, err := s.notification.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      req.Email,
		Subject: "Your gift box order is confirmed",
		Content: fmt.Sprintf("Thank you %s! Order %s for %.2f has been received.", order.CustomerName, order.ID, order.TotalAmount),
		Metadata: map[string]any{
			"kind":     "order_confirmation",
			"order_id": order.ID.String(),
		},
	}); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to retrieve order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrderByID(ctx, id)
}
