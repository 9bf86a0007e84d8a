package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepo(db)
	require.NotNil(t, repo, "NewOrderRepo should return a non-nil repository")

	return repo, mock
}

func sampleOrder() *models.Order {
	orderID := uuid.New()

	return &models.Order{
		ID:            orderID,
		CustomerID:    uuid.New(),
		CustomerName:  "Jordan Lee",
		Email:         "jordan@example.com",
		ContactNumber: "+15550100",
		Status:        models.OrderStatusPending,
		TotalAmount:   300.00,
		PaymentStatus: models.PaymentStatusPending,
		ShippingAddress: &models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US",
		},
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderID: orderID, SKU: "BC123", Quantity: 2, UnitPrice: 150.00},
		},
	}
}

func TestOrderRepository(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()

	t.Run("CreateOrder", func(t *testing.T) {
		t.Run("Success - Order And Items In One Transaction", func(t *testing.T) {
			// Arrange
			order := sampleOrder()
			addressJSON, err := json.Marshal(order.ShippingAddress)
			require.NoError(t, err)

			mock.ExpectBegin()
			mock.ExpectExec(`INSERT INTO orders`).
				WithArgs(order.ID, order.CustomerID, order.CustomerName, order.Email, order.ContactNumber,
					order.Status, order.TotalAmount, order.PaymentStatus, order.PaymentIntentID,
					addressJSON, order.DeliveryDate, order.SpecialInstructions, order.PackageName).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(`INSERT INTO order_items`).
				WithArgs(order.Items[0].ID, order.ID, "BC123", 2, 150.00).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			// Act
			err = repo.CreateOrder(ctx, order)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Item Insert Rolls Back", func(t *testing.T) {
			// Arrange
			order := sampleOrder()

			mock.ExpectBegin()
			mock.ExpectExec(`INSERT INTO orders`).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(`INSERT INTO order_items`).
				WillReturnError(errors.New("constraint violation"))
			mock.ExpectRollback()

			// Act
			err := repo.CreateOrder(ctx, order)

			// Assert
			require.Error(t, err)
			assert.ErrorContains(t, err, "failed to insert order item")
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})
	})

	t.Run("GetOrderByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			order := sampleOrder()
			addressJSON, err := json.Marshal(order.ShippingAddress)
			require.NoError(t, err)
			now := time.Now()

			orderRows := sqlmock.NewRows([]string{
				"customer_id", "customer_name", "email", "contact_number", "status", "total_amount",
				"payment_status", "payment_intent_id", "shipping_address", "delivery_date",
				"special_instructions", "package_name", "created_at", "updated_at",
			}).AddRow(order.CustomerID, order.CustomerName, order.Email, order.ContactNumber,
				order.Status, order.TotalAmount, order.PaymentStatus, order.PaymentIntentID,
				addressJSON, order.DeliveryDate, order.SpecialInstructions, order.PackageName, now, now)

			itemRows := sqlmock.NewRows([]string{"id", "sku", "quantity", "unit_price", "created_at"}).
				AddRow(order.Items[0].ID, "BC123", 2, 150.00, now)

			mock.ExpectQuery(`SELECT (.+) FROM orders\s+WHERE id = \$1`).
				WithArgs(order.ID).
				WillReturnRows(orderRows)
			mock.ExpectQuery(`SELECT (.+) FROM order_items\s+WHERE order_id = \$1`).
				WithArgs(order.ID).
				WillReturnRows(itemRows)

			// Act
			got, err := repo.GetOrderByID(ctx, order.ID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, order.CustomerID, got.CustomerID)
			assert.InDelta(t, 300.00, got.TotalAmount, 0.001)
			require.NotNil(t, got.ShippingAddress)
			assert.Equal(t, "Springfield", got.ShippingAddress.City)
			require.Len(t, got.Items, 1)
			assert.Equal(t, "BC123", got.Items[0].SKU)
			assert.Equal(t, order.ID, got.Items[0].OrderID)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			mock.ExpectQuery(`SELECT (.+) FROM orders\s+WHERE id = \$1`).
				WithArgs(id).
				WillReturnError(sql.ErrNoRows)

			// Act
			got, err := repo.GetOrderByID(ctx, id)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, got)
		})
	})

	t.Run("UpdateOrderStatus", func(t *testing.T) {
		id := uuid.New()

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3`).
				WithArgs(models.OrderStatusConfirmed, sqlmock.AnyArg(), id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.UpdateOrderStatus(ctx, id, models.OrderStatusConfirmed)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Unknown Order", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3`).
				WithArgs(models.OrderStatusConfirmed, sqlmock.AnyArg(), id).
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.UpdateOrderStatus(ctx, id, models.OrderStatusConfirmed)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})

	t.Run("UpdatePaymentStatus", func(t *testing.T) {
		id := uuid.New()

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`UPDATE orders SET payment_status = \$1, payment_intent_id = \$2, updated_at = \$3 WHERE id = \$4`).
				WithArgs(models.PaymentStatusPaid, "pi_789", sqlmock.AnyArg(), id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusPaid, "pi_789")

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})
	})
}
