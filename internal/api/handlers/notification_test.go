package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giftboxhq/giftbox-platform/internal/api/handlers"
	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	"github.com/giftboxhq/giftbox-platform/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotificationTest() (*mocks.NotificationService, *handlers.NotificationHandler) {
	notificationService := new(mocks.NotificationService)
	handler := handlers.NewNotificationHandler(notificationService)

	return notificationService, handler
}

func TestSendEmailHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		notificationService, handler := setupNotificationTest()

		body := []byte(`{"to":"jordan@example.com","subject":"Your gift box order is confirmed","content":"Thank you for your order"}`)
		req, _ := createAuthenticatedRequest(http.MethodPost, "/api/notifications/email", body)
		recorder := httptest.NewRecorder()

		notificationService.On("SendEmail", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.To == "jordan@example.com"
		})).Return(&models.NotificationResponse{
			ID:        uuid.New(),
			Type:      models.NotificationTypeEmail,
			Status:    models.StatusSent,
			Recipient: "jordan@example.com",
		}, nil).Once()

		// Act
		handler.SendEmail().ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			Success bool                        `json:"success"`
			Data    models.NotificationResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, models.StatusSent, resp.Data.Status)

		notificationService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Recipient", func(t *testing.T) {
		// Arrange
		notificationService, handler := setupNotificationTest()

		body := []byte(`{"to":"not-an-email","subject":"Hello","content":"World"}`)
		req, _ := createAuthenticatedRequest(http.MethodPost, "/api/notifications/email", body)
		recorder := httptest.NewRecorder()

		// Act
		handler.SendEmail().ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		notificationService.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Delivery Error", func(t *testing.T) {
		// Arrange
		notificationService, handler := setupNotificationTest()

		body := []byte(`{"to":"jordan@example.com","subject":"Hello","content":"World"}`)
		req, _ := createAuthenticatedRequest(http.MethodPost, "/api/notifications/email", body)
		recorder := httptest.NewRecorder()

		notificationService.On("SendEmail", mock.Anything, mock.Anything).
			Return(nil, appErrors.ThirdPartyError("Email provider unavailable")).Once()

		// Act
		handler.SendEmail().ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestListNotificationsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		notificationService, handler := setupNotificationTest()

		req, _ := createAuthenticatedRequest(http.MethodGet, "/api/notifications?page=1&pageSize=10", nil)
		recorder := httptest.NewRecorder()

		notificationService.On("ListNotifications", mock.Anything, 1, 10).
			Return([]*models.Notification{{ID: uuid.New(), Recipient: "jordan@example.com"}}, nil).Once()

		// Act
		handler.ListNotifications().ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		notificationService.AssertExpectations(t)
	})
}
