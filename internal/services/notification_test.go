package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/giftboxhq/giftbox-platform/internal/models"
	repoMocks "github.com/giftboxhq/giftbox-platform/internal/repositories/mocks"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	sendgridlib "github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type emailServiceMock struct {
	mock.Mock
}

func (m *emailServiceMock) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

func (m *emailServiceMock) GetSendGridClient() *sendgridlib.Client {
	return nil
}

func setupNotificationService() (*repoMocks.NotificationRepository, *emailServiceMock, service.NotificationService) {
	repo := new(repoMocks.NotificationRepository)
	email := new(emailServiceMock)

	return repo, email, service.NewNotificationService(repo, email)
}

func TestSendEmail(t *testing.T) {
	ctx := context.Background()

	req := &models.EmailNotificationRequest{
		To:      testEmail,
		Subject: "Your gift box order is confirmed",
		Content: "Thank you for your order",
		Metadata: map[string]any{
			"kind": "order_confirmation",
		},
	}

	t.Run("Success - Record Marked Sent", func(t *testing.T) {
		// Arrange
		repo, email, svc := setupNotificationService()

		repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Recipient == testEmail && n.Status == models.StatusPending && len(n.Metadata) > 0
		})).Return(nil).Once()
		email.On("Send", ctx, req).Return(nil).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.Anything, models.StatusSent, "").Return(nil).Once()

		// Act
		resp, err := svc.SendEmail(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		assert.Equal(t, testEmail, resp.Recipient)

		repo.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("Failure - Delivery Error Marks Record Failed", func(t *testing.T) {
		// Arrange
		repo, email, svc := setupNotificationService()

		repo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		email.On("Send", ctx, req).Return(errors.New("sendgrid unavailable")).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.Anything, models.StatusFailed, "sendgrid unavailable").
			Return(nil).Once()

		// Act
		resp, err := svc.SendEmail(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "failed to send email")

		repo.AssertExpectations(t)
	})

	t.Run("Failure - Record Creation Error Skips Delivery", func(t *testing.T) {
		// Arrange
		repo, email, svc := setupNotificationService()

		repo.On("CreateNotification", ctx, mock.Anything).Return(errors.New("db down")).Once()

		// Act
		resp, err := svc.SendEmail(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)

		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Page Arguments", func(t *testing.T) {
		// Arrange
		repo, _, svc := setupNotificationService()

		repo.On("ListNotifications", ctx, 1, 10).Return([]*models.Notification{}, nil).Once()

		// Act
		_, err := svc.ListNotifications(ctx, 0, 500)

		// Assert
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
