package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giftboxhq/giftbox-platform/internal/models"
	sendgridclient "github.com/giftboxhq/giftbox-platform/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	service := sendgridclient.NewEmailService("test-api-key", "sender@example.com", "Test Sender")

	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestEmailServiceSend(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@giftboxhq.com"
	fromName := "GiftBox Orders"
	ctx := t.Context()

	newService := func(t *testing.T, handler http.HandlerFunc, capture *sendgridV3Payload) sendgridclient.EmailService {
		t.Helper()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			defer r.Body.Close()

			require.NoError(t, json.Unmarshal(body, capture))
			handler(w, r)
		}))
		t.Cleanup(server.Close)

		service := sendgridclient.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL

		return service
	}

	t.Run("Success - Simple Email", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		service := newService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusAccepted)
		}, &payload)

		// Act
		err := service.Send(ctx, &models.EmailNotificationRequest{
			To:          "jordan@example.com",
			Subject:     "Your order confirmation code",
			Content:     "Your code is 123456",
			HTMLContent: "<p>Your code is <b>123456</b></p>",
		})

		// Assert
		require.NoError(t, err)

		require.Len(t, payload.Personalizations, 1)
		pers := payload.Personalizations[0]
		require.Len(t, pers.To, 1)
		assert.Equal(t, "jordan@example.com", pers.To[0]["email"])
		assert.Equal(t, "Your order confirmation code", pers.Subject)

		assert.Equal(t, fromEmail, payload.From["email"])
		assert.Equal(t, fromName, payload.From["name"])

		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "Your code is 123456", payload.Content[0].Value)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Success - With CC", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		service := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}, &payload)

		// Act
		err := service.Send(ctx, &models.EmailNotificationRequest{
			To:      "jordan@example.com",
			CC:      []string{"support@giftboxhq.com"},
			Subject: "Your gift box order is confirmed",
			Content: "Thanks for your order",
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		require.Len(t, payload.Personalizations[0].Cc, 1)
		assert.Equal(t, "support@giftboxhq.com", payload.Personalizations[0].Cc[0]["email"])
	})

	t.Run("Failure - API Error", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		service := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid email"}]}`))
		}, &payload)

		// Act
		err := service.Send(ctx, &models.EmailNotificationRequest{
			To:      "bad@example.com",
			Subject: "Subject",
			Content: "Content",
		})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email, status code: 400")
	})

	t.Run("Failure - Network Error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		service := sendgridclient.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		// Act
		err := service.Send(ctx, &models.EmailNotificationRequest{
			To:      "jordan@example.com",
			Subject: "Subject",
			Content: "Content",
		})

		// Assert
		require.Error(t, err)
	})
}
