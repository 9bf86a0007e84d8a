package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/giftboxhq/giftbox-platform/internal/api/middleware"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	"github.com/giftboxhq/giftbox-platform/internal/utils"
	"github.com/giftboxhq/giftbox-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email notification", slog.String("to", req.To), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Email notification sent", slog.String("notificationId", resp.ID.String()))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		notifications, err := h.notificationService.ListNotifications(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}
