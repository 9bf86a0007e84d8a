package handlers

import (
	"log/slog"
	"net/http"

	"github.com/giftboxhq/giftbox-platform/internal/api/middleware"
	"github.com/giftboxhq/giftbox-platform/internal/metrics"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	service "github.com/giftboxhq/giftbox-platform/internal/services"
	"github.com/giftboxhq/giftbox-platform/internal/utils"
	"github.com/giftboxhq/giftbox-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OtpHandler struct {
	otpService service.OtpService
	validator  *validator.Validate
}

func NewOtpHandler(otpService service.OtpService) *OtpHandler {
	return &OtpHandler{
		otpService: otpService,
		validator:  validator.New(),
	}
}

func (h *OtpHandler) SendOtp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SendOtpRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.otpService.SendOtp(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to send verification code", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		metrics.OtpSent()
		logger.Info("Verification code sent", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *OtpHandler) VerifyOtp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.VerifyOtpRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.otpService.VerifyOtp(r.Context(), &req)
		if err != nil {
			logger.Warn("Verification attempt failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Email verified", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}
