package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	appErrors "github.com/giftboxhq/giftbox-platform/internal/errors"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
)

// OtpService is the confirmation checkpoint between assembling an order and
// persisting it: a 6-digit code is mailed to the customer and must be
// verified before the order service will accept the draft.
type OtpService interface {
	SendOtp(ctx context.Context, req *models.SendOtpRequest) (*models.SendOtpResponse, error)
	VerifyOtp(ctx context.Context, req *models.VerifyOtpRequest) (*models.VerifyOtpResponse, error)
}

type otpService struct {
	otpRepo      repository.OtpRepository
	notification NotificationService
	maxAttempts  int
	codeTTL      time.Duration
}

func NewOtpService(otpRepo repository.OtpRepository, notification NotificationService, maxAttempts int, codeTTL time.Duration) OtpService {
	return &otpService{
		otpRepo:      otpRepo,
		notification: notification,
		maxAttempts:  maxAttempts,
		codeTTL:      codeTTL,
	}
}

func generateCode() (string, error) {

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *otpService) SendOtp(ctx context.Context, req *models.SendOtpRequest) (*models.SendOtpResponse, error) {

	allowed, retryAfter, err := s.otpRepo.CheckResendCooldown(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Verification service unavailable").WithError(err)
	}

	if !allowed {
		return nil, appErrors.TooManyRequestsError(
			fmt.Sprintf("Please wait %d seconds before requesting a new code", retryAfter))
	}

	code, err := generateCode()
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate verification code").WithError(err)
	}

	challenge := &models.OtpChallenge{
		Email:     req.Email,
		Code:      code,
		CreatedAt: time.Now(),
	}

	// A fresh send supersedes any prior challenge for this email.
	if err := s.otpRepo.StoreChallenge(ctx, challenge); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to store verification code").WithError(err)
	}

	minutes := int(s.codeTTL.Minutes())

	_, err = s.notification.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      req.Email,
		Subject: "Your order confirmation code",
		Content: fmt.Sprintf("Your confirmation code is %s. It expires in %d minutes.", code, minutes),
		HTMLContent: fmt.Sprintf("<p>Your confirmation code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
			code, minutes),
		Metadata: map[string]any{"kind": "otp"},
	})
	if err != nil {
		slog.Error("Failed to deliver otp email", slog.String("email", req.Email), slog.Any("error", err))
		return nil, appErrors.ThirdPartyError("Failed to send verification email").WithError(err)
	}

	return &models.SendOtpResponse{
		Success: true,
		Message: "Verification code sent",
	}, nil
}

func (s *otpService) VerifyOtp(ctx context.Context, req *models.VerifyOtpRequest) (*models.VerifyOtpResponse, error) {

	challenge, err := s.otpRepo.GetChallenge(ctx, req.Email)
	if err != nil {
		if err == repository.ErrChallengeNotFound {
			return nil, appErrors.BadRequestError("Verification code expired or not requested")
		}
		return nil, appErrors.ThirdPartyError("Verification service unavailable").WithError(err)
	}

	attempts, err := s.otpRepo.IncrementAttempts(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Verification service unavailable").WithError(err)
	}

	if attempts > s.maxAttempts {
		// Burn the challenge; the customer must request a fresh code.
		if err := s.otpRepo.DeleteChallenge(ctx, req.Email); err != nil {
			slog.Warn("Failed to delete exhausted otp challenge", slog.Any("error", err))
		}
		return nil, appErrors.TooManyRequestsError("Too many attempts. Please request a new code")
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(req.Code)) != 1 {
		return nil, appErrors.BadRequestError("Invalid verification code")
	}

	if err := s.otpRepo.DeleteChallenge(ctx, req.Email); err != nil {
		slog.Warn("Failed to delete verified otp challenge", slog.Any("error", err))
	}

	if err := s.otpRepo.MarkVerified(ctx, req.Email); err != nil {
		return nil, appErrors.ThirdPartyError("Verification service unavailable").WithError(err)
	}

	return &models.VerifyOtpResponse{
		Success: true,
		Message: "Email verified",
	}, nil
}
