package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giftboxhq/giftbox-platform/internal/config"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrChallengeNotFound means no live OTP challenge exists for the email,
// either because none was sent or because it expired or was consumed.
var ErrChallengeNotFound = errors.New("otp challenge not found")

// OtpRepository tracks ephemeral OTP state in redis: the active challenge,
// the per-email resend cooldown, and the short-lived verified flag that the
// order service consumes before persisting a draft order.
type OtpRepository interface {
	StoreChallenge(ctx context.Context, challenge *models.OtpChallenge) error
	GetChallenge(ctx context.Context, email string) (*models.OtpChallenge, error)
	IncrementAttempts(ctx context.Context, email string) (int, error)
	DeleteChallenge(ctx context.Context, email string) error
	CheckResendCooldown(ctx context.Context, email string) (bool, int, error)
	MarkVerified(ctx context.Context, email string) error
	ConsumeVerification(ctx context.Context, email string) (bool, error)
}

type otpRepository struct {
	client *redis.Client
	cfg    *config.OTPConfig
}

func NewOtpRepo(client *redis.Client, cfg *config.OTPConfig) OtpRepository {
	return &otpRepository{client: client, cfg: cfg}
}

func challengeKey(email string) string {
	return fmt.Sprintf("otp:challenge:%s", email)
}

func cooldownKey(email string) string {
	return fmt.Sprintf("otp:cooldown:%s", email)
}

func verifiedKey(email string) string {
	return fmt.Sprintf("otp:verified:%s", email)
}

// StoreChallenge replaces any prior challenge for the email. Attempts reset
// with the new code.
func (r *otpRepository) StoreChallenge(ctx context.Context, challenge *models.OtpChallenge) error {

	key := challengeKey(challenge.Email)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "code", challenge.Code, "attempts", 0, "created_at", challenge.CreatedAt.Unix())
	pipe.Expire(ctx, key, r.cfg.CodeTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}

	return nil
}

func (r *otpRepository) GetChallenge(ctx context.Context, email string) (*models.OtpChallenge, error) {

	fields, err := r.client.HGetAll(ctx, challengeKey(email)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp challenge: %w", err)
	}

	if len(fields) == 0 {
		return nil, ErrChallengeNotFound
	}

	challenge := &models.OtpChallenge{
		Email: email,
		Code:  fields["code"],
	}

	fmt.Sscanf(fields["attempts"], "%d", &challenge.Attempts)

	var createdAt int64
	fmt.Sscanf(fields["created_at"], "%d", &createdAt)
	challenge.CreatedAt = time.Unix(createdAt, 0)

	return challenge, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {

	attempts, err := r.client.HIncrBy(ctx, challengeKey(email), "attempts", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}

	return int(attempts), nil
}

func (r *otpRepository) DeleteChallenge(ctx context.Context, email string) error {

	if err := r.client.Del(ctx, challengeKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}

	return nil
}

// CheckResendCooldown claims the cooldown slot for the email. Returns whether
// a send is allowed now and, when it is not, how many seconds remain.
func (r *otpRepository) CheckResendCooldown(ctx context.Context, email string) (bool, int, error) {

	key := cooldownKey(email)

	set, err := r.client.SetNX(ctx, key, 1, r.cfg.ResendCooldown).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check otp cooldown: %w", err)
	}

	if set {
		return true, 0, nil
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return false, int(r.cfg.ResendCooldown.Seconds()), fmt.Errorf("failed to read otp cooldown ttl: %w", err)
	}

	return false, int(ttl.Seconds()), nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, email string) error {

	if err := r.client.Set(ctx, verifiedKey(email), 1, r.cfg.VerifiedTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark otp verified: %w", err)
	}

	return nil
}

// ConsumeVerification atomically reads and clears the verified flag, so a
// single verification admits exactly one order.
func (r *otpRepository) ConsumeVerification(ctx context.Context, email string) (bool, error) {

	err := r.client.GetDel(ctx, verifiedKey(email)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume otp verification: %w", err)
	}

	return true, nil
}
