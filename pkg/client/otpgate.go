package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// DefaultResendCooldown matches the server's per-email send throttle.
const DefaultResendCooldown = 30 * time.Second

var (
	// ErrCooldownActive means a resend was attempted before the cooldown
	// elapsed. No network call was made.
	ErrCooldownActive = errors.New("resend cooldown active")

	// ErrInvalidCodeFormat means the code failed the local 6-digit check.
	// No network call was made.
	ErrInvalidCodeFormat = errors.New("code must be exactly 6 digits")

	// ErrNoEmail means no email address is on file to send the code to.
	ErrNoEmail = errors.New("no email address on file")
)

// OtpGate drives the email confirmation checkpoint in front of order
// placement. It tracks a single cooldown deadline that is replaced, never
// stacked, on each successful send.
type OtpGate struct {
	client   *Client
	cooldown time.Duration

	mu            sync.Mutex
	email         string
	cooldownUntil time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewOtpGate(client *Client) *OtpGate {
	return &OtpGate{
		client:   client,
		cooldown: DefaultResendCooldown,
		now:      time.Now,
	}
}

// Send posts a fresh code to the email and starts the resend cooldown. The
// cooldown starts at the moment of a successful response.
func (g *OtpGate) Send(ctx context.Context, email string) error {

	if email == "" {
		return ErrNoEmail
	}

	payload := map[string]string{"email": email}

	if err := g.client.do(ctx, http.MethodPost, "/api/otp/send-otp", payload, nil); err != nil {
		return err
	}

	g.mu.Lock()
	g.email = email
	g.cooldownUntil = g.now().Add(g.cooldown)
	g.mu.Unlock()

	return nil
}

// Resend re-sends the code only when the cooldown has elapsed. The elapsed
// check here is a second guard behind any UI-level disable.
func (g *OtpGate) Resend(ctx context.Context) error {

	g.mu.Lock()
	email := g.email
	active := g.now().Before(g.cooldownUntil)
	g.mu.Unlock()

	if active {
		return ErrCooldownActive
	}

	return g.Send(ctx, email)
}

// Verify checks the code with the server. The code must be exactly six
// digits before any call is attempted.
func (g *OtpGate) Verify(ctx context.Context, email, code string) error {

	if !isSixDigits(code) {
		return ErrInvalidCodeFormat
	}

	payload := map[string]string{"email": email, "code": code}

	return g.client.do(ctx, http.MethodPost, "/api/otp/verify-otp", payload, nil)
}

// RemainingCooldown reports how long until a resend is allowed.
func (g *OtpGate) RemainingCooldown() time.Duration {

	g.mu.Lock()
	defer g.mu.Unlock()

	remaining := g.cooldownUntil.Sub(g.now())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Close clears any active cooldown so a reused gate starts fresh.
func (g *OtpGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cooldownUntil = time.Time{}
}

func isSixDigits(code string) bool {

	if len(code) != 6 {
		return false
	}

	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
