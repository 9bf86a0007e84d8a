package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOtpServer(t *testing.T, sendCalls, verifyCalls *atomic.Int32, validCode string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/otp/send-otp", func(w http.ResponseWriter, r *http.Request) {
		sendCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	mux.HandleFunc("POST /api/otp/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		verifyCalls.Add(1)

		var req struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")

		if req.Code != validCode {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]any{"code": "BAD_REQUEST", "message": "Invalid verification code"},
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestOtpGateResendCooldown(t *testing.T) {

	var sendCalls, verifyCalls atomic.Int32
	server := newOtpServer(t, &sendCalls, &verifyCalls, "123456")

	gate := NewOtpGate(New(server.URL))
	defer gate.Close()

	ctx := context.Background()

	require.NoError(t, gate.Send(ctx, "jordan@example.com"))
	assert.Equal(t, int32(1), sendCalls.Load())
	assert.Greater(t, gate.RemainingCooldown(), time.Duration(0))

	// Two resends inside the cooldown window make no further calls.
	assert.ErrorIs(t, gate.Resend(ctx), ErrCooldownActive)
	assert.ErrorIs(t, gate.Resend(ctx), ErrCooldownActive)
	assert.Equal(t, int32(1), sendCalls.Load())
}

func TestOtpGateResendAfterCooldown(t *testing.T) {

	var sendCalls, verifyCalls atomic.Int32
	server := newOtpServer(t, &sendCalls, &verifyCalls, "123456")

	gate := NewOtpGate(New(server.URL))
	defer gate.Close()

	ctx := context.Background()

	now := time.Now()
	gate.now = func() time.Time { return now }

	require.NoError(t, gate.Send(ctx, "jordan@example.com"))
	require.Equal(t, int32(1), sendCalls.Load())

	// Advance past the window; resend goes through.
	now = now.Add(31 * time.Second)

	require.NoError(t, gate.Resend(ctx))
	assert.Equal(t, int32(2), sendCalls.Load())
	assert.Equal(t, 30*time.Second, gate.RemainingCooldown())
}

func TestOtpGateVerifyLocalFormatCheck(t *testing.T) {

	var sendCalls, verifyCalls atomic.Int32
	server := newOtpServer(t, &sendCalls, &verifyCalls, "123456")

	gate := NewOtpGate(New(server.URL))
	defer gate.Close()

	ctx := context.Background()

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		err := gate.Verify(ctx, "jordan@example.com", code)
		assert.ErrorIs(t, err, ErrInvalidCodeFormat)
	}

	// None of the malformed codes reached the server.
	assert.Equal(t, int32(0), verifyCalls.Load())

	require.NoError(t, gate.Verify(ctx, "jordan@example.com", "123456"))
	assert.Equal(t, int32(1), verifyCalls.Load())
}

func TestOtpGateSendRequiresEmail(t *testing.T) {

	var sendCalls, verifyCalls atomic.Int32
	server := newOtpServer(t, &sendCalls, &verifyCalls, "123456")

	gate := NewOtpGate(New(server.URL))
	defer gate.Close()

	err := gate.Send(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoEmail)
	assert.Equal(t, int32(0), sendCalls.Load())
}

func TestOtpGateCloseClearsCooldown(t *testing.T) {

	var sendCalls, verifyCalls atomic.Int32
	server := newOtpServer(t, &sendCalls, &verifyCalls, "123456")

	gate := NewOtpGate(New(server.URL))
	ctx := context.Background()

	require.NoError(t, gate.Send(ctx, "jordan@example.com"))
	require.Greater(t, gate.RemainingCooldown(), time.Duration(0))

	gate.Close()
	assert.Equal(t, time.Duration(0), gate.RemainingCooldown())

	// A closed gate can start a fresh cycle immediately.
	require.NoError(t, gate.Resend(ctx))
	assert.Equal(t, int32(2), sendCalls.Load())
}

func TestOtpGateRateLimitSurfaced(t *testing.T) {

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/otp/send-otp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "TOO_MANY_REQUESTS", "message": "Please wait 25 seconds before requesting a new code"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	gate := NewOtpGate(New(server.URL))
	defer gate.Close()

	err := gate.Send(context.Background(), "jordan@example.com")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsRateLimited())
	assert.Contains(t, apiErr.Message, "wait 25 seconds")

	// A rejected send does not start the cooldown.
	assert.Equal(t, time.Duration(0), gate.RemainingCooldown())
}
