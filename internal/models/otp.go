package models

import "time"

// OtpChallenge is the server-tracked verification state for one email. A new
// send supersedes any prior challenge for the same address.
type OtpChallenge struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SendOtpResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type VerifyOtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
