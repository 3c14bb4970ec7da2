package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrUserNotFound            = errors.New("user not found")
	ErrAccountNotActivated     = errors.New("account not activated")
	ErrAccountAlreadyActive    = errors.New("account already active")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrNotAdmin                = errors.New("admin role required")
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidTokenType        = errors.New("invalid token type")
	ErrTokenExpired            = errors.New("token expired")
	ErrNoVerificationCode      = errors.New("no verification code pending")
	ErrVerificationCodeExpired = errors.New("verification code expired")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrCodeAlreadySent         = errors.New("verification code already sent")
)

// CodeAlreadySentError is returned by resend while a previous code is still
// valid. RemainingMinutes is the ceiling of the time left on that code, so
// callers can tell the user how long to wait.
type CodeAlreadySentError struct {
	RemainingMinutes int
}

func (e *CodeAlreadySentError) Error() string {
	return fmt.Sprintf("verification code already sent, retry in %d minute(s)", e.RemainingMinutes)
}

func (e *CodeAlreadySentError) Is(target error) bool { return target == ErrCodeAlreadySent }
