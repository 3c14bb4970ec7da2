package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carmeet/internal/domain"
	"carmeet/internal/service/impl"
)

// envelope is the wire shape for every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// writeError translates domain errors into HTTP statuses. Unknown errors
// become a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var cooldown *domain.CodeAlreadySentError
	switch {
	case errors.As(err, &cooldown):
		writeJSON(w, http.StatusTooManyRequests, cooldown.Error(), nil)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		writeJSON(w, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidTokenType):
		writeJSON(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrAccountNotActivated),
		errors.Is(err, domain.ErrNotAdmin):
		writeJSON(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrAccountAlreadyActive),
		errors.Is(err, domain.ErrNoVerificationCode),
		errors.Is(err, domain.ErrVerificationCodeExpired),
		errors.Is(err, domain.ErrInvalidVerificationCode),
		errors.Is(err, impl.ErrEmptyName),
		errors.Is(err, impl.ErrEmptyEmail),
		errors.Is(err, impl.ErrEmptyPassword),
		errors.Is(err, impl.ErrPasswordLength):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeJSON(w, http.StatusInternalServerError, "internal error", nil)
	}
}
