package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"carmeet/internal/domain"
	"carmeet/internal/dto"
	"carmeet/internal/netutil"
	"carmeet/internal/service"

	"github.com/go-chi/chi/v5"
)

type handler struct {
	identity    service.IdentityService
	frontendURL string
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := h.identity.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("user registered",
		slog.String("email", user.Email),
		slog.String("ip", netutil.ClientIP(r)),
	)
	writeJSON(w, http.StatusCreated, "registration successful, check your email to activate your account", user)
}

// activate lands from an email link, so the outcome goes back to the
// frontend as a redirect rather than a JSON body.
func (h *handler) activate(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	_, err := h.identity.ActivateAccount(r.Context(), token)

	status, message := "success", "account activated, you can now log in"
	if err != nil {
		status = "error"
		switch {
		case errors.Is(err, domain.ErrAccountAlreadyActive):
			message = "account is already activated"
		case errors.Is(err, domain.ErrTokenExpired):
			message = "activation link expired, please register again"
		case errors.Is(err, domain.ErrUserNotFound):
			message = "user not found"
		default:
			message = "invalid activation link"
		}
		slog.Warn("account activation failed",
			slog.String("ip", netutil.ClientIP(r)),
			slog.Any("error", err),
		)
	}

	q := url.Values{}
	q.Set("status", status)
	q.Set("message", message)
	http.Redirect(w, r, h.frontendURL+"/login?"+q.Encode(), http.StatusFound)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	resp, err := h.identity.LoginStep1(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logLoginFailure(r, req.Email, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Message, resp)
}

func (h *handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	resp, err := h.identity.AdminLoginStep1(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logLoginFailure(r, req.Email, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Message, resp)
}

func (h *handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyCodeRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	resp, err := h.identity.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		h.logLoginFailure(r, req.Email, err)
		writeError(w, err)
		return
	}
	slog.Info("login completed",
		slog.String("email", resp.User.Email),
		slog.String("ip", netutil.ClientIP(r)),
		slog.String("user_agent", netutil.TruncateUserAgent(r.UserAgent())),
	)
	writeJSON(w, http.StatusOK, "login successful", resp)
}

func (h *handler) resendCode(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendCodeRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	resp, err := h.identity.ResendVerificationCode(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Message, resp)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}
	user, err := h.identity.GetCurrentUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "", user)
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}
	var req dto.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := h.identity.UpdateProfile(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "profile updated", user)
}

// logout is stateless: tokens are not tracked server side, the client
// drops its copy. The endpoint exists so clients have a uniform call.
func (h *handler) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "logged out", nil)
}

func (h *handler) logLoginFailure(r *http.Request, email string, err error) {
	slog.Warn("login attempt failed",
		slog.String("email", email),
		slog.String("ip", netutil.ClientIP(r)),
		slog.String("user_agent", netutil.TruncateUserAgent(r.UserAgent())),
		slog.Any("error", err),
	)
}
