package http

import (
	"net/http"

	"carmeet/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(identity service.IdentityService, tokens service.TokenService, frontendURL string) http.Handler {
	h := &handler{identity: identity, frontendURL: frontendURL}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Get("/activate/{token}", h.activate)
		r.Post("/login", h.login)
		r.Post("/admin/login", h.adminLogin)
		r.Post("/verify-code", h.verifyCode)
		r.Post("/resend-code", h.resendCode)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(tokens))
			r.Get("/me", h.me)
			r.Put("/profile", h.updateProfile)
			r.Post("/logout", h.logout)
		})
	})

	return r
}
