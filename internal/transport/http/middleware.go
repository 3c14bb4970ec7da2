package http

import (
	"context"
	"net/http"
	"strings"

	"carmeet/internal/service"
)

type claimsCtxKey struct{}

// RequireAuth verifies the Bearer access token and stores its claims in
// the request context. Activation tokens are rejected here by kind.
func RequireAuth(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(ah, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, "missing token", nil)
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(ah, "Bearer "), service.TokenKindAccess)
			if err != nil {
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*service.TokenClaims, bool) {
	c, ok := ctx.Value(claimsCtxKey{}).(*service.TokenClaims)
	return c, ok
}
