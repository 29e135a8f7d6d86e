package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"go-auth-gateway/internal/model"
)

const refreshTokenCookie = "refreshToken"

type tokenVerifier interface {
	Verify(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireRefreshToken authenticates a request from its refresh cookie alone.
// The access cookie is never consulted.
func (m *AuthMiddleware) RequireRefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshTokenCookie)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			writeFailure(w, http.StatusBadRequest, "token not present, logged in")
			return
		}

		claims, err := m.verifier.Verify(cookie.Value)
		if err != nil {
			slog.Debug("refresh token rejected", "error", err)
			// 500 is what existing clients expect here.
			writeFailure(w, http.StatusInternalServerError, "invalid token, login again")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok && claims != nil
}
