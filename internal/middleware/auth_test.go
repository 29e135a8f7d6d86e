package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go-auth-gateway/internal/model"
)

type fakeVerifier struct {
	claims *model.AuthClaims
	err    error
	seen   []string
}

func (f *fakeVerifier) Verify(token string) (*model.AuthClaims, error) {
	f.seen = append(f.seen, token)
	return f.claims, f.err
}

func TestRequireRefreshToken(t *testing.T) {
	t.Parallel()

	var reached *model.AuthClaims
	downstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		reached = claims
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing cookie", func(t *testing.T) {
		verifier := &fakeVerifier{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)

		NewAuthMiddleware(verifier).RequireRefreshToken(downstream).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"token not present, logged in","success":false}`, rec.Body.String())
		require.Empty(t, verifier.seen)
	})

	t.Run("access cookie alone is not enough", func(t *testing.T) {
		verifier := &fakeVerifier{claims: &model.AuthClaims{Email: "a@x.com"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "access"})

		NewAuthMiddleware(verifier).RequireRefreshToken(downstream).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Empty(t, verifier.seen)
	})

	t.Run("invalid token", func(t *testing.T) {
		verifier := &fakeVerifier{err: errors.Join(model.ErrInvalidToken, errors.New("token is expired"))}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale"})

		NewAuthMiddleware(verifier).RequireRefreshToken(downstream).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var body model.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.False(t, body.Success)
		require.Equal(t, "invalid token, login again", body.Message)
	})

	t.Run("valid token reaches downstream", func(t *testing.T) {
		claims := &model.AuthClaims{Email: "a@x.com", Subject: "u-1"}
		verifier := &fakeVerifier{claims: claims}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "access"})
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh"})

		NewAuthMiddleware(verifier).RequireRefreshToken(downstream).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, []string{"refresh"}, verifier.seen)
		require.Same(t, claims, reached)
	})
}

func TestClaimsFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	require.False(t, ok)
}
