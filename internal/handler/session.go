package handler

import (
	"net/http"
	"time"

	"go-auth-gateway/internal/model"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SessionCookies writes an issued token pair onto the response as two
// http-only cookies, each expiring exactly when its token does.
type SessionCookies struct {
	secure bool
	now    func() time.Time
}

func NewSessionCookies(secure bool) *SessionCookies {
	return &SessionCookies{secure: secure, now: time.Now}
}

func (s *SessionCookies) Attach(w http.ResponseWriter, pair model.TokenPair) {
	now := s.now()
	http.SetCookie(w, s.cookie(AccessTokenCookie, pair.AccessToken, now, pair.AccessExpiresAt))
	http.SetCookie(w, s.cookie(RefreshTokenCookie, pair.RefreshToken, now, pair.RefreshExpiresAt))
}

func (s *SessionCookies) cookie(name string, value string, now time.Time, expiresAt time.Time) *http.Cookie {
	// Max-Age 0 would omit the attribute, so an already-lapsed token deletes the cookie.
	maxAge := int(expiresAt.Sub(now).Round(time.Second) / time.Second)
	if maxAge <= 0 {
		maxAge = -1
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
