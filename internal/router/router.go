package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-gateway/internal/config"
	"go-auth-gateway/internal/handler"
	"go-auth-gateway/internal/middleware"
)

const authPath = "/auth"

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, authPath)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post(authPath, handlers.Auth.Authenticate)
		api.With(authMiddleware.RequireRefreshToken).Get("/profile", handlers.Profile.Show)
	})

	return r
}
