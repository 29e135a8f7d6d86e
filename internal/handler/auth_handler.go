package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-auth-gateway/internal/model"
)

const maxAuthBodyBytes = 1 << 16

type authenticator interface {
	Authenticate(ctx context.Context, email string, password string) (model.AuthResult, error)
}

type sessionWriter interface {
	Attach(w http.ResponseWriter, pair model.TokenPair)
}

type AuthHandler struct {
	service  authenticator
	sessions sessionWriter
}

func NewAuthHandler(service authenticator, sessions sessionWriter) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions}
}

// Authenticate is the combined login-or-register entry point.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// An empty body decodes to empty credentials and is rejected as missing.
	var payload model.AuthRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxAuthBodyBytes)).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, fmt.Errorf("decode auth request: %w: %w", model.ErrInvalidInput, err))
		return
	}

	result, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sessions.Attach(w, result.Tokens)

	if result.IsNewAccount {
		view := result.User.View()
		writeSuccess(w, http.StatusCreated, model.APIResponse{
			Message: "User created, logged in",
			NewUser: &view,
		})
		return
	}

	writeSuccess(w, http.StatusOK, model.APIResponse{Message: "login successful"})
}
