package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-auth-gateway/internal/model"
	"go-auth-gateway/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, body model.APIResponse) {
	body.Success = true
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := resolveError(err)
	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		slog.Error("request failed", "code", apiErr.Code, "error", err.Error())
	}

	writeJSON(w, apiErr.HTTPStatus, model.APIResponse{
		Message: apiErr.Message,
		Success: false,
	})
}

// resolveError maps a failure kind onto its status and client message.
func resolveError(err error) *apierror.APIError {
	if apiErr, ok := apierror.As(err); ok {
		return apiErr
	}

	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		return apierror.Wrap(err, "MISSING_CREDENTIALS", "Both email and password are required", http.StatusConflict)
	case errors.Is(err, model.ErrPasswordTooLong):
		return apierror.Wrap(err, "PASSWORD_TOO_LONG", "Password must not exceed 72 bytes", http.StatusConflict)
	case errors.Is(err, model.ErrInvalidCredentials):
		return apierror.Wrap(err, "INVALID_CREDENTIALS", "Incorrect email/password", http.StatusBadRequest)
	case errors.Is(err, model.ErrMissingToken):
		return apierror.Wrap(err, "MISSING_TOKEN", "token not present, logged in", http.StatusBadRequest)
	case errors.Is(err, model.ErrInvalidToken):
		// 500 rather than 401 is kept for client compatibility.
		return apierror.Wrap(err, "INVALID_TOKEN", "invalid token, login again", http.StatusInternalServerError)
	case errors.Is(err, model.ErrInvalidInput):
		return apierror.Wrap(err, "BAD_REQUEST", "invalid JSON body", http.StatusBadRequest)
	default:
		return apierror.Internal(err)
	}
}
