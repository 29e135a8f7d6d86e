package handler

import (
	"net/http"

	"go-auth-gateway/internal/middleware"
	"go-auth-gateway/internal/model"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrMissingToken)
		return
	}

	writeSuccess(w, http.StatusOK, model.APIResponse{
		Message: "user authorized",
		User:    claims,
	})
}
