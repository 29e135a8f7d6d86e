package middleware

import (
	"encoding/json"
	"net/http"

	"go-auth-gateway/internal/model"
)

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Message: message,
		Success: false,
	})
}
