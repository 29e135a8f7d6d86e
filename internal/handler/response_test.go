package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-auth-gateway/internal/model"
	"go-auth-gateway/pkg/apierror"
)

func TestResolveError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{model.ErrMissingCredentials, http.StatusConflict, "Both email and password are required"},
		{model.ErrPasswordTooLong, http.StatusConflict, "Password must not exceed 72 bytes"},
		{fmt.Errorf("login: %w", model.ErrInvalidCredentials), http.StatusBadRequest, "Incorrect email/password"},
		{model.ErrMissingToken, http.StatusBadRequest, "token not present, logged in"},
		{model.ErrInvalidToken, http.StatusInternalServerError, "invalid token, login again"},
		{model.ErrInvalidInput, http.StatusBadRequest, "invalid JSON body"},
		{model.ErrInternal, http.StatusInternalServerError, "internal server error"},
		{errors.New("unclassified"), http.StatusInternalServerError, "internal server error"},
		{apierror.New("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests), http.StatusTooManyRequests, "Too many requests"},
	}

	for _, tc := range tests {
		got := resolveError(tc.err)
		require.Equal(t, tc.status, got.HTTPStatus, tc.err.Error())
		require.Equal(t, tc.message, got.Message, tc.err.Error())
	}
}
