package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravenmx/calculator-service/internal/apperr"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation maps to 422",
			err:  apperr.Validation("operandA cannot be null"),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "invalid credentials maps to 401",
			err:  apperr.ErrInvalidCredentials,
			want: http.StatusUnauthorized,
		},
		{
			name: "expired token maps to 401",
			err:  apperr.ErrTokenExpired,
			want: http.StatusUnauthorized,
		},
		{
			name: "not found maps to 404",
			err:  apperr.NotFound("operation", 7),
			want: http.StatusNotFound,
		},
		{
			name: "conflict maps to 409",
			err:  apperr.Conflict("email"),
			want: http.StatusConflict,
		},
		{
			name: "unknown error maps to 500",
			err:  errors.New("connection refused"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped domain error keeps its category",
			err:  fmt.Errorf("services.auth.Login: %w", apperr.ErrInvalidCredentials),
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"token": "abc"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("invalid request body")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "invalid request body", resp.Error)
}
