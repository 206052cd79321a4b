package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ravenmx/calculator-service/internal/apperr"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) ValidateAuthHeader(ctx context.Context, header string) (string, error) {
	args := m.Called(ctx, header)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(s *mockAuthService)
		wantStatus int
		wantNext   bool
	}{
		{
			name:   "valid token passes username to context",
			header: "Bearer valid.jwt.token",
			setup: func(s *mockAuthService) {
				s.On("ValidateAuthHeader", mock.Anything, "Bearer valid.jwt.token").
					Return("alice", nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:   "missing header",
			header: "",
			setup: func(s *mockAuthService) {
				s.On("ValidateAuthHeader", mock.Anything, "").
					Return("", apperr.ErrMalformedAuthHeader)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "tampered token",
			header: "Bearer tampered.jwt.token",
			setup: func(s *mockAuthService) {
				s.On("ValidateAuthHeader", mock.Anything, "Bearer tampered.jwt.token").
					Return("", apperr.ErrInvalidSignature)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired.jwt.token",
			setup: func(s *mockAuthService) {
				s.On("ValidateAuthHeader", mock.Anything, "Bearer expired.jwt.token").
					Return("", apperr.ErrTokenExpired)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "token of unknown user",
			header: "Bearer orphan.jwt.token",
			setup: func(s *mockAuthService) {
				s.On("ValidateAuthHeader", mock.Anything, "Bearer orphan.jwt.token").
					Return("", apperr.ErrUnknownTokenSubject)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockAuthService)
			tt.setup(service)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "alice", r.Context().Value(User))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			JWTMiddleware(service, discardLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if !tt.wantNext {
				assert.Contains(t, rr.Body.String(), "invalid or expired token")
			}
			service.AssertExpectations(t)
		})
	}
}
