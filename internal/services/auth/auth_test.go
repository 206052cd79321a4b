package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/lib/jwt"
	"github.com/ravenmx/calculator-service/internal/lib/password"
	"github.com/ravenmx/calculator-service/internal/models"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) UserExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type mockEmailChecker struct {
	mock.Mock
}

func (m *mockEmailChecker) IsEmailAcceptable(ctx context.Context, email string) bool {
	args := m.Called(ctx, email)
	return args.Bool(0)
}

func newTestMaker() jwt.Maker {
	return jwt.NewMaker("test_secret_key", 15*time.Minute)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockUserRepository)
	emails := new(mockEmailChecker)
	service := NewAuthService(repo, emails, newTestMaker())

	emails.On("IsEmailAcceptable", mock.Anything, "alice@example.com").Return(true)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "alice" &&
			u.Email == "alice@example.com" &&
			u.UID != "" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Return("some-uid", nil)

	user, err := service.Register(context.Background(), "alice", "secret123", "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.WithinDuration(t, time.Now().UTC(), user.CreatedAt, time.Second)
	repo.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	repo := new(mockUserRepository)
	emails := new(mockEmailChecker)
	service := NewAuthService(repo, emails, newTestMaker())

	user, err := service.Register(context.Background(), "al ice", "secret123", "alice@example.com")

	assert.Nil(t, user)
	assert.True(t, apperr.IsValidation(err))
	repo.AssertNotCalled(t, "RegisterUser")
	emails.AssertNotCalled(t, "IsEmailAcceptable")
}

func TestAuthService_Register_UnacceptableEmail(t *testing.T) {
	repo := new(mockUserRepository)
	emails := new(mockEmailChecker)
	service := NewAuthService(repo, emails, newTestMaker())

	emails.On("IsEmailAcceptable", mock.Anything, "fake@mailinator.com").Return(false)

	user, err := service.Register(context.Background(), "alice", "secret123", "fake@mailinator.com")

	assert.Nil(t, user)
	assert.True(t, apperr.IsValidation(err))
	repo.AssertNotCalled(t, "RegisterUser")
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepository)
	emails := new(mockEmailChecker)
	service := NewAuthService(repo, emails, newTestMaker())

	emails.On("IsEmailAcceptable", mock.Anything, "alice@example.com").Return(true)
	repo.On("RegisterUser", mock.Anything, mock.Anything).Return("", apperr.Conflict("username"))

	user, err := service.Register(context.Background(), "alice", "secret123", "alice@example.com")

	assert.Nil(t, user)
	assert.True(t, apperr.IsConflict(err))
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		setup    func(repo *mockUserRepository)
		wantErr  error
	}{
		{
			name:     "success",
			username: "alice",
			password: "secret123",
			setup: func(repo *mockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{Username: "alice", PasswordHash: hash}, nil)
			},
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret123",
			setup: func(repo *mockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, sql.ErrNoRows)
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpass",
			setup: func(repo *mockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{Username: "alice", PasswordHash: hash}, nil)
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setup(repo)
			maker := newTestMaker()
			service := NewAuthService(repo, new(mockEmailChecker), maker)

			token, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.username, claims.Username)
		})
	}
}

// Неизвестный пользователь и неверный пароль дают одинаковую ошибку.
func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo := new(mockUserRepository)
	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)
	repo.On("GetUserByUsername", mock.Anything, "alice").
		Return(&models.User{Username: "alice", PasswordHash: hash}, nil)
	service := NewAuthService(repo, new(mockEmailChecker), newTestMaker())

	_, errUnknown := service.Login(context.Background(), "ghost", "secret123")
	_, errWrongPass := service.Login(context.Background(), "alice", "wrongpass")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_ValidateAuthHeader(t *testing.T) {
	maker := newTestMaker()
	token, err := maker.GenerateToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		setup   func(repo *mockUserRepository)
		want    string
		wantErr error
	}{
		{
			name:   "valid token of known user",
			header: "Bearer " + token,
			setup: func(repo *mockUserRepository) {
				repo.On("UserExists", mock.Anything, "alice").Return(true, nil)
			},
			want: "alice",
		},
		{
			name:    "missing header",
			header:  "",
			setup:   func(repo *mockUserRepository) {},
			wantErr: apperr.ErrMalformedAuthHeader,
		},
		{
			name:    "tampered token",
			header:  "Bearer " + token + "x",
			setup:   func(repo *mockUserRepository) {},
			wantErr: apperr.ErrInvalidSignature,
		},
		{
			name:   "token of deleted user",
			header: "Bearer " + token,
			setup: func(repo *mockUserRepository) {
				repo.On("UserExists", mock.Anything, "alice").Return(false, nil)
			},
			wantErr: apperr.ErrUnknownTokenSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setup(repo)
			service := NewAuthService(repo, new(mockEmailChecker), maker)

			username, err := service.ValidateAuthHeader(context.Background(), tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, apperr.IsUnauthorized(err))
				assert.Empty(t, username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, username)
		})
	}
}

func TestAuthService_ValidateAuthHeader_StorageFailure(t *testing.T) {
	maker := newTestMaker()
	token, err := maker.GenerateToken("alice")
	require.NoError(t, err)

	repo := new(mockUserRepository)
	repo.On("UserExists", mock.Anything, "alice").Return(false, errors.New("connection refused"))
	service := NewAuthService(repo, new(mockEmailChecker), maker)

	_, err = service.ValidateAuthHeader(context.Background(), "Bearer "+token)

	require.Error(t, err)
	assert.False(t, apperr.IsUnauthorized(err))
}
