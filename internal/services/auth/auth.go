// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/lib/jwt"
	"github.com/ravenmx/calculator-service/internal/lib/password"
	"github.com/ravenmx/calculator-service/internal/models"
	"github.com/ravenmx/calculator-service/internal/validation"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UserExists сообщает, зарегистрирован ли пользователь.
	UserExists(ctx context.Context, username string) (bool, error)
}

// EmailChecker описывает внешнюю проверку приемлемости email.
// Недоступность проверки означает "неприемлем", не ошибку.
type EmailChecker interface {
	IsEmailAcceptable(ctx context.Context, email string) bool
}

// AuthService отвечает за регистрацию, авторизацию и проверку токенов.
type AuthService struct {
	users    UserRepository
	emails   EmailChecker
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, emails EmailChecker, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		emails:   emails,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Перед сохранением проверяются структурные правила регистрации и
// приемлемость email у внешнего коллаборатора. Возвращённый пользователь
// не содержит пароля ни в каком виде.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, email string) (*models.User, error) {
	const op = "services.auth.Register"

	if err := validation.ValidateRegistration(username, rawPassword, email); err != nil {
		return nil, err
	}
	if !s.emails.IsEmailAcceptable(ctx, email) {
		return nil, apperr.Validation("email is invalid: it must have valid format, valid MX records, and not be disposable")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.RegisterUser(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// Login проверяет пароль пользователя и выпускает токен доступа.
//
// Неизвестный username и неверный пароль дают одну и ту же ошибку,
// токен при этом не выпускается и побочных эффектов нет.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", apperr.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateAuthHeader извлекает токен из заголовка Authorization,
// проверяет подпись, срок действия и существование subject, возвращает
// имя пользователя. Порядок отказов фиксирован: битый заголовок, битая
// подпись, истекший срок, неизвестный subject.
func (s *AuthService) ValidateAuthHeader(ctx context.Context, header string) (string, error) {
	const op = "services.auth.ValidateAuthHeader"

	tokenStr, err := s.jwtMaker.FromAuthHeader(header)
	if err != nil {
		return "", err
	}
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return "", err
	}
	exists, err := s.users.UserExists(ctx, claims.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrUnknownTokenSubject)
	}
	return claims.Username, nil
}
