// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Токен — единственный носитель идентичности между запросами: сервер не
// хранит сессий, валидность пересчитывается из самого токена при каждом
// запросе. Maker определяет интерфейс для выпуска и разбора токенов,
// MakerImpl — конкретная реализация на HS256 с общим секретом процесса.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ravenmx/calculator-service/internal/apperr"
)

// bearerPrefix — обязательный литеральный префикс заголовка Authorization.
const bearerPrefix = "Bearer "

// Maker описывает интерфейс для выпуска и разбора токенов доступа.
type Maker interface {
	// GenerateToken выпускает токен на имя пользователя.
	GenerateToken(username string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
	// FromAuthHeader извлекает токен из значения заголовка Authorization.
	FromAuthHeader(header string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL). Секрет неизменяем после создания.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает токен с subject = username, подписывая его секретным
// ключом. Время жизни токена определяется полем tokenTTL. Операция чисто
// вычислительная, состояния не сохраняет.
func (m *MakerImpl) GenerateToken(username string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken разбирает токен и возвращает claims, если тот корректен.
//
// Подпись проверяется раньше срока действия: токен с битой подписью
// сообщается как ErrInvalidSignature, даже если его встроенный expiry
// тоже истёк. Истекший токен с верной подписью — ErrTokenExpired.
func (m *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidSignature)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrTokenExpired)
	default:
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidSignature)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidSignature)
	}
	return claims, nil
}

// FromAuthHeader извлекает токен из заголовка Authorization.
//
// Отсутствующий заголовок, пустое значение и значение без префикса
// "Bearer " сообщаются одной и той же ошибкой ErrMalformedAuthHeader —
// поверхность ошибок для вызывающих предсказуема.
func (m *MakerImpl) FromAuthHeader(header string) (string, error) {
	const op = "jwt.FromAuthHeader"
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrMalformedAuthHeader)
	}
	tokenStr := strings.TrimPrefix(header, bearerPrefix)
	if tokenStr == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrMalformedAuthHeader)
	}
	return tokenStr, nil
}
