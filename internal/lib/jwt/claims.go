// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Claims расширяет стандартные claims JWT, добавляя имя пользователя.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает данные, хранящиеся в токене. Subject дублирует
// Username в стандартном поле.
type Claims struct {
	Username             string `json:"username"` // Имя пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}
