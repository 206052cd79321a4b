// Package middlewarectx содержит HTTP middleware для проверки токена доступа.
//
// JWTMiddleware проверяет заголовок Authorization: извлекает токен,
// валидирует подпись и срок через сервис аутентификации и убеждается,
// что subject токена — известный пользователь. При успехе имя
// пользователя добавляется в контекст запроса, иначе возвращается
// HTTP 401 Unauthorized с причиной отказа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ravenmx/calculator-service/internal/http/response"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для имени пользователя в контексте
const User Key = "username"

// Service описывает интерфейс сервиса для проверки заголовка Authorization.
type Service interface {
	ValidateAuthHeader(ctx context.Context, header string) (string, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке Authorization.
//
// Если токен валиден, добавляет имя пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			username, err := authService.ValidateAuthHeader(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				log.Error("authentication rejected", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
