// Package calculator предоставляет маршруты для основного приложения.
package calculator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ravenmx/calculator-service/internal/http/handlers/auth/login"
	"github.com/ravenmx/calculator-service/internal/http/handlers/auth/register"
	"github.com/ravenmx/calculator-service/internal/http/handlers/health"
	historylist "github.com/ravenmx/calculator-service/internal/http/handlers/history/list"
	historyread "github.com/ravenmx/calculator-service/internal/http/handlers/history/read"
	historyremove "github.com/ravenmx/calculator-service/internal/http/handlers/history/remove"
	"github.com/ravenmx/calculator-service/internal/http/handlers/operation/calculate"
	"github.com/ravenmx/calculator-service/internal/http/middlewarectx"
	authservice "github.com/ravenmx/calculator-service/internal/services/auth"
	historyservice "github.com/ravenmx/calculator-service/internal/services/history"
	operationservice "github.com/ravenmx/calculator-service/internal/services/operation"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	operationService *operationservice.OperationService,
	historyService *historyservice.HistoryService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с аутентификацией по токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/calculate", calculate.New(logger, operationService).ServeHTTP)
			r.Get("/history", historylist.New(logger, historyService).ServeHTTP)
			r.Get("/history/{id}", historyread.New(logger, historyService).ServeHTTP)
			r.Delete("/history/{id}", historyremove.New(logger, historyService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
