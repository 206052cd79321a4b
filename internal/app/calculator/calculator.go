// Package calculator собирает сервис вычислений: хранилище, миграции,
// кеш, внешнюю проверку email, бизнес-сервисы и HTTP-сервер.
package calculator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ravenmx/calculator-service/internal/cache"
	"github.com/ravenmx/calculator-service/internal/config"
	"github.com/ravenmx/calculator-service/internal/emailcheck"
	"github.com/ravenmx/calculator-service/internal/lib/jwt"
	"github.com/ravenmx/calculator-service/internal/migrations"
	authservice "github.com/ravenmx/calculator-service/internal/services/auth"
	historyservice "github.com/ravenmx/calculator-service/internal/services/history"
	operationservice "github.com/ravenmx/calculator-service/internal/services/operation"
	"github.com/ravenmx/calculator-service/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы, требующие освобождения при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает PostgreSQL, применяет миграции,
// подключает Redis и связывает сервисы с обработчиками.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	emailClient := emailcheck.NewClient(cfg.EmailCheck.APIKey, cfg.EmailCheck.APIURL, logger)

	authService := authservice.NewAuthService(db, emailClient, jwtMaker)
	operationService := operationservice.NewOperationService(db, cacheRedis, logger)
	historyService := historyservice.NewHistoryService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, operationService, historyService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
