// Package services содержит бизнес-логику работы с историей операций:
// постраничная выборка с фильтрацией, чтение и удаление записи по ID.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/lib/query"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
)

// HistoryRepository определяет методы выборки и удаления записей операций.
// Все методы ограничены записями одного владельца.
type HistoryRepository interface {
	// ListOperations возвращает страницу записей пользователя по предикату.
	ListOperations(ctx context.Context, username string, predicate query.Predicate, limit, offset int) ([]*models.Operation, error)
	// GetOperationByID возвращает запись пользователя по ID.
	GetOperationByID(ctx context.Context, username string, id int64) (*models.Operation, error)
	// DeleteOperationByID удаляет запись пользователя и возвращает число удалённых строк.
	DeleteOperationByID(ctx context.Context, username string, id int64) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// HistoryService реализует запросы к истории операций, включая кеширование
// одиночных чтений.
type HistoryService struct {
	repo  HistoryRepository
	cache Cache
	log   *slog.Logger
}

// NewHistoryService создает новый экземпляр HistoryService.
func NewHistoryService(repo HistoryRepository, cache Cache, log *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает страницу записей пользователя, суженную предикатом,
// составленным из необязательных полей фильтра. Пустой фильтр даёт все
// записи пользователя.
func (s *HistoryService) List(ctx context.Context, username string, filter query.Filter, limit, offset int) ([]*models.Operation, error) {
	predicate := query.Build(filter)
	entries, err := s.repo.ListOperations(ctx, username, predicate, limit, offset)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Read возвращает запись пользователя по ID, используя кеш или хранилище.
// Чужая или несуществующая запись — apperr.NotFoundError.
func (s *HistoryService) Read(ctx context.Context, username string, id int64) (*models.Operation, error) {
	var result *models.Operation
	cacheKey := fmt.Sprintf("operation:%s:%d", username, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.GetOperationByID(ctx, username, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("operation", id)
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Delete удаляет запись пользователя по ID и инвалидирует кеш.
// Несуществующий ID — apperr.NotFoundError, не тихий успех.
func (s *HistoryService) Delete(ctx context.Context, username string, id int64) error {
	cacheKey := fmt.Sprintf("operation:%s:%d", username, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	count, err := s.repo.DeleteOperationByID(ctx, username, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("operation", id)
	}
	return nil
}
