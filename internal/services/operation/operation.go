// Package services содержит бизнес-логику выполнения арифметических операций:
// валидация запроса, вычисление и сохранение неизменяемой записи результата.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ravenmx/calculator-service/internal/calc"
	"github.com/ravenmx/calculator-service/internal/lib/sl"
	"github.com/ravenmx/calculator-service/internal/models"
	"github.com/ravenmx/calculator-service/internal/validation"
)

// OperationRepository определяет методы для сохранения записей операций.
type OperationRepository interface {
	// CreateOperation добавляет новую запись и возвращает её ID.
	CreateOperation(ctx context.Context, operation models.Operation) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// OperationService реализует конвейер вычисления: валидация запроса,
// вычисление результата, сохранение записи с владельцем и временной меткой.
type OperationService struct {
	repo  OperationRepository
	cache Cache
	log   *slog.Logger
}

// NewOperationService создает новый экземпляр OperationService.
func NewOperationService(repo OperationRepository, cache Cache, log *slog.Logger) *OperationService {
	return &OperationService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Execute проверяет запрос, вычисляет результат и сохраняет запись.
//
// Владелец записи — username из проверенного токена, а не из входных
// данных: подменить владельца со стороны клиента нельзя. Запись после
// сохранения неизменяема.
func (s *OperationService) Execute(ctx context.Context, username string, req *models.OperationRequest) (*models.Operation, error) {
	const op = "services.operation.Execute"

	if err := validation.ValidateOperation(req); err != nil {
		return nil, err
	}

	result, err := calc.Compute(req.Operation, *req.OperandA, *req.OperandB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := models.Operation{
		Username:  username,
		Operation: strings.ToLower(req.Operation),
		OperandA:  *req.OperandA,
		OperandB:  *req.OperandB,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.repo.CreateOperation(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.log.Info("operation saved",
		slog.Int64("id", id),
		slog.String("operation", record.Operation))

	cacheKey := fmt.Sprintf("operation:%s:%d", username, id)
	if err := s.cache.Set(cacheKey, record, time.Hour); err != nil {
		s.log.Warn("failed to cache operation", slog.String("key", cacheKey), sl.Err(err))
	}

	return &record, nil
}
