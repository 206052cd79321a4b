package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ravenmx/calculator-service/internal/lib/query"
	"github.com/ravenmx/calculator-service/internal/models"
)

// CreateOperation вставляет новую запись операции и возвращает её ID.
func (s *Storage) CreateOperation(ctx context.Context, operation models.Operation) (int64, error) {
	const op = "storage.CreateOperation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	q := `INSERT INTO operations (username, operation, operand_a, operand_b, result, created_at)
		  VALUES ($1, $2, $3, $4, $5, $6)
		  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, q,
		operation.Username, operation.Operation, operation.OperandA,
		operation.OperandB, operation.Result, operation.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListOperations возвращает страницу записей пользователя, сужая выборку
// условиями предиката. Порядок стабильный: по времени записи по убыванию,
// при равенстве — по id по убыванию.
func (s *Storage) ListOperations(ctx context.Context, username string,
	predicate query.Predicate, limit, offset int) ([]*models.Operation, error) {
	const op = "storage.ListOperations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := predicateSQL(predicate, username)
	q := `SELECT id, username, operation, operand_a, operand_b, result, created_at
		  FROM operations
		  WHERE ` + where + `
		  ORDER BY created_at DESC, id DESC
		  LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Operation
	for rows.Next() {
		var item models.Operation
		if err := rows.Scan(&item.ID, &item.Username, &item.Operation, &item.OperandA,
			&item.OperandB, &item.Result, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// predicateSQL переводит составленный предикат в условие WHERE с
// позиционными аргументами. Ограничение по владельцу всегда первое,
// затем условия предиката в порядке их составления.
func predicateSQL(predicate query.Predicate, username string) (string, []any) {
	conds := []string{"username = $1"}
	args := []any{username}
	for _, c := range predicate.Conditions {
		n := len(args) + 1
		switch cond := c.(type) {
		case query.OperationEquals:
			conds = append(conds, "operation = $"+strconv.Itoa(n))
			args = append(args, cond.Operation)
		case query.TimestampAtLeast:
			conds = append(conds, "created_at >= $"+strconv.Itoa(n))
			args = append(args, cond.Moment)
		case query.TimestampAtMost:
			conds = append(conds, "created_at <= $"+strconv.Itoa(n))
			args = append(args, cond.Moment)
		}
	}
	return strings.Join(conds, " AND "), args
}

// GetOperationByID возвращает запись операции пользователя по её ID.
// Чужая или несуществующая запись даёт sql.ErrNoRows в цепочке ошибки.
func (s *Storage) GetOperationByID(ctx context.Context, username string, id int64) (*models.Operation, error) {
	const op = "storage.GetOperationByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	q := `SELECT id, username, operation, operand_a, operand_b, result, created_at
		  FROM operations
		  WHERE id = $1 AND username = $2`
	var result models.Operation
	row := s.DB.QueryRowContext(ctx, q, id, username)
	if err := row.Scan(&result.ID, &result.Username, &result.Operation, &result.OperandA,
		&result.OperandB, &result.Result, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteOperationByID удаляет запись операции пользователя по её ID
// и возвращает количество удалённых строк.
func (s *Storage) DeleteOperationByID(ctx context.Context, username string, id int64) (int, error) {
	const op = "storage.DeleteOperationByID"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	q := `DELETE FROM operations WHERE id = $1 AND username = $2`
	result, err := s.DB.ExecContext(ctx, q, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
