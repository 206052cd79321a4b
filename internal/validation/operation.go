// Package validation реализует доменную валидацию входящих запросов.
//
// Для каждой формы запроса — отдельная именованная функция: ValidateOperation
// для арифметического запроса, ValidateRegistration для регистрации.
// Проверки выполняются по порядку с остановкой на первом нарушении,
// каждая причина — одна человеко‑читаемая строка. Функции синхронны,
// без побочных эффектов и без I/O.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/models"
)

// Допустимый закрытый диапазон операндов.
var (
	minOperand = decimal.NewFromInt(-1000000)
	maxOperand = decimal.NewFromInt(1000000)
)

// ValidateOperation проверяет структурные и доменные ограничения запроса
// на вычисление. Порядок проверок фиксирован, нарушение первой из них
// возвращается как единственная причина отказа.
//
// OperandB проверяется и для sqrt, где он в вычислении не участвует:
// форма запроса едина для всех операций, это осознанное решение.
func ValidateOperation(req *models.OperationRequest) error {
	if req == nil {
		return apperr.Validation("operation request cannot be null")
	}
	if strings.TrimSpace(req.Operation) == "" {
		return apperr.Validation("operation cannot be null or empty")
	}

	operation := strings.ToLower(req.Operation)
	switch operation {
	case models.OperationAdd, models.OperationSubtract, models.OperationMultiply,
		models.OperationDivide, models.OperationSqrt:
	default:
		return apperr.Validation("invalid operation: " + req.Operation)
	}

	if req.OperandA == nil {
		return apperr.Validation("operandA cannot be null")
	}
	if !inRange(*req.OperandA) {
		return apperr.Validation("operandA must be between -1000000 and 1000000")
	}
	if operation == models.OperationSqrt && req.OperandA.IsNegative() {
		return apperr.Validation("square root of negative number is not allowed")
	}
	if req.OperandB == nil {
		return apperr.Validation("operandB cannot be null")
	}
	if !inRange(*req.OperandB) {
		return apperr.Validation("operandB must be between -1000000 and 1000000")
	}
	if operation == models.OperationDivide && req.OperandB.IsZero() {
		return apperr.Validation("division by zero is not allowed")
	}
	return nil
}

func inRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(minOperand) && d.LessThanOrEqual(maxOperand)
}
