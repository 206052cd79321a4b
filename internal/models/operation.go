// Package models содержит доменные структуры арифметической операции:
// запрос на вычисление и сохранённую запись с результатом.
// Операнды и результат хранятся как decimal.Decimal, чтобы исключить
// двоичную погрешность при вычислениях и в хранилище.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Признанные виды операций. Сравнение регистронезависимое,
// в хранилище вид записывается в нижнем регистре.
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationMultiply = "multiply"
	OperationDivide   = "divide"
	OperationSqrt     = "sqrt"
)

// OperationRequest представляет запрос на вычисление до доменной валидации.
// Операнды приходят указателями: nil означает отсутствие поля в запросе.
// OperandB обязателен и для sqrt — форма запроса едина для всех операций.
type OperationRequest struct {
	Operation string           `json:"operation"`
	OperandA  *decimal.Decimal `json:"operand_a"`
	OperandB  *decimal.Decimal `json:"operand_b"`
}

// Operation представляет сохранённую запись вычисления. Запись неизменяема:
// после создания возможны только чтение и удаление. Username проставляется
// из subject проверенного токена, не из входных данных запроса.
type Operation struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Operation string          `json:"operation"`
	OperandA  decimal.Decimal `json:"operand_a"`
	OperandB  decimal.Decimal `json:"operand_b"`
	Result    decimal.Decimal `json:"result"`
	CreatedAt time.Time       `json:"timestamp"`
}

// MarshalJSON сериализует запись, выводя результат с фиксированным одним
// знаком после запятой: "15.0", не "15". decimal.String срезает хвостовые
// нули независимо от масштаба значения, поэтому фиксированная форма
// задаётся здесь, на границе сериализации.
func (o Operation) MarshalJSON() ([]byte, error) {
	type operationAlias Operation
	return json.Marshal(struct {
		operationAlias
		Result string `json:"result"`
	}{operationAlias(o), o.Result.StringFixed(1)})
}
