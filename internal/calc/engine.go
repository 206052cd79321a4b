// Package calc реализует вычислительное ядро сервиса.
//
// Арифметика выполняется в десятичных числах с фиксированной точкой,
// без двоичной плавающей запятой для итогового значения. Исключение —
// sqrt: квадратный корень берётся как float64-приближение и затем
// возвращается в десятичную форму. Результат каждой операции единообразно
// округляется до одного знака после запятой по правилу half-up.
package calc

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/models"
)

// resultScale — число знаков после запятой в итоговом значении.
// Политика единая для всех операций и сознательно срезает лишнюю
// точность операндов: её изменение сломало бы сверку с уже
// сохранёнными записями.
const resultScale = 1

// Compute вычисляет результат операции над операндами.
//
// Деление на ноль отсекается валидатором выше по конвейеру; нулевой
// делитель здесь — ошибка программирования, decimal паникует громко.
// Неизвестный вид операции возвращается как ErrUnknownOperation:
// валидатор обязан был его исключить.
func Compute(operation string, a, b decimal.Decimal) (decimal.Decimal, error) {
	const op = "calc.Compute"

	var result decimal.Decimal
	switch strings.ToLower(operation) {
	case models.OperationAdd:
		result = a.Add(b)
	case models.OperationSubtract:
		result = a.Sub(b)
	case models.OperationMultiply:
		result = a.Mul(b)
	case models.OperationDivide:
		result = a.DivRound(b, resultScale)
	case models.OperationSqrt:
		f, _ := a.Float64()
		result = decimal.NewFromFloat(math.Sqrt(f))
	default:
		return decimal.Decimal{}, fmt.Errorf("%s: %q: %w", op, operation, apperr.ErrUnknownOperation)
	}

	// Round срезает лишнюю точность, но не добавляет недостающую:
	// целочисленный результат он вернул бы с нулевым масштабом.
	// Масштаб фиксируется явно, запись всегда несёт ровно один знак.
	rounded := result.Round(resultScale)
	return decimal.New(rounded.Shift(resultScale).IntPart(), -resultScale), nil
}
