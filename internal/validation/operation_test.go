package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenmx/calculator-service/internal/apperr"
	"github.com/ravenmx/calculator-service/internal/models"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateOperation_Valid(t *testing.T) {
	tests := []struct {
		name string
		req  *models.OperationRequest
	}{
		{
			name: "addition",
			req:  &models.OperationRequest{Operation: "add", OperandA: decPtr("1"), OperandB: decPtr("2")},
		},
		{
			name: "uppercase operation",
			req:  &models.OperationRequest{Operation: "DIVIDE", OperandA: decPtr("10"), OperandB: decPtr("3")},
		},
		{
			name: "operands at range bounds",
			req:  &models.OperationRequest{Operation: "subtract", OperandA: decPtr("-1000000"), OperandB: decPtr("1000000")},
		},
		{
			name: "sqrt of zero",
			req:  &models.OperationRequest{Operation: "sqrt", OperandA: decPtr("0"), OperandB: decPtr("0")},
		},
		{
			name: "multiply by zero",
			req:  &models.OperationRequest{Operation: "multiply", OperandA: decPtr("5"), OperandB: decPtr("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateOperation(tt.req))
		})
	}
}

func TestValidateOperation_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.OperationRequest
		wantReason string
	}{
		{
			name:       "nil request",
			req:        nil,
			wantReason: "operation request cannot be null",
		},
		{
			name:       "empty operation",
			req:        &models.OperationRequest{Operation: "", OperandA: decPtr("1"), OperandB: decPtr("2")},
			wantReason: "operation cannot be null or empty",
		},
		{
			name:       "whitespace operation",
			req:        &models.OperationRequest{Operation: "   ", OperandA: decPtr("1"), OperandB: decPtr("2")},
			wantReason: "operation cannot be null or empty",
		},
		{
			name:       "unknown operation",
			req:        &models.OperationRequest{Operation: "modulo", OperandA: decPtr("1"), OperandB: decPtr("2")},
			wantReason: "invalid operation: modulo",
		},
		{
			name:       "unknown operation checked before missing operands",
			req:        &models.OperationRequest{Operation: "power"},
			wantReason: "invalid operation: power",
		},
		{
			name:       "missing operandA",
			req:        &models.OperationRequest{Operation: "add", OperandB: decPtr("2")},
			wantReason: "operandA cannot be null",
		},
		{
			name:       "operandA above range",
			req:        &models.OperationRequest{Operation: "add", OperandA: decPtr("1000000.1"), OperandB: decPtr("2")},
			wantReason: "operandA must be between -1000000 and 1000000",
		},
		{
			name:       "operandA below range",
			req:        &models.OperationRequest{Operation: "add", OperandA: decPtr("-1000001"), OperandB: decPtr("2")},
			wantReason: "operandA must be between -1000000 and 1000000",
		},
		{
			name:       "operandA range checked before sqrt sign",
			req:        &models.OperationRequest{Operation: "sqrt", OperandA: decPtr("-2000000"), OperandB: decPtr("0")},
			wantReason: "operandA must be between -1000000 and 1000000",
		},
		{
			name:       "sqrt of negative",
			req:        &models.OperationRequest{Operation: "sqrt", OperandA: decPtr("-4"), OperandB: decPtr("0")},
			wantReason: "square root of negative number is not allowed",
		},
		{
			name:       "sqrt of negative reported before missing operandB",
			req:        &models.OperationRequest{Operation: "sqrt", OperandA: decPtr("-4")},
			wantReason: "square root of negative number is not allowed",
		},
		{
			name:       "missing operandB",
			req:        &models.OperationRequest{Operation: "add", OperandA: decPtr("1")},
			wantReason: "operandB cannot be null",
		},
		{
			name:       "missing operandB required even for sqrt",
			req:        &models.OperationRequest{Operation: "sqrt", OperandA: decPtr("4")},
			wantReason: "operandB cannot be null",
		},
		{
			name:       "operandB out of range",
			req:        &models.OperationRequest{Operation: "add", OperandA: decPtr("1"), OperandB: decPtr("1000001")},
			wantReason: "operandB must be between -1000000 and 1000000",
		},
		{
			name:       "division by zero",
			req:        &models.OperationRequest{Operation: "divide", OperandA: decPtr("1"), OperandB: decPtr("0")},
			wantReason: "division by zero is not allowed",
		},
		{
			name:       "division by zero uppercase operation",
			req:        &models.OperationRequest{Operation: "Divide", OperandA: decPtr("1"), OperandB: decPtr("0.0")},
			wantReason: "division by zero is not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOperation(tt.req)

			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, tt.wantReason, err.Error())
		})
	}
}
