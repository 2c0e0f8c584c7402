package model

import (
	"fmt"
	"time"
)

type CalculationType string

const (
	CalculationAddition       CalculationType = "addition"
	CalculationSubtraction    CalculationType = "subtraction"
	CalculationMultiplication CalculationType = "multiplication"
	CalculationDivision       CalculationType = "division"
)

func (t CalculationType) Valid() bool {
	switch t {
	case CalculationAddition, CalculationSubtraction, CalculationMultiplication, CalculationDivision:
		return true
	}
	return false
}

type Calculation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      CalculationType `json:"type"`
	Inputs    []float64       `json:"inputs"`
	Result    float64         `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ComputeResult evaluates the operation over inputs. Every operation needs
// at least two operands; division folds left to right and rejects zero
// divisors.
func ComputeResult(calcType CalculationType, inputs []float64) (float64, error) {
	if len(inputs) < 2 {
		return 0, fmt.Errorf("%w: at least two inputs are required", ErrInvalidInput)
	}

	result := inputs[0]
	for _, operand := range inputs[1:] {
		switch calcType {
		case CalculationAddition:
			result += operand
		case CalculationSubtraction:
			result -= operand
		case CalculationMultiplication:
			result *= operand
		case CalculationDivision:
			if operand == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrInvalidInput)
			}
			result /= operand
		default:
			return 0, fmt.Errorf("%w: unknown calculation type %q", ErrInvalidInput, calcType)
		}
	}

	return result, nil
}
