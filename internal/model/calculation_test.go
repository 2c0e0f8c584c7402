package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeResult(t *testing.T) {
	t.Parallel()

	t.Run("computes each operation left to right", func(t *testing.T) {
		tests := []struct {
			calcType CalculationType
			inputs   []float64
			want     float64
		}{
			{CalculationAddition, []float64{1, 2}, 3},
			{CalculationAddition, []float64{1, 2, 3.5}, 6.5},
			{CalculationSubtraction, []float64{10, 2, 3}, 5},
			{CalculationMultiplication, []float64{2, 3, 4}, 24},
			{CalculationDivision, []float64{20, 2, 5}, 2},
		}

		for _, tt := range tests {
			got, err := ComputeResult(tt.calcType, tt.inputs)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		}
	})

	t.Run("rejects fewer than two inputs", func(t *testing.T) {
		for _, calcType := range []CalculationType{
			CalculationAddition, CalculationSubtraction, CalculationMultiplication, CalculationDivision,
		} {
			_, err := ComputeResult(calcType, []float64{1})
			require.ErrorIs(t, err, ErrInvalidInput)

			_, err = ComputeResult(calcType, nil)
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("rejects division by zero", func(t *testing.T) {
		_, err := ComputeResult(CalculationDivision, []float64{1, 0})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := ComputeResult("modulo", []float64{1, 2})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCalculationTypeValid(t *testing.T) {
	t.Parallel()

	require.True(t, CalculationAddition.Valid())
	require.True(t, CalculationDivision.Valid())
	require.False(t, CalculationType("modulo").Valid())
	require.False(t, CalculationType("").Valid())
}
