package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-calc-api/internal/model"
)

type memoryCalculationRepo struct {
	calculations map[string]model.Calculation
}

func newMemoryCalculationRepo() *memoryCalculationRepo {
	return &memoryCalculationRepo{calculations: map[string]model.Calculation{}}
}

func (r *memoryCalculationRepo) Create(_ context.Context, c model.Calculation) error {
	r.calculations[c.ID] = c
	return nil
}

func (r *memoryCalculationRepo) FindByID(_ context.Context, userID string, id string) (model.Calculation, error) {
	c, ok := r.calculations[id]
	if !ok || c.UserID != userID {
		return model.Calculation{}, model.ErrCalculationNotFound
	}
	return c, nil
}

func (r *memoryCalculationRepo) ListByUser(_ context.Context, userID string) ([]model.Calculation, error) {
	out := make([]model.Calculation, 0)
	for _, c := range r.calculations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCalculationRepo) Update(_ context.Context, c model.Calculation) error {
	existing, ok := r.calculations[c.ID]
	if !ok || existing.UserID != c.UserID {
		return model.ErrCalculationNotFound
	}
	r.calculations[c.ID] = c
	return nil
}

func (r *memoryCalculationRepo) Delete(_ context.Context, userID string, id string) error {
	c, ok := r.calculations[id]
	if !ok || c.UserID != userID {
		return model.ErrCalculationNotFound
	}
	delete(r.calculations, id)
	return nil
}

func TestCalculationServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewCalculationService(newMemoryCalculationRepo())

	t.Run("computes and stores the result", func(t *testing.T) {
		calculation, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{
			Type:   model.CalculationAddition,
			Inputs: []float64{1, 2},
		})
		require.NoError(t, err)
		require.InDelta(t, 3, calculation.Result, 1e-9)
		require.Equal(t, "u1", calculation.UserID)
		require.NotEmpty(t, calculation.ID)
	})

	t.Run("rejects invalid type and inputs", func(t *testing.T) {
		_, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{Type: "modulo", Inputs: []float64{1, 2}})
		require.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.Create(ctx, "u1", model.CalculationCreateRequest{Type: model.CalculationDivision, Inputs: []float64{1, 0}})
		require.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.Create(ctx, "u1", model.CalculationCreateRequest{Type: model.CalculationAddition, Inputs: []float64{1}})
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestCalculationServiceOwnership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewCalculationService(newMemoryCalculationRepo())

	created, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{
		Type:   model.CalculationMultiplication,
		Inputs: []float64{2, 3},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", created.ID)
	require.ErrorIs(t, err, model.ErrCalculationNotFound)

	_, err = svc.Update(ctx, "u2", created.ID, model.CalculationUpdateRequest{Inputs: []float64{4, 5}})
	require.ErrorIs(t, err, model.ErrCalculationNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "u2", created.ID), model.ErrCalculationNotFound)

	listed, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestCalculationServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewCalculationService(newMemoryCalculationRepo())

	created, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{
		Type:   model.CalculationSubtraction,
		Inputs: []float64{10, 4},
	})
	require.NoError(t, err)
	require.InDelta(t, 6, created.Result, 1e-9)

	updated, err := svc.Update(ctx, "u1", created.ID, model.CalculationUpdateRequest{Inputs: []float64{10, 2, 3}})
	require.NoError(t, err)
	require.InDelta(t, 5, updated.Result, 1e-9)
	require.Equal(t, model.CalculationSubtraction, updated.Type)

	// Division by zero on update keeps the stored row intact.
	divided, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{
		Type:   model.CalculationDivision,
		Inputs: []float64{8, 2},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", divided.ID, model.CalculationUpdateRequest{Inputs: []float64{8, 0}})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	current, err := svc.Get(ctx, "u1", divided.ID)
	require.NoError(t, err)
	require.InDelta(t, 4, current.Result, 1e-9)
}

func TestCalculationServiceDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewCalculationService(newMemoryCalculationRepo())

	created, err := svc.Create(ctx, "u1", model.CalculationCreateRequest{
		Type:   model.CalculationAddition,
		Inputs: []float64{1, 2},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", created.ID))
	_, err = svc.Get(ctx, "u1", created.ID)
	require.ErrorIs(t, err, model.ErrCalculationNotFound)
}
