package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-calc-api/internal/model"
)

type CalculationRepository interface {
	Create(ctx context.Context, c model.Calculation) error
	FindByID(ctx context.Context, userID string, id string) (model.Calculation, error)
	ListByUser(ctx context.Context, userID string) ([]model.Calculation, error)
	Update(ctx context.Context, c model.Calculation) error
	Delete(ctx context.Context, userID string, id string) error
}

type CalculationService struct {
	calculations CalculationRepository
}

func NewCalculationService(calculations CalculationRepository) *CalculationService {
	return &CalculationService{calculations: calculations}
}

func (s *CalculationService) Create(ctx context.Context, userID string, req model.CalculationCreateRequest) (model.Calculation, error) {
	if !req.Type.Valid() {
		return model.Calculation{}, fmt.Errorf("%w: unknown calculation type %q", model.ErrInvalidInput, req.Type)
	}

	result, err := model.ComputeResult(req.Type, req.Inputs)
	if err != nil {
		return model.Calculation{}, err
	}

	now := time.Now().UTC()
	calculation := model.Calculation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      req.Type,
		Inputs:    req.Inputs,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.calculations.Create(ctx, calculation); err != nil {
		return model.Calculation{}, err
	}
	return calculation, nil
}

func (s *CalculationService) List(ctx context.Context, userID string) ([]model.Calculation, error) {
	return s.calculations.ListByUser(ctx, userID)
}

func (s *CalculationService) Get(ctx context.Context, userID string, id string) (model.Calculation, error) {
	return s.calculations.FindByID(ctx, userID, id)
}

// Update replaces the inputs and recomputes the result; the operation
// type is fixed at creation.
func (s *CalculationService) Update(ctx context.Context, userID string, id string, req model.CalculationUpdateRequest) (model.Calculation, error) {
	calculation, err := s.calculations.FindByID(ctx, userID, id)
	if err != nil {
		return model.Calculation{}, err
	}

	result, err := model.ComputeResult(calculation.Type, req.Inputs)
	if err != nil {
		return model.Calculation{}, err
	}

	calculation.Inputs = req.Inputs
	calculation.Result = result
	calculation.UpdatedAt = time.Now().UTC()

	if err := s.calculations.Update(ctx, calculation); err != nil {
		return model.Calculation{}, err
	}
	return calculation, nil
}

func (s *CalculationService) Delete(ctx context.Context, userID string, id string) error {
	return s.calculations.Delete(ctx, userID, id)
}
