package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-calc-api/internal/model"
)

type CalculationRepository struct {
	pool *pgxpool.Pool
}

func NewCalculationRepository(pool *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{pool: pool}
}

func (r *CalculationRepository) Create(ctx context.Context, c model.Calculation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO calculations (id, user_id, type, inputs, result, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.Type, c.Inputs, c.Result, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create calculation: %w", err)
	}
	return nil
}

// FindByID is owner-scoped: a calculation belonging to another user is
// indistinguishable from a missing one.
func (r *CalculationRepository) FindByID(ctx context.Context, userID string, id string) (model.Calculation, error) {
	var c model.Calculation
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, type, inputs, result, created_at, updated_at
		 FROM calculations WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Type, &c.Inputs, &c.Result, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Calculation{}, model.ErrCalculationNotFound
	}
	if err != nil {
		return model.Calculation{}, fmt.Errorf("find calculation: %w", err)
	}
	return c, nil
}

func (r *CalculationRepository) ListByUser(ctx context.Context, userID string) ([]model.Calculation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, type, inputs, result, created_at, updated_at
		 FROM calculations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	calculations := make([]model.Calculation, 0)
	for rows.Next() {
		var c model.Calculation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &c.Inputs, &c.Result, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		calculations = append(calculations, c)
	}
	return calculations, rows.Err()
}

func (r *CalculationRepository) Update(ctx context.Context, c model.Calculation) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE calculations SET inputs = $3, result = $4, updated_at = $5
		 WHERE id = $1 AND user_id = $2`,
		c.ID, c.UserID, c.Inputs, c.Result, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCalculationNotFound
	}
	return nil
}

func (r *CalculationRepository) Delete(ctx context.Context, userID string, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCalculationNotFound
	}
	return nil
}
