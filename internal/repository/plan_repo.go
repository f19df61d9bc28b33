package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hsinyu/travelplan/internal/models"
	"go.uber.org/zap"
)

// PlanRepository persists plans
type PlanRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB, logger *zap.Logger) *PlanRepository {
	return &PlanRepository{db: db, logger: logger}
}

// Create inserts a new plan
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	query := `
		INSERT INTO plans (id, title, start_date, end_date, status, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.Title,
		plan.StartDate,
		plan.EndDate,
		plan.Status,
		plan.Description,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create plan", zap.Error(err))
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by ID. Returns (nil, nil) when absent.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	query := `
		SELECT id, title, start_date, end_date, status, description, created_at, updated_at
		FROM plans
		WHERE id = ?
	`
	var plan models.Plan
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID,
		&plan.Title,
		&plan.StartDate,
		&plan.EndDate,
		&plan.Status,
		&plan.Description,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get plan", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

// List retrieves all plans, newest first
func (r *PlanRepository) List(ctx context.Context) ([]*models.Plan, error) {
	query := `
		SELECT id, title, start_date, end_date, status, description, created_at, updated_at
		FROM plans
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		var plan models.Plan
		err := rows.Scan(
			&plan.ID,
			&plan.Title,
			&plan.StartDate,
			&plan.EndDate,
			&plan.Status,
			&plan.Description,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

// Update updates a plan. Returns sql.ErrNoRows when the plan is absent.
func (r *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET title = ?, start_date = ?, end_date = ?, status = ?, description = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		plan.Title,
		plan.StartDate,
		plan.EndDate,
		plan.Status,
		plan.Description,
		plan.UpdatedAt,
		plan.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update plan", zap.String("id", plan.ID), zap.Error(err))
		return fmt.Errorf("failed to update plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a plan. Dependent line items are left in place on purpose.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete plan", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
