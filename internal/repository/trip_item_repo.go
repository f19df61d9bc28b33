package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hsinyu/travelplan/internal/models"
	"go.uber.org/zap"
)

// TripItemRepository persists trip schedule items
type TripItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTripItemRepository creates a new trip item repository
func NewTripItemRepository(db *sql.DB, logger *zap.Logger) *TripItemRepository {
	return &TripItemRepository{db: db, logger: logger}
}

// InsertTx inserts one trip item inside the caller's transaction
func (r *TripItemRepository) InsertTx(ctx context.Context, tx *sql.Tx, item *models.TripItem) error {
	query := `
		INSERT INTO trip_items (id, plan_id, date, activity, cost, note, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		item.ID,
		item.PlanID,
		item.Date,
		item.Activity,
		item.Cost,
		item.Note,
		item.Position,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert trip item", zap.String("plan_id", item.PlanID), zap.Error(err))
		return fmt.Errorf("failed to insert trip item: %w", err)
	}
	return nil
}

// DeleteByPlanTx removes all trip items of a plan inside the caller's transaction
func (r *TripItemRepository) DeleteByPlanTx(ctx context.Context, tx *sql.Tx, planID string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM trip_items WHERE plan_id = ?", planID); err != nil {
		r.logger.Error("Failed to delete trip items", zap.String("plan_id", planID), zap.Error(err))
		return fmt.Errorf("failed to delete trip items: %w", err)
	}
	return nil
}

// GetByPlan retrieves all trip items of a plan, date then position order
func (r *TripItemRepository) GetByPlan(ctx context.Context, planID string) ([]*models.TripItem, error) {
	query := `
		SELECT id, plan_id, date, activity, cost, note, position, created_at
		FROM trip_items
		WHERE plan_id = ?
		ORDER BY date ASC, position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		r.logger.Error("Failed to get trip items", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to get trip items: %w", err)
	}
	defer rows.Close()

	var items []*models.TripItem
	for rows.Next() {
		var item models.TripItem
		err := rows.Scan(
			&item.ID,
			&item.PlanID,
			&item.Date,
			&item.Activity,
			&item.Cost,
			&item.Note,
			&item.Position,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
