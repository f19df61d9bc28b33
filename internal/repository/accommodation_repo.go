package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hsinyu/travelplan/internal/models"
	"go.uber.org/zap"
)

// AccommodationRepository persists accommodation line items
type AccommodationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAccommodationRepository creates a new accommodation repository
func NewAccommodationRepository(db *sql.DB, logger *zap.Logger) *AccommodationRepository {
	return &AccommodationRepository{db: db, logger: logger}
}

// InsertTx inserts one accommodation inside the caller's transaction
func (r *AccommodationRepository) InsertTx(ctx context.Context, tx *sql.Tx, acc *models.Accommodation) error {
	query := `
		INSERT INTO accommodations (id, plan_id, hotel, address, check_in, check_out, status, note, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		acc.ID,
		acc.PlanID,
		acc.Hotel,
		acc.Address,
		acc.CheckIn,
		acc.CheckOut,
		acc.Status,
		acc.Note,
		acc.Position,
		acc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert accommodation", zap.String("plan_id", acc.PlanID), zap.Error(err))
		return fmt.Errorf("failed to insert accommodation: %w", err)
	}
	return nil
}

// DeleteByPlanTx removes all accommodations of a plan inside the caller's transaction
func (r *AccommodationRepository) DeleteByPlanTx(ctx context.Context, tx *sql.Tx, planID string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM accommodations WHERE plan_id = ?", planID); err != nil {
		r.logger.Error("Failed to delete accommodations", zap.String("plan_id", planID), zap.Error(err))
		return fmt.Errorf("failed to delete accommodations: %w", err)
	}
	return nil
}

// GetByPlan retrieves all accommodations of a plan in position order
func (r *AccommodationRepository) GetByPlan(ctx context.Context, planID string) ([]*models.Accommodation, error) {
	query := `
		SELECT id, plan_id, hotel, address, check_in, check_out, status, note, position, created_at
		FROM accommodations
		WHERE plan_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		r.logger.Error("Failed to get accommodations", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to get accommodations: %w", err)
	}
	defer rows.Close()

	var accs []*models.Accommodation
	for rows.Next() {
		var acc models.Accommodation
		err := rows.Scan(
			&acc.ID,
			&acc.PlanID,
			&acc.Hotel,
			&acc.Address,
			&acc.CheckIn,
			&acc.CheckOut,
			&acc.Status,
			&acc.Note,
			&acc.Position,
			&acc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accommodation: %w", err)
		}
		accs = append(accs, &acc)
	}
	return accs, rows.Err()
}

// GetByID retrieves one accommodation. Returns (nil, nil) when absent.
func (r *AccommodationRepository) GetByID(ctx context.Context, id string) (*models.Accommodation, error) {
	query := `
		SELECT id, plan_id, hotel, address, check_in, check_out, status, note, position, created_at
		FROM accommodations
		WHERE id = ?
	`
	var acc models.Accommodation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID,
		&acc.PlanID,
		&acc.Hotel,
		&acc.Address,
		&acc.CheckIn,
		&acc.CheckOut,
		&acc.Status,
		&acc.Note,
		&acc.Position,
		&acc.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get accommodation", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}
	return &acc, nil
}

// UpdateStatus sets the payment status of one accommodation
func (r *AccommodationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE accommodations SET status = ? WHERE id = ?", status, id)
	if err != nil {
		r.logger.Error("Failed to update accommodation status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update accommodation status: %w", err)
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
