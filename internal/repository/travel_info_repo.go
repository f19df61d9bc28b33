package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hsinyu/travelplan/internal/models"
	"go.uber.org/zap"
)

// TravelInfoRepository persists the per-plan travel notes record
type TravelInfoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTravelInfoRepository creates a new travel info repository
func NewTravelInfoRepository(db *sql.DB, logger *zap.Logger) *TravelInfoRepository {
	return &TravelInfoRepository{db: db, logger: logger}
}

// Upsert writes the travel info of a plan, one row per plan
func (r *TravelInfoRepository) Upsert(ctx context.Context, info *models.TravelInfo) error {
	query := `
		INSERT INTO travel_info (plan_id, cash_notes, card_notes, notices, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			cash_notes = excluded.cash_notes,
			card_notes = excluded.card_notes,
			notices = excluded.notices,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		info.PlanID,
		info.CashNotes,
		info.CardNotes,
		info.Notices,
		info.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert travel info", zap.String("plan_id", info.PlanID), zap.Error(err))
		return fmt.Errorf("failed to upsert travel info: %w", err)
	}
	return nil
}

// GetByPlan retrieves the travel info of a plan. Returns (nil, nil) when absent.
func (r *TravelInfoRepository) GetByPlan(ctx context.Context, planID string) (*models.TravelInfo, error) {
	query := `
		SELECT plan_id, cash_notes, card_notes, notices, updated_at
		FROM travel_info
		WHERE plan_id = ?
	`
	var info models.TravelInfo
	err := r.db.QueryRowContext(ctx, query, planID).Scan(
		&info.PlanID,
		&info.CashNotes,
		&info.CardNotes,
		&info.Notices,
		&info.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get travel info", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to get travel info: %w", err)
	}
	return &info, nil
}
