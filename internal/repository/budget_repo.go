package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hsinyu/travelplan/internal/models"
	"go.uber.org/zap"
)

// BudgetItemRepository persists budget line items
type BudgetItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBudgetItemRepository creates a new budget item repository
func NewBudgetItemRepository(db *sql.DB, logger *zap.Logger) *BudgetItemRepository {
	return &BudgetItemRepository{db: db, logger: logger}
}

// InsertTx inserts one budget item inside the caller's transaction
func (r *BudgetItemRepository) InsertTx(ctx context.Context, tx *sql.Tx, item *models.BudgetItem) error {
	query := `
		INSERT INTO budget_items (id, plan_id, type, item, amount, amount_value, currency, status, note, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		item.ID,
		item.PlanID,
		item.Type,
		item.Item,
		item.Amount,
		item.AmountValue,
		item.Currency,
		item.Status,
		item.Note,
		item.Position,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert budget item", zap.String("plan_id", item.PlanID), zap.Error(err))
		return fmt.Errorf("failed to insert budget item: %w", err)
	}
	return nil
}

// DeleteByPlanTx removes all budget items of a plan inside the caller's transaction
func (r *BudgetItemRepository) DeleteByPlanTx(ctx context.Context, tx *sql.Tx, planID string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM budget_items WHERE plan_id = ?", planID); err != nil {
		r.logger.Error("Failed to delete budget items", zap.String("plan_id", planID), zap.Error(err))
		return fmt.Errorf("failed to delete budget items: %w", err)
	}
	return nil
}

// GetByPlan retrieves all budget items of a plan in position order
func (r *BudgetItemRepository) GetByPlan(ctx context.Context, planID string) ([]*models.BudgetItem, error) {
	query := `
		SELECT id, plan_id, type, item, amount, amount_value, currency, status, note, position, created_at
		FROM budget_items
		WHERE plan_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		r.logger.Error("Failed to get budget items", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to get budget items: %w", err)
	}
	defer rows.Close()

	var items []*models.BudgetItem
	for rows.Next() {
		item, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID retrieves one budget item. Returns (nil, nil) when absent.
func (r *BudgetItemRepository) GetByID(ctx context.Context, id string) (*models.BudgetItem, error) {
	query := `
		SELECT id, plan_id, type, item, amount, amount_value, currency, status, note, position, created_at
		FROM budget_items
		WHERE id = ?
	`
	var item models.BudgetItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.PlanID,
		&item.Type,
		&item.Item,
		&item.Amount,
		&item.AmountValue,
		&item.Currency,
		&item.Status,
		&item.Note,
		&item.Position,
		&item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get budget item", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get budget item: %w", err)
	}
	return &item, nil
}

// UpdateStatus sets the payment status of one budget item
func (r *BudgetItemRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE budget_items SET status = ? WHERE id = ?", status, id)
	if err != nil {
		r.logger.Error("Failed to update budget item status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update budget item status: %w", err)
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

func scanBudgetItem(rows *sql.Rows) (*models.BudgetItem, error) {
	var item models.BudgetItem
	err := rows.Scan(
		&item.ID,
		&item.PlanID,
		&item.Type,
		&item.Item,
		&item.Amount,
		&item.AmountValue,
		&item.Currency,
		&item.Status,
		&item.Note,
		&item.Position,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget item: %w", err)
	}
	return &item, nil
}

// BudgetSummaryRepository persists the per-plan summary record
type BudgetSummaryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBudgetSummaryRepository creates a new budget summary repository
func NewBudgetSummaryRepository(db *sql.DB, logger *zap.Logger) *BudgetSummaryRepository {
	return &BudgetSummaryRepository{db: db, logger: logger}
}

// UpsertTx writes the summary of a plan inside the caller's transaction.
// One row per plan, never multiplied.
func (r *BudgetSummaryRepository) UpsertTx(ctx context.Context, tx *sql.Tx, summary *models.BudgetSummary) error {
	query := `
		INSERT INTO budget_summaries (plan_id, twd_total, thb_total, exchange_rate, final_total, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			twd_total = excluded.twd_total,
			thb_total = excluded.thb_total,
			exchange_rate = excluded.exchange_rate,
			final_total = excluded.final_total,
			note = excluded.note,
			updated_at = excluded.updated_at
	`
	_, err := tx.ExecContext(ctx, query,
		summary.PlanID,
		summary.TWDTotal,
		summary.THBTotal,
		summary.ExchangeRate,
		summary.FinalTotal,
		summary.Note,
		summary.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert budget summary", zap.String("plan_id", summary.PlanID), zap.Error(err))
		return fmt.Errorf("failed to upsert budget summary: %w", err)
	}
	return nil
}

// GetByPlan retrieves the summary of a plan. Returns (nil, nil) when absent.
func (r *BudgetSummaryRepository) GetByPlan(ctx context.Context, planID string) (*models.BudgetSummary, error) {
	query := `
		SELECT plan_id, twd_total, thb_total, exchange_rate, final_total, note, updated_at
		FROM budget_summaries
		WHERE plan_id = ?
	`
	var summary models.BudgetSummary
	err := r.db.QueryRowContext(ctx, query, planID).Scan(
		&summary.PlanID,
		&summary.TWDTotal,
		&summary.THBTotal,
		&summary.ExchangeRate,
		&summary.FinalTotal,
		&summary.Note,
		&summary.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get budget summary", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to get budget summary: %w", err)
	}
	return &summary, nil
}
