package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/money"
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/pkg/database"
)

// BudgetItemInput carries the writable fields of one budget row
type BudgetItemInput struct {
	Type     string `json:"type"`
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Note     string `json:"note"`
}

// BudgetSummaryInput carries the manual summary fields
type BudgetSummaryInput struct {
	TWDTotal     string `json:"twdTotal"`
	THBTotal     string `json:"thbTotal"`
	ExchangeRate string `json:"exchangeRate"`
	Note         string `json:"note"`
}

// BudgetView is the combined read model of a plan's budget
type BudgetView struct {
	Items   []*models.BudgetItem  `json:"items"`
	Summary *models.BudgetSummary `json:"summary"`
}

// BudgetService maintains the budget line items and summary of a plan
type BudgetService struct {
	db        *database.DB
	plans     *repository.PlanRepository
	items     *repository.BudgetItemRepository
	summaries *repository.BudgetSummaryRepository
	logger    *zap.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	db *database.DB,
	plans *repository.PlanRepository,
	items *repository.BudgetItemRepository,
	summaries *repository.BudgetSummaryRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		db:        db,
		plans:     plans,
		items:     items,
		summaries: summaries,
		logger:    logger,
	}
}

// Replace treats the incoming set as the complete new truth for the plan:
// all existing items are deleted and the validated set inserted, with the
// summary upsert, in one transaction. An empty set is an explicit clear.
// A batch containing invalid rows is rejected whole with per-row errors;
// nothing is written.
func (s *BudgetService) Replace(ctx context.Context, planID string, inputs []BudgetItemInput, summaryInput BudgetSummaryInput) (*BudgetView, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan not found")
	}

	if rowErrs := validateBudgetItems(inputs); len(rowErrs) > 0 {
		return nil, apperr.ValidationRows("budget items rejected", rowErrs)
	}

	now := time.Now().UTC()
	items := make([]*models.BudgetItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, &models.BudgetItem{
			ID:          uuid.NewString(),
			PlanID:      planID,
			Type:        in.Type,
			Item:        in.Item,
			Amount:      in.Amount,
			AmountValue: money.ParseLoose(in.Amount).String(),
			Currency:    defaultString(in.Currency, models.CurrencyTWD),
			Status:      defaultString(in.Status, models.ItemStatusPending),
			Note:        in.Note,
			Position:    i,
			CreatedAt:   now,
		})
	}

	summary := &models.BudgetSummary{
		PlanID:       planID,
		TWDTotal:     summaryInput.TWDTotal,
		THBTotal:     summaryInput.THBTotal,
		ExchangeRate: summaryInput.ExchangeRate,
		FinalTotal:   money.FinalTotal(summaryInput.TWDTotal, summaryInput.THBTotal, summaryInput.ExchangeRate),
		Note:         summaryInput.Note,
		UpdatedAt:    now,
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		if err := s.items.DeleteByPlanTx(ctx, tx, planID); err != nil {
			return err
		}
		for _, item := range items {
			if err := s.items.InsertTx(ctx, tx, item); err != nil {
				return err
			}
		}
		return s.summaries.UpsertTx(ctx, tx, summary)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Budget replaced",
		zap.String("plan_id", planID),
		zap.Int("items", len(items)))

	return &BudgetView{Items: items, Summary: summary}, nil
}

// GetByPlan returns the budget items and summary of a plan. A plan with no
// saved summary gets an empty one so the client always sees the same shape.
func (s *BudgetService) GetByPlan(ctx context.Context, planID string) (*BudgetView, error) {
	items, err := s.items.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaries.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = &models.BudgetSummary{PlanID: planID}
	}
	if items == nil {
		items = []*models.BudgetItem{}
	}
	return &BudgetView{Items: items, Summary: summary}, nil
}

// ToggleStatus flips one item between pending and paid. Items marked na are
// outside the toggle cycle; only import sets that status.
func (s *BudgetService) ToggleStatus(ctx context.Context, itemID string) (*models.BudgetItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("budget item not found")
	}

	next, err := toggledStatus(item.Status)
	if err != nil {
		return nil, err
	}
	if err := s.items.UpdateStatus(ctx, itemID, next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("budget item not found")
		}
		return nil, err
	}
	item.Status = next
	return item, nil
}

func toggledStatus(current string) (string, error) {
	switch current {
	case models.ItemStatusPending:
		return models.ItemStatusPaid, nil
	case models.ItemStatusPaid:
		return models.ItemStatusPending, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("cannot toggle item with status %q", current))
	}
}

func validateBudgetItems(inputs []BudgetItemInput) []apperr.RowError {
	var rowErrs []apperr.RowError
	for i, in := range inputs {
		if in.Item == "" {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "item", Reason: "item name is required"})
		}
		if !models.ValidBudgetType(in.Type) {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "type", Reason: "unknown budget type: " + in.Type})
		}
		if in.Currency != "" && !models.ValidCurrency(in.Currency) {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "currency", Reason: "unsupported currency: " + in.Currency})
		}
		if in.Status != "" && !models.ValidItemStatus(in.Status) {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "status", Reason: "unknown status: " + in.Status})
		}
	}
	return rowErrs
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
