package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/pkg/database"
)

// TripItemInput carries the writable fields of one schedule row
type TripItemInput struct {
	Date     string `json:"date"`
	Activity string `json:"activity"`
	Cost     string `json:"cost"`
	Note     string `json:"note"`
}

// TripItemService maintains the schedule rows of a plan
type TripItemService struct {
	db     *database.DB
	plans  *repository.PlanRepository
	items  *repository.TripItemRepository
	logger *zap.Logger
}

// NewTripItemService creates a new trip item service
func NewTripItemService(
	db *database.DB,
	plans *repository.PlanRepository,
	items *repository.TripItemRepository,
	logger *zap.Logger,
) *TripItemService {
	return &TripItemService{db: db, plans: plans, items: items, logger: logger}
}

// Replace swaps the full schedule of a plan in one transaction.
// An empty set is an explicit clear; invalid rows reject the whole batch.
func (s *TripItemService) Replace(ctx context.Context, planID string, inputs []TripItemInput) ([]*models.TripItem, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan not found")
	}

	var rowErrs []apperr.RowError
	for i, in := range inputs {
		if in.Activity == "" {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "activity", Reason: "activity is required"})
		}
		if in.Date == "" {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "date", Reason: "date is required"})
		}
	}
	if len(rowErrs) > 0 {
		return nil, apperr.ValidationRows("trip items rejected", rowErrs)
	}

	now := time.Now().UTC()
	items := make([]*models.TripItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, &models.TripItem{
			ID:        uuid.NewString(),
			PlanID:    planID,
			Date:      in.Date,
			Activity:  in.Activity,
			Cost:      in.Cost,
			Note:      in.Note,
			Position:  i,
			CreatedAt: now,
		})
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
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Trip items replaced",
		zap.String("plan_id", planID),
		zap.Int("items", len(items)))
	return items, nil
}

// GetByPlanGrouped returns the schedule of a plan grouped by date, dates in
// ascending order and rows in saved order within each day
func (s *TripItemService) GetByPlanGrouped(ctx context.Context, planID string) ([]*models.TripDay, error) {
	items, err := s.items.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return GroupByDate(items), nil
}

// GroupByDate groups an ordered item list into per-date buckets, keeping
// the input order of both dates and items
func GroupByDate(items []*models.TripItem) []*models.TripDay {
	days := []*models.TripDay{}
	index := make(map[string]*models.TripDay)
	for _, item := range items {
		day, ok := index[item.Date]
		if !ok {
			day = &models.TripDay{Date: item.Date}
			index[item.Date] = day
			days = append(days, day)
		}
		day.Items = append(day.Items, item)
	}
	return days
}
