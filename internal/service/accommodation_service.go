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
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/pkg/database"
)

// AccommodationInput carries the writable fields of one lodging row
type AccommodationInput struct {
	Hotel    string `json:"hotel"`
	Address  string `json:"address"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
	Note     string `json:"note"`
}

// AccommodationService maintains the accommodation rows of a plan
type AccommodationService struct {
	db     *database.DB
	plans  *repository.PlanRepository
	accs   *repository.AccommodationRepository
	logger *zap.Logger
}

// NewAccommodationService creates a new accommodation service
func NewAccommodationService(
	db *database.DB,
	plans *repository.PlanRepository,
	accs *repository.AccommodationRepository,
	logger *zap.Logger,
) *AccommodationService {
	return &AccommodationService{db: db, plans: plans, accs: accs, logger: logger}
}

// Replace swaps the full accommodation set of a plan in one transaction.
// An empty set is an explicit clear; invalid rows reject the whole batch.
func (s *AccommodationService) Replace(ctx context.Context, planID string, inputs []AccommodationInput) ([]*models.Accommodation, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan not found")
	}

	var rowErrs []apperr.RowError
	for i, in := range inputs {
		if in.Hotel == "" {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "hotel", Reason: "hotel name is required"})
		}
		if in.Status != "" && !models.ValidItemStatus(in.Status) {
			rowErrs = append(rowErrs, apperr.RowError{Row: i, Field: "status", Reason: "unknown status: " + in.Status})
		}
	}
	if len(rowErrs) > 0 {
		return nil, apperr.ValidationRows("accommodations rejected", rowErrs)
	}

	now := time.Now().UTC()
	accs := make([]*models.Accommodation, 0, len(inputs))
	for i, in := range inputs {
		accs = append(accs, &models.Accommodation{
			ID:        uuid.NewString(),
			PlanID:    planID,
			Hotel:     in.Hotel,
			Address:   in.Address,
			CheckIn:   in.CheckIn,
			CheckOut:  in.CheckOut,
			Status:    defaultString(in.Status, models.ItemStatusPending),
			Note:      in.Note,
			Position:  i,
			CreatedAt: now,
		})
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		if err := s.accs.DeleteByPlanTx(ctx, tx, planID); err != nil {
			return err
		}
		for _, acc := range accs {
			if err := s.accs.InsertTx(ctx, tx, acc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Accommodations replaced",
		zap.String("plan_id", planID),
		zap.Int("items", len(accs)))
	return accs, nil
}

// GetByPlan returns the accommodation rows of a plan
func (s *AccommodationService) GetByPlan(ctx context.Context, planID string) ([]*models.Accommodation, error) {
	accs, err := s.accs.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if accs == nil {
		accs = []*models.Accommodation{}
	}
	return accs, nil
}

// ToggleStatus flips one accommodation between pending and paid
func (s *AccommodationService) ToggleStatus(ctx context.Context, id string) (*models.Accommodation, error) {
	acc, err := s.accs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperr.NotFound("accommodation not found")
	}

	var next string
	switch acc.Status {
	case models.ItemStatusPending:
		next = models.ItemStatusPaid
	case models.ItemStatusPaid:
		next = models.ItemStatusPending
	default:
		return nil, apperr.Validation(fmt.Sprintf("cannot toggle accommodation with status %q", acc.Status))
	}

	if err := s.accs.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("accommodation not found")
		}
		return nil, err
	}
	acc.Status = next
	return acc, nil
}
