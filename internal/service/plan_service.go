// Package service implements the application operations behind the REST API.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/repository"
)

// PlanInput carries the writable fields of a plan
type PlanInput struct {
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// PlanService manages trip plans
type PlanService struct {
	plans  *repository.PlanRepository
	logger *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(plans *repository.PlanRepository, logger *zap.Logger) *PlanService {
	return &PlanService{plans: plans, logger: logger}
}

// Create creates a new plan. Status defaults to planning.
func (s *PlanService) Create(ctx context.Context, input PlanInput) (*models.Plan, error) {
	if input.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if input.Status == "" {
		input.Status = models.PlanStatusPlanning
	}
	if !models.ValidPlanStatus(input.Status) {
		return nil, apperr.Validation("unknown plan status: " + input.Status)
	}

	now := time.Now().UTC()
	plan := &models.Plan{
		ID:          uuid.NewString(),
		Title:       input.Title,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("Plan created", zap.String("id", plan.ID), zap.String("title", plan.Title))
	return plan, nil
}

// List returns all plans
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	return s.plans.List(ctx)
}

// Get returns one plan
func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan not found")
	}
	return plan, nil
}

// Update replaces the writable fields of a plan. Any status may move to
// any other; the lifecycle is cyclic, not a strict workflow.
func (s *PlanService) Update(ctx context.Context, id string, input PlanInput) (*models.Plan, error) {
	if input.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if !models.ValidPlanStatus(input.Status) {
		return nil, apperr.Validation("unknown plan status: " + input.Status)
	}

	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Title = input.Title
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate
	plan.Status = input.Status
	plan.Description = input.Description
	plan.UpdatedAt = time.Now().UTC()

	if err := s.plans.Update(ctx, plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan. Line items, summary and travel info referencing the
// plan are left behind; cleanup is the caller's responsibility.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("plan not found")
		}
		return err
	}
	s.logger.Info("Plan deleted", zap.String("id", id))
	return nil
}
