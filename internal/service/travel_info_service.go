package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/repository"
)

// TravelInfoInput carries the writable travel info fields
type TravelInfoInput struct {
	CashNotes string `json:"cashNotes"`
	CardNotes string `json:"cardNotes"`
	Notices   string `json:"notices"`
}

// TravelInfoService maintains the single notes record per plan
type TravelInfoService struct {
	plans  *repository.PlanRepository
	infos  *repository.TravelInfoRepository
	logger *zap.Logger
}

// NewTravelInfoService creates a new travel info service
func NewTravelInfoService(
	plans *repository.PlanRepository,
	infos *repository.TravelInfoRepository,
	logger *zap.Logger,
) *TravelInfoService {
	return &TravelInfoService{plans: plans, infos: infos, logger: logger}
}

// GetByPlan returns the travel info of a plan, or an empty record when none
// has been saved yet
func (s *TravelInfoService) GetByPlan(ctx context.Context, planID string) (*models.TravelInfo, error) {
	info, err := s.infos.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &models.TravelInfo{PlanID: planID}
	}
	return info, nil
}

// Upsert writes the travel info of a plan
func (s *TravelInfoService) Upsert(ctx context.Context, planID string, input TravelInfoInput) (*models.TravelInfo, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan not found")
	}

	info := &models.TravelInfo{
		PlanID:    planID,
		CashNotes: input.CashNotes,
		CardNotes: input.CardNotes,
		Notices:   input.Notices,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.infos.Upsert(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
