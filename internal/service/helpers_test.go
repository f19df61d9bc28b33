package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/pkg/database"
)

// testEnv wires real repositories over an in-memory sqlite database so the
// bulk-replace transactions run against the real storage engine
type testEnv struct {
	db             *database.DB
	plans          *PlanService
	budgets        *BudgetService
	accommodations *AccommodationService
	tripItems      *TripItemService
	travelInfo     *TravelInfoService
	users          *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, logger)
	require.NoError(t, migrator.RunMigrations("../../migrations"))

	planRepo := repository.NewPlanRepository(db.DB, logger)
	itemRepo := repository.NewBudgetItemRepository(db.DB, logger)
	summaryRepo := repository.NewBudgetSummaryRepository(db.DB, logger)
	accRepo := repository.NewAccommodationRepository(db.DB, logger)
	tripRepo := repository.NewTripItemRepository(db.DB, logger)
	infoRepo := repository.NewTravelInfoRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)

	return &testEnv{
		db:             db,
		plans:          NewPlanService(planRepo, logger),
		budgets:        NewBudgetService(db, planRepo, itemRepo, summaryRepo, logger),
		accommodations: NewAccommodationService(db, planRepo, accRepo, logger),
		tripItems:      NewTripItemService(db, planRepo, tripRepo, logger),
		travelInfo:     NewTravelInfoService(planRepo, infoRepo, logger),
		users:          NewUserService(userRepo, 4, logger),
	}
}

func (env *testEnv) createPlan(t *testing.T) *models.Plan {
	t.Helper()
	plan, err := env.plans.Create(context.Background(), PlanInput{
		Title:     "Bangkok trip",
		StartDate: "2025-11-01",
		EndDate:   "2025-11-07",
	})
	require.NoError(t, err)
	return plan
}
