package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/models"
)

func TestPlanService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	plan, err := env.plans.Create(context.Background(), PlanInput{Title: "Chiang Mai"})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, models.PlanStatusPlanning, plan.Status)
}

func TestPlanService_CreateRequiresTitle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.plans.Create(context.Background(), PlanInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPlanService_StatusIsCyclic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t)

	// Any status may move to any other, including backwards.
	for _, status := range []string{
		models.PlanStatusCompleted,
		models.PlanStatusPlanning,
		models.PlanStatusOngoing,
		models.PlanStatusScheduled,
	} {
		updated, err := env.plans.Update(ctx, plan.ID, PlanInput{
			Title:  plan.Title,
			Status: status,
		})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestPlanService_GetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.plans.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// Deleting a plan must leave its dependent records behind. The orphans are
// the documented behavior, not an accident; cleanup is the caller's job.
func TestPlanService_DeleteLeavesOrphans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	plan := env.createPlan(t)

	_, err := env.budgets.Replace(ctx, plan.ID, []BudgetItemInput{
		{Type: models.BudgetTypeFixed, Item: "Flight", Amount: "12000"},
	}, BudgetSummaryInput{})
	require.NoError(t, err)

	_, err = env.accommodations.Replace(ctx, plan.ID, []AccommodationInput{
		{Hotel: "Riverside Inn"},
	})
	require.NoError(t, err)

	_, err = env.tripItems.Replace(ctx, plan.ID, []TripItemInput{
		{Date: "2025-11-01", Activity: "Arrival"},
	})
	require.NoError(t, err)

	require.NoError(t, env.plans.Delete(ctx, plan.ID))

	_, err = env.plans.Get(ctx, plan.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	budget, err := env.budgets.GetByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, budget.Items, 1, "budget items survive plan deletion")

	accs, err := env.accommodations.GetByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, accs, 1, "accommodations survive plan deletion")

	days, err := env.tripItems.GetByPlanGrouped(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, days, 1, "trip items survive plan deletion")
}

func TestPlanService_DeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.plans.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
