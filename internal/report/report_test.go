package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyu/travelplan/internal/models"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "Grand Palace tour", want: "Grand Palace tour"},
		{name: "strips emoji", input: "🏖️ Beach day ☀️", want: "Beach day"},
		{name: "strips leading bullet", input: "• bring sunscreen", want: "bring sunscreen"},
		{name: "strips dash bullet", input: "- check out by 11:00", want: "check out by 11:00"},
		{name: "collapses double spaces", input: "two  words", want: "two words"},
		{name: "empty", input: "", want: ""},
		{name: "chinese text preserved", input: "🚕 搭車到市區", want: "搭車到市區"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestBuild(t *testing.T) {
	plan := &models.Plan{
		Title:     "Bangkok trip",
		StartDate: "2025-11-01",
		EndDate:   "2025-11-07",
		Status:    models.PlanStatusScheduled,
	}
	days := []*models.TripDay{
		{
			Date: "2025-11-01",
			Items: []*models.TripItem{
				{Activity: "✈️ Arrival", Cost: "約 12000"},
				{Activity: "Night market", Cost: "free"},
			},
		},
	}
	accommodations := []*models.Accommodation{
		{Hotel: "🏨 Riverside Inn", CheckIn: "2025-11-01", CheckOut: "2025-11-03", Status: models.ItemStatusPaid},
	}
	items := []*models.BudgetItem{
		{Type: models.BudgetTypeFixed, Item: "Flight", Amount: "12000", Currency: "TWD", Status: models.ItemStatusPaid},
	}
	summary := &models.BudgetSummary{
		TWDTotal:     "15000",
		THBTotal:     "8000",
		ExchangeRate: "1.1",
		FinalTotal:   "約 23,800 TWD",
	}
	info := &models.TravelInfo{PlanID: "p-1", CashNotes: "• bring 10000 THB"}

	doc := Build(plan, days, accommodations, items, summary, info)

	assert.Equal(t, "Bangkok trip", doc.Title)
	assert.Equal(t, "2025-11-01 – 2025-11-07", doc.DateRange)

	require.Len(t, doc.Days, 1)
	require.Len(t, doc.Days[0].Entries, 2)
	assert.Equal(t, "Arrival", doc.Days[0].Entries[0].Activity)
	assert.Equal(t, "12,000", doc.Days[0].Entries[0].Cost)
	assert.Equal(t, "free", doc.Days[0].Entries[1].Cost, "non-numeric cost passes through")

	require.Len(t, doc.Lodging, 1)
	assert.Equal(t, "Riverside Inn", doc.Lodging[0].Hotel)

	require.Len(t, doc.Budget, 1)
	assert.Equal(t, "12,000", doc.Budget[0].Amount)

	assert.Equal(t, "15,000", doc.Summary.TWDTotal)
	assert.Equal(t, "約 23,800 TWD", doc.Summary.FinalTotal)

	require.NotNil(t, doc.TravelInfo)
	assert.Equal(t, "bring 10000 THB", doc.TravelInfo.CashNotes)
}

func TestBuild_EmptySets(t *testing.T) {
	plan := &models.Plan{Title: "Solo day", Status: models.PlanStatusPlanning}

	doc := Build(plan, nil, nil, nil, nil, nil)

	assert.NotNil(t, doc.Days)
	assert.NotNil(t, doc.Lodging)
	assert.NotNil(t, doc.Budget)
	assert.Nil(t, doc.TravelInfo)
}
