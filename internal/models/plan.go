package models

import "time"

// Plan statuses. The lifecycle is cyclic: any status may move to any other.
const (
	PlanStatusPlanning  = "planning"
	PlanStatusScheduled = "scheduled"
	PlanStatusOngoing   = "ongoing"
	PlanStatusCompleted = "completed"
)

// Plan is a trip record, the aggregation root for all per-trip data.
// Deleting a plan does not cascade to its line items.
type Plan struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidPlanStatus reports whether s is a known plan status
func ValidPlanStatus(s string) bool {
	switch s {
	case PlanStatusPlanning, PlanStatusScheduled, PlanStatusOngoing, PlanStatusCompleted:
		return true
	}
	return false
}
