package models

import "time"

// TravelInfo is the single free-form notes record per plan, upserted as a whole
type TravelInfo struct {
	PlanID    string    `json:"planId"`
	CashNotes string    `json:"cashNotes"`
	CardNotes string    `json:"cardNotes"`
	Notices   string    `json:"notices"`
	UpdatedAt time.Time `json:"updatedAt"`
}
