package models

import "time"

// Accommodation is one lodging row owned by exactly one plan
type Accommodation struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Hotel     string    `json:"hotel"`
	Address   string    `json:"address"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
