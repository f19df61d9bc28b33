package models

import "time"

// TripItem is one schedule row owned by exactly one plan.
// Cost keeps the operator's display string verbatim.
type TripItem struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Date      string    `json:"date"`
	Activity  string    `json:"activity"`
	Cost      string    `json:"cost"`
	Note      string    `json:"note"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// TripDay groups the trip items of a single date
type TripDay struct {
	Date  string      `json:"date"`
	Items []*TripItem `json:"items"`
}
