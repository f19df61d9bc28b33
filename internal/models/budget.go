package models

import "time"

// Budget item types
const (
	BudgetTypeFixed       = "fixed"
	BudgetTypeSightseeing = "sightseeing"
)

// Line item payment statuses. ItemStatusNA is set only by import,
// never by the toggle endpoint.
const (
	ItemStatusPending = "pending"
	ItemStatusPaid    = "paid"
	ItemStatusNA      = "na"
)

// Supported currencies
const (
	CurrencyTWD = "TWD"
	CurrencyTHB = "THB"
)

// BudgetItem is one budget row owned by exactly one plan.
// Amount keeps the operator's display string verbatim ("約 500", "250-700");
// AmountValue is the best-effort decimal parsed once at write time.
type BudgetItem struct {
	ID          string    `json:"id"`
	PlanID      string    `json:"planId"`
	Type        string    `json:"type"`
	Item        string    `json:"item"`
	Amount      string    `json:"amount"`
	AmountValue string    `json:"amountValue"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BudgetSummary is the single manually-maintained aggregate record per plan.
// FinalTotal is derived from the three manual fields, never from line items.
type BudgetSummary struct {
	PlanID       string    `json:"planId"`
	TWDTotal     string    `json:"twdTotal"`
	THBTotal     string    `json:"thbTotal"`
	ExchangeRate string    `json:"exchangeRate"`
	FinalTotal   string    `json:"finalTotal"`
	Note         string    `json:"note"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidBudgetType reports whether t is a known budget item type
func ValidBudgetType(t string) bool {
	return t == BudgetTypeFixed || t == BudgetTypeSightseeing
}

// ValidItemStatus reports whether s is a known line item status
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusPending, ItemStatusPaid, ItemStatusNA:
		return true
	}
	return false
}

// ValidCurrency reports whether c is a supported currency
func ValidCurrency(c string) bool {
	return c == CurrencyTWD || c == CurrencyTHB
}
