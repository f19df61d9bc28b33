// Package report assembles the aggregate export payload the client renders
// into a printable document. Pure read-side formatting over the plan's
// record sets; nothing here is persisted.
package report

import (
	"regexp"
	"strings"

	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/money"
)

// Document is the complete export payload for one plan
type Document struct {
	Title      string             `json:"title"`
	DateRange  string             `json:"dateRange"`
	Status     string             `json:"status"`
	Days       []DaySection       `json:"days"`
	Lodging    []LodgingRow       `json:"lodging"`
	Budget     []BudgetRow        `json:"budget"`
	Summary    SummarySection     `json:"summary"`
	TravelInfo *models.TravelInfo `json:"travelInfo,omitempty"`
}

// DaySection is one date's schedule in the document
type DaySection struct {
	Date    string        `json:"date"`
	Entries []ScheduleRow `json:"entries"`
}

// ScheduleRow is one formatted schedule line
type ScheduleRow struct {
	Activity string `json:"activity"`
	Cost     string `json:"cost"`
	Note     string `json:"note"`
}

// LodgingRow is one formatted accommodation line
type LodgingRow struct {
	Hotel    string `json:"hotel"`
	Address  string `json:"address"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

// BudgetRow is one formatted budget line
type BudgetRow struct {
	Type     string `json:"type"`
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// SummarySection is the formatted budget summary block
type SummarySection struct {
	TWDTotal     string `json:"twdTotal"`
	THBTotal     string `json:"thbTotal"`
	ExchangeRate string `json:"exchangeRate"`
	FinalTotal   string `json:"finalTotal"`
	Note         string `json:"note"`
}

// The fixed decoration-stripping passes. Free text arrives decorated with
// emoji and list bullets that have no place in a printed document.
var (
	emojiRe      = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{FE0F}\x{200D}]`)
	bulletRe     = regexp.MustCompile(`(?m)^[\s]*[•●◦▪‣·\-\*]+[\s]*`)
	multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText strips emoji and bullet decoration from free text
func CleanText(s string) string {
	s = emojiRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Build assembles the export document from the plan's record sets
func Build(
	plan *models.Plan,
	days []*models.TripDay,
	accommodations []*models.Accommodation,
	items []*models.BudgetItem,
	summary *models.BudgetSummary,
	info *models.TravelInfo,
) *Document {
	doc := &Document{
		Title:     CleanText(plan.Title),
		DateRange: plan.StartDate + " – " + plan.EndDate,
		Status:    plan.Status,
		Days:      []DaySection{},
		Lodging:   []LodgingRow{},
		Budget:    []BudgetRow{},
	}

	for _, day := range days {
		section := DaySection{Date: day.Date}
		for _, item := range day.Items {
			section.Entries = append(section.Entries, ScheduleRow{
				Activity: CleanText(item.Activity),
				Cost:     money.FormatDisplay(item.Cost),
				Note:     CleanText(item.Note),
			})
		}
		doc.Days = append(doc.Days, section)
	}

	for _, acc := range accommodations {
		doc.Lodging = append(doc.Lodging, LodgingRow{
			Hotel:    CleanText(acc.Hotel),
			Address:  CleanText(acc.Address),
			CheckIn:  acc.CheckIn,
			CheckOut: acc.CheckOut,
			Status:   acc.Status,
		})
	}

	for _, item := range items {
		doc.Budget = append(doc.Budget, BudgetRow{
			Type:     item.Type,
			Item:     CleanText(item.Item),
			Amount:   money.FormatDisplay(item.Amount),
			Currency: item.Currency,
			Status:   item.Status,
		})
	}

	if summary != nil {
		doc.Summary = SummarySection{
			TWDTotal:     money.FormatDisplay(summary.TWDTotal),
			THBTotal:     money.FormatDisplay(summary.THBTotal),
			ExchangeRate: summary.ExchangeRate,
			FinalTotal:   summary.FinalTotal,
			Note:         CleanText(summary.Note),
		}
	}

	if info != nil {
		doc.TravelInfo = &models.TravelInfo{
			PlanID:    info.PlanID,
			CashNotes: CleanText(info.CashNotes),
			CardNotes: CleanText(info.CardNotes),
			Notices:   CleanText(info.Notices),
			UpdatedAt: info.UpdatedAt,
		}
	}

	return doc
}
