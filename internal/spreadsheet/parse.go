// Package spreadsheet handles Excel import and export of line item sets.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hsinyu/travelplan/internal/models"
	"github.com/hsinyu/travelplan/internal/service"
)

// Budget sheets are header-mapped so an exported workbook round-trips.
// Trip item and accommodation sheets are positional import formats.

var budgetColumnNames = []string{"type", "item", "amount", "currency", "status", "note"}

// ParseBudgetSheet reads budget rows from the first sheet of an xlsx file.
// Columns are matched by header name, case-insensitively. Missing cells
// default to empty string; type defaults to fixed.
func ParseBudgetSheet(r io.Reader) ([]service.BudgetItemInput, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	cols := make(map[string]int, len(budgetColumnNames))
	for _, name := range budgetColumnNames {
		cols[name] = -1
	}
	for i, header := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(header))
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}
	if cols["item"] == -1 {
		return nil, fmt.Errorf("sheet has no item column")
	}

	var items []service.BudgetItemInput
	for _, row := range rows[1:] {
		// The item table ends at the first blank row; the summary block an
		// export writes below it is not re-imported.
		if rowEmpty(row) {
			break
		}
		items = append(items, service.BudgetItemInput{
			Type:     defaultCell(cell(row, cols["type"]), models.BudgetTypeFixed),
			Item:     cell(row, cols["item"]),
			Amount:   cell(row, cols["amount"]),
			Currency: cell(row, cols["currency"]),
			Status:   normalizeStatus(cell(row, cols["status"])),
			Note:     cell(row, cols["note"]),
		})
	}
	return items, nil
}

// ParseTripItemSheet reads schedule rows from the first sheet.
// Columns are positional: date, activity, cost, note.
func ParseTripItemSheet(r io.Reader) ([]service.TripItemInput, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}

	var items []service.TripItemInput
	for i, row := range rows {
		if rowEmpty(row) || (i == 0 && looksLikeHeader(cell(row, 0))) {
			continue
		}
		items = append(items, service.TripItemInput{
			Date:     cell(row, 0),
			Activity: cell(row, 1),
			Cost:     cell(row, 2),
			Note:     cell(row, 3),
		})
	}
	return items, nil
}

// ParseAccommodationSheet reads lodging rows from the first sheet.
// Columns are positional: hotel, address, check-in, check-out, status, note.
func ParseAccommodationSheet(r io.Reader) ([]service.AccommodationInput, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}

	var items []service.AccommodationInput
	for i, row := range rows {
		if rowEmpty(row) || (i == 0 && looksLikeHeader(cell(row, 0))) {
			continue
		}
		items = append(items, service.AccommodationInput{
			Hotel:    cell(row, 0),
			Address:  cell(row, 1),
			CheckIn:  cell(row, 2),
			CheckOut: cell(row, 3),
			Status:   normalizeStatus(cell(row, 4)),
			Note:     cell(row, 5),
		})
	}
	return items, nil
}

func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func defaultCell(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func looksLikeHeader(first string) bool {
	switch strings.ToLower(first) {
	case "date", "日期", "hotel", "飯店", "住宿":
		return true
	}
	return false
}

// normalizeStatus maps sheet status spellings onto the stored status set.
// Unknown non-empty values pass through so validation can report them.
func normalizeStatus(s string) string {
	switch strings.ToLower(s) {
	case "":
		return ""
	case "paid", "booked", "已付", "已訂":
		return models.ItemStatusPaid
	case "pending", "未付":
		return models.ItemStatusPending
	case "na", "n/a", "-":
		return models.ItemStatusNA
	default:
		return s
	}
}
