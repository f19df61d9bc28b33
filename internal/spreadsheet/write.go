package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hsinyu/travelplan/internal/models"
)

const budgetSheetName = "Budget"

var budgetHeaders = []string{"Type", "Item", "Amount", "Currency", "Status", "Note"}

// WriteBudgetWorkbook renders a plan's budget as an xlsx workbook whose
// header row round-trips through ParseBudgetSheet. The summary block sits
// below the items, separated by a blank row.
func WriteBudgetWorkbook(items []*models.BudgetItem, summary *models.BudgetSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(budgetSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	for i, header := range budgetHeaders {
		setCell(f, i+1, 1, header)
	}

	row := 2
	for _, item := range items {
		setCell(f, 1, row, item.Type)
		setCell(f, 2, row, item.Item)
		setCell(f, 3, row, item.Amount)
		setCell(f, 4, row, item.Currency)
		setCell(f, 5, row, item.Status)
		setCell(f, 6, row, item.Note)
		row++
	}

	if summary != nil {
		row++
		summaryRows := [][2]string{
			{"TWD Total", summary.TWDTotal},
			{"THB Total", summary.THBTotal},
			{"Exchange Rate", summary.ExchangeRate},
			{"Final Total", summary.FinalTotal},
			{"Summary Note", summary.Note},
		}
		for _, sr := range summaryRows {
			setCell(f, 1, row, sr[0])
			setCell(f, 2, row, sr[1])
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func setCell(f *excelize.File, col, row int, value string) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = f.SetCellValue(budgetSheetName, name, value)
}
