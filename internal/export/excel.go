package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/adquant/adroi/internal/models"
)

const reportSheet = "RevenueCost"

// WriteRevenueCostXLSX writes the final metric table as a single-sheet
// workbook for analysts who live in spreadsheets.
func WriteRevenueCostXLSX(path string, rows []models.RevenueCostRow) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", reportSheet)

	for i, h := range revenueCostHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for n, r := range rows {
		values := []interface{}{
			r.Key, r.Channel, r.Campaign, r.Creative,
			r.Installs, r.CampaignInstalls, r.Users,
			r.Revenue, r.Cost, r.Clicks, r.AdjustedCost,
			r.DailyROI, r.AnnualROI, nil, r.Imputed,
		}
		if r.DaysToPayoff != nil {
			values[13] = *r.DaysToPayoff
		}
		for i, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, n+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", n+1, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
