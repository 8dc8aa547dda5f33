package export

import (
	"fmt"

	"github.com/piwi3910/StickCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	sheetSummary    = "Summary"
	sheetSticks     = "Sticks"
	sheetCutList    = "Cut List"
	sheetOffcuts    = "Offcuts"
	sheetUnassigned = "Unassigned"
)

// ExportXLSX writes the optimization result as an Excel workbook with
// separate sheets for the summary, the per-stick breakdown, the full cut
// list, captured offcuts, and unassigned parts.
func ExportXLSX(path string, result model.OptimizationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result); err != nil {
		return err
	}
	if err := writeSticksSheet(f, result); err != nil {
		return err
	}
	if err := writeCutListSheet(f, result); err != nil {
		return err
	}
	if err := writeOffcutsSheet(f, result); err != nil {
		return err
	}
	if len(result.Unassigned) > 0 {
		if err := writeUnassignedSheet(f, result); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result model.OptimizationResult) error {
	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Sticks Used", result.Summary.TotalSticks},
		{"Total Parts Cut", result.Summary.TotalPartsCut},
		{"Total Cuts", result.Summary.TotalCuts},
		{"Overall Utilization (%)", result.Summary.OverallUtilization},
		{"Total Waste (mm3)", result.Summary.TotalWaste},
		{"Total Cost", result.Summary.TotalCost},
		{"Computation Time", result.Summary.ComputationTime.String()},
		{"Success", result.Summary.Success},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeSticksSheet(f *excelize.File, result model.OptimizationResult) error {
	if _, err := f.NewSheet(sheetSticks); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Stick", "Stick ID", "Stock", "Length (mm)", "Width (mm)", "Thickness (mm)", "Material", "From Offcut", "Parts", "Cuts", "Utilization (%)", "Waste (mm3)", "Cost"},
	}
	for i, plan := range result.Plans {
		cost := plan.CostPerUnit
		if plan.FromOffcut {
			cost = 0
		}
		rows = append(rows, []interface{}{
			i + 1, plan.StickID, plan.StockName,
			plan.Length, plan.Width, plan.Thickness,
			plan.Material, plan.FromOffcut,
			len(plan.Cuts), plan.TotalCuts,
			plan.Utilization, plan.WasteVolume, cost,
		})
	}
	return writeRows(f, sheetSticks, rows)
}

func writeCutListSheet(f *excelize.File, result model.OptimizationResult) error {
	if _, err := f.NewSheet(sheetCutList); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Stick", "Part", "X (mm)", "Y (mm)", "Z (mm)", "Length (mm)", "Width (mm)", "Thickness (mm)", "Nominal L", "Nominal W", "Nominal T", "Orientation"},
	}
	for i, plan := range result.Plans {
		for _, c := range plan.Cuts {
			rows = append(rows, []interface{}{
				i + 1, c.PartName,
				c.X, c.Y, c.Z,
				c.Length, c.Width, c.Thickness,
				c.NominalLength, c.NominalWidth, c.NominalThickness,
				c.Orientation.String(),
			})
		}
	}
	return writeRows(f, sheetCutList, rows)
}

func writeOffcutsSheet(f *excelize.File, result model.OptimizationResult) error {
	if _, err := f.NewSheet(sheetOffcuts); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Stick", "X (mm)", "Y (mm)", "Z (mm)", "Length (mm)", "Width (mm)", "Thickness (mm)", "Volume (mm3)", "Status"},
	}
	for i, plan := range result.Plans {
		for _, o := range plan.Offcuts {
			rows = append(rows, []interface{}{
				i + 1, o.X, o.Y, o.Z,
				o.Length, o.Width, o.Thickness,
				o.Volume(), string(o.Status),
			})
		}
	}
	return writeRows(f, sheetOffcuts, rows)
}

func writeUnassignedSheet(f *excelize.File, result model.OptimizationResult) error {
	if _, err := f.NewSheet(sheetUnassigned); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Part", "Part ID", "Quantity", "Reason"},
	}
	for _, u := range result.Unassigned {
		rows = append(rows, []interface{}{u.PartName, u.PartID, u.Quantity, string(u.Reason)})
	}
	return writeRows(f, sheetUnassigned, rows)
}

// writeRows writes rows starting at A1, one slice per row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
