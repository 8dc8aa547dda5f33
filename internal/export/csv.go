package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/StickCut/internal/model"
)

// WriteCSV writes a CSV summary of the optimization result: overall
// statistics, stock usage by type, the full cut list, and any unassigned
// parts.
func WriteCSV(w io.Writer, result model.OptimizationResult) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"OVERALL STATISTICS"},
		{"Metric", "Value"},
		{"Total Sticks Used", fmt.Sprintf("%d", result.Summary.TotalSticks)},
		{"Total Parts Cut", fmt.Sprintf("%d", result.Summary.TotalPartsCut)},
		{"Total Cuts", fmt.Sprintf("%d", result.Summary.TotalCuts)},
		{"Overall Utilization", fmt.Sprintf("%.2f%%", result.Summary.OverallUtilization)},
		{"Total Waste (mm3)", fmt.Sprintf("%.2f", result.Summary.TotalWaste)},
		{"Total Cost", fmt.Sprintf("%.2f", result.Summary.TotalCost)},
		{"Computation Time", result.Summary.ComputationTime.String()},
		{"Success", yesNo(result.Summary.Success)},
		{},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	// Stock usage grouped by stock row, insertion order preserved.
	if err := cw.Write([]string{"STOCK USAGE BY TYPE"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Stock Name", "Dimensions (mm)", "Quantity Used", "Cost per Unit", "Total Cost"}); err != nil {
		return err
	}
	type usage struct {
		plan  model.CuttingPlan
		count int
	}
	var order []string
	byStock := map[string]*usage{}
	for _, plan := range result.Plans {
		if plan.FromOffcut {
			continue
		}
		u, ok := byStock[plan.StockID]
		if !ok {
			u = &usage{plan: plan}
			byStock[plan.StockID] = u
			order = append(order, plan.StockID)
		}
		u.count++
	}
	for _, id := range order {
		u := byStock[id]
		if err := cw.Write([]string{
			u.plan.StockName,
			fmt.Sprintf("%.0fx%.0fx%.0f", u.plan.Length, u.plan.Width, u.plan.Thickness),
			fmt.Sprintf("%d", u.count),
			fmt.Sprintf("%.2f", u.plan.CostPerUnit),
			fmt.Sprintf("%.2f", u.plan.CostPerUnit*float64(u.count)),
		}); err != nil {
			return err
		}
	}
	if err := cw.Write(nil); err != nil {
		return err
	}

	// Full cut list.
	if err := cw.Write([]string{"CUT LIST"}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Stick", "Stock", "Part", "X (mm)", "Y (mm)", "Z (mm)", "Length", "Width", "Thickness", "Orientation"}); err != nil {
		return err
	}
	for i, plan := range result.Plans {
		for _, c := range plan.Cuts {
			if err := cw.Write([]string{
				fmt.Sprintf("%d", i+1),
				plan.StockName,
				c.PartName,
				fmt.Sprintf("%.1f", c.X),
				fmt.Sprintf("%.1f", c.Y),
				fmt.Sprintf("%.1f", c.Z),
				fmt.Sprintf("%.1f", c.Length),
				fmt.Sprintf("%.1f", c.Width),
				fmt.Sprintf("%.1f", c.Thickness),
				c.Orientation.String(),
			}); err != nil {
				return err
			}
		}
	}

	if len(result.Unassigned) > 0 {
		if err := cw.Write(nil); err != nil {
			return err
		}
		if err := cw.Write([]string{"UNASSIGNED PARTS"}); err != nil {
			return err
		}
		if err := cw.Write([]string{"Part", "Quantity", "Reason"}); err != nil {
			return err
		}
		for _, u := range result.Unassigned {
			if err := cw.Write([]string{u.PartName, fmt.Sprintf("%d", u.Quantity), string(u.Reason)}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the CSV summary to a file.
func ExportCSV(path string, result model.OptimizationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteCSV(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return f.Close()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
