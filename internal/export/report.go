package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/StickCut/internal/model"
)

// WriteReport writes a plain-text cutting instruction report. The report
// lists each stick with its cuts in placement order, the offcuts to set
// aside, and a closing summary. It is meant to be printed and taken to
// the saw.
func WriteReport(w io.Writer, result model.OptimizationResult, params model.CuttingParameters) error {
	bw := &errWriter{w: w}

	bw.printf("STICKCUT CUTTING PLAN\n")
	bw.printf("%s\n\n", strings.Repeat("=", 60))
	bw.printf("Kerf: %.1f mm | Tolerance: %.1f mm | Min offcut: %.1f mm\n\n",
		params.Kerf, params.Tolerance, params.MinOffcut)

	for i, plan := range result.Plans {
		bw.printf("Stick %d: %s (%.0f x %.0f x %.0f mm)", i+1, plan.StockName, plan.Length, plan.Width, plan.Thickness)
		if plan.FromOffcut {
			bw.printf("  [reused offcut from %s]", plan.SourceStick)
		}
		bw.printf("\n%s\n", strings.Repeat("-", 60))

		for j, c := range plan.Cuts {
			bw.printf("  %2d. %s: %.1f x %.1f x %.1f mm at %.1f mm along the length",
				j+1, c.PartName, c.Length, c.Width, c.Thickness, c.X)
			if c.Y > 0 || c.Z > 0 {
				bw.printf(" (offset %.1f / %.1f)", c.Y, c.Z)
			}
			if c.Orientation != model.OrientIdentity {
				bw.printf(" [rotated: %s]", c.Orientation)
			}
			if c.Thickness < c.NominalThickness {
				bw.printf(" [plane to %.1f mm]", c.Thickness)
			}
			bw.printf("\n")
		}

		for _, o := range plan.Offcuts {
			if o.Status == model.OffcutReusable {
				bw.printf("  >> Set aside offcut: %.1f x %.1f x %.1f mm\n", o.Length, o.Width, o.Thickness)
			}
		}

		bw.printf("  Cuts: %d | Utilization: %.1f%% | Waste: %.0f mm3\n\n",
			plan.TotalCuts, plan.Utilization, plan.WasteVolume)
	}

	if len(result.Unassigned) > 0 {
		bw.printf("UNASSIGNED PARTS\n%s\n", strings.Repeat("-", 60))
		for _, u := range result.Unassigned {
			bw.printf("  %s: %d unit(s), %s\n", u.PartName, u.Quantity, u.Reason)
		}
		bw.printf("\n")
	}

	bw.printf("SUMMARY\n%s\n", strings.Repeat("-", 60))
	bw.printf("Sticks used:         %d\n", result.Summary.TotalSticks)
	bw.printf("Parts cut:           %d\n", result.Summary.TotalPartsCut)
	bw.printf("Total cuts:          %d\n", result.Summary.TotalCuts)
	bw.printf("Overall utilization: %.1f%%\n", result.Summary.OverallUtilization)
	bw.printf("Total waste:         %.0f mm3\n", result.Summary.TotalWaste)
	bw.printf("Total cost:          %.2f\n", result.Summary.TotalCost)

	return bw.err
}

// ExportReport writes the plain-text report to a file.
func ExportReport(path string, result model.OptimizationResult, params model.CuttingParameters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteReport(f, result, params); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

// errWriter wraps an io.Writer and remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
