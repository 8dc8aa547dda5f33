package export

import (
	"fmt"

	"github.com/piwi3910/StickCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// Gap between stacked stick outlines in the DXF drawing, in mm.
const dxfStickGap = 50.0

// ExportDXF writes a 2D DXF drawing of all cutting plans. Each stick is drawn
// as its length-by-width face, stacked vertically, with stick outlines, part
// rectangles, and reusable offcuts on separate layers.
func ExportDXF(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	d := dxf.NewDrawing()
	d.AddLayer("STICKS", dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer("PARTS", color.Green, table.LT_CONTINUOUS, false)
	d.AddLayer("OFFCUTS", color.Cyan, table.LT_CONTINUOUS, false)
	d.AddLayer("LABELS", color.Yellow, table.LT_CONTINUOUS, false)

	yOffset := 0.0
	for i, plan := range result.Plans {
		if err := drawStick(d, plan, i+1, yOffset); err != nil {
			return err
		}
		yOffset += plan.Width + dxfStickGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF file: %w", err)
	}
	return nil
}

// drawStick draws one stick's outline, cuts, and offcuts at the given
// vertical offset.
func drawStick(d *drawing.Drawing, plan model.CuttingPlan, stickNum int, yOffset float64) error {
	if err := d.ChangeLayer("STICKS"); err != nil {
		return err
	}
	if err := drawRect(d, 0, yOffset, plan.Length, plan.Width); err != nil {
		return err
	}

	if err := d.ChangeLayer("LABELS"); err != nil {
		return err
	}
	title := fmt.Sprintf("%d: %s", stickNum, plan.StockName)
	if _, err := d.Text(title, 2, yOffset+plan.Width+3, 0, 8); err != nil {
		return err
	}

	if err := d.ChangeLayer("PARTS"); err != nil {
		return err
	}
	for _, c := range plan.Cuts {
		if err := drawRect(d, c.X, yOffset+c.Y, c.Length, c.Width); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer("LABELS"); err != nil {
		return err
	}
	for _, c := range plan.Cuts {
		if _, err := d.Text(c.PartName, c.X+2, yOffset+c.Y+2, 0, 5); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer("OFFCUTS"); err != nil {
		return err
	}
	for _, o := range plan.Offcuts {
		if o.Status != model.OffcutReusable {
			continue
		}
		if err := drawRect(d, o.X, yOffset+o.Y, o.Length, o.Width); err != nil {
			return err
		}
	}

	return nil
}

// drawRect draws an axis-aligned rectangle as a closed polyline.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	_, err := d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
	return err
}
