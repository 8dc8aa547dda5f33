// Package export provides functionality for exporting cutting plans
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StickCut/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the cutting plans. Each stick
// is rendered on its own page as a top-down length-by-width diagram, followed
// by a summary page with overall statistics.
func ExportPDF(path string, result model.OptimizationResult, params model.CuttingParameters) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, plan := range result.Plans {
		pdf.AddPage()
		renderStickPage(pdf, plan, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, params)

	return pdf.OutputFileAndClose(path)
}

// renderStickPage draws a single stick plan on the current PDF page.
func renderStickPage(pdf *fpdf.Fpdf, plan model.CuttingPlan, stickNum int) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Stick %d: %s (%.0f x %.0f x %.0f mm)", stickNum, plan.StockName, plan.Length, plan.Width, plan.Thickness)
	if plan.FromOffcut {
		title += " [offcut]"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Cuts: %d | Used: %.0f mm³ | Utilization: %.1f%% | Waste: %.0f mm³",
		len(plan.Cuts), plan.TotalCuts, plan.UsedVolume(), plan.Utilization, plan.WasteVolume)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Scale the length-by-width face of the stick to fit the drawing area.
	scaleX := drawWidth / plan.Length
	scaleY := drawHeight / plan.Width
	scale := math.Min(scaleX, scaleY)

	canvasW := plan.Length * scale
	canvasH := plan.Width * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stick background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Placed parts
	for i, c := range plan.Cuts {
		col := partColors[i%len(partColors)]
		pl := c.Length * scale
		pw := c.Width * scale
		px := offsetX + c.X*scale
		py := offsetY + c.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pl, pw, "FD")

		if pl > 15 && pw > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pl, pw))
			pdf.SetTextColor(0, 0, 0)

			label := c.PartName
			dims := fmt.Sprintf("%.0fx%.0fx%.0f", c.Length, c.Width, c.Thickness)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pl-2 {
				pdf.SetXY(px+(pl-labelW)/2, py+pw/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if pw > 14 && dimsW < pl-2 {
				pdf.SetXY(px+(pl-dimsW)/2, py+pw/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Reusable offcuts shown hatched so the operator knows to set them aside.
	for _, o := range plan.Offcuts {
		if o.Status != model.OffcutReusable {
			continue
		}
		ox := offsetX + o.X*scale
		oy := offsetY + o.Y*scale
		ol := o.Length * scale
		ow := o.Width * scale

		pdf.SetFillColor(220, 235, 220)
		pdf.SetDrawColor(0, 130, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ox, oy, ol, ow, "FD")
		drawHatchPattern(pdf, ox, oy, ol, ow)

		if ol > 20 && ow > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(0, 110, 0)
			labelW := pdf.GetStringWidth("OFFCUT")
			pdf.SetXY(ox+(ol-labelW)/2, oy+ow/2-2)
			pdf.CellFormat(labelW, 4, "OFFCUT", "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawDimensionAnnotations(pdf, plan, scale, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, plan, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark offcut zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(0, 130, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds length and width dimension labels outside the stick rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, plan model.CuttingPlan, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Length annotation (below the stick)
	lengthLabel := fmt.Sprintf("%.0f mm", plan.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	// Width annotation (to the left of the stick, rotated)
	widthLabel := fmt.Sprintf("%.0f mm", plan.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts at the bottom of the page.
func drawPartsLegend(pdf *fpdf.Fpdf, plan model.CuttingPlan, startY float64) {
	if len(plan.Cuts) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, c := range plan.Cuts {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%.0fx%.0fx%.0f)", c.PartName, c.Length, c.Width, c.Thickness)
		if c.Orientation != model.OrientIdentity {
			label += " " + c.Orientation.String()
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult, params model.CuttingParameters) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Sticks Used", fmt.Sprintf("%d", result.Summary.TotalSticks)},
		{"Total Parts Cut", fmt.Sprintf("%d", result.Summary.TotalPartsCut)},
		{"Total Cuts", fmt.Sprintf("%d", result.Summary.TotalCuts)},
		{"Overall Utilization", fmt.Sprintf("%.1f%%", result.Summary.OverallUtilization)},
		{"Total Waste", fmt.Sprintf("%.0f mm³", result.Summary.TotalWaste)},
		{"Total Cost", fmt.Sprintf("%.2f", result.Summary.TotalCost)},
		{"Unassigned Units", fmt.Sprintf("%d", countUnassigned(result))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-stick breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stick Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 55, 30, 35, 35}
	headers := []string{"Stick", "Stock", "Dimensions", "Parts", "Cuts", "Utilization"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, plan := range result.Plans {
		xPos = marginLeft
		name := plan.StockName
		if plan.FromOffcut {
			name += " (offcut)"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			name,
			fmt.Sprintf("%.0f x %.0f x %.0f mm", plan.Length, plan.Width, plan.Thickness),
			fmt.Sprintf("%d", len(plan.Cuts)),
			fmt.Sprintf("%d", plan.TotalCuts),
			fmt.Sprintf("%.1f%%", plan.Utilization),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6

		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
	}

	// Unassigned parts warning
	if len(result.Unassigned) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unassigned Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, u := range result.Unassigned {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %d unit(s), %s", u.PartName, u.Quantity, u.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Cutting parameters summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cutting Parameters", "", 0, "L", false, 0, "")
	y += 9

	paramItems := []struct {
		label string
		value string
	}{
		{"Kerf", fmt.Sprintf("%.1f mm", params.Kerf)},
		{"Min Offcut", fmt.Sprintf("%.1f mm", params.MinOffcut)},
		{"Tolerance", fmt.Sprintf("%.1f mm", params.Tolerance)},
		{"Priority", string(params.Priority)},
		{"Grain Enforced", fmt.Sprintf("%t", params.EnforceGrain)},
		{"Resaw Allowed", fmt.Sprintf("%t", params.AllowResaw)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range paramItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StickCut - Lumber Cut List Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countUnassigned returns the total number of unassigned part units.
func countUnassigned(result model.OptimizationResult) int {
	total := 0
	for _, u := range result.Unassigned {
		total += u.Quantity
	}
	return total
}
