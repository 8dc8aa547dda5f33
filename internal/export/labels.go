package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StickCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartName    string  `json:"name"`
	Length      float64 `json:"length_mm"`
	Width       float64 `json:"width_mm"`
	Thickness   float64 `json:"thickness_mm"`
	StickIndex  int     `json:"stick"`
	StickID     string  `json:"stick_id"`
	StockName   string  `json:"stock_name"`
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x_mm"`
	Y           float64 `json:"y_mm"`
	Z           float64 `json:"z_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed part units.
// Each label contains the part name, dimensions, and a QR code encoding part
// metadata as JSON. Labels are laid out on a standard label sheet format
// (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.OptimizationResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no parts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PartName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Part name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	partName := info.PartName
	if pdf.GetStringWidth(partName) > textW {
		for len(partName) > 0 && pdf.GetStringWidth(partName+"...") > textW {
			partName = partName[:len(partName)-1]
		}
		partName += "..."
	}
	pdf.CellFormat(textW, 4.5, partName, "", 1, "L", false, 0, "")

	// Dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm", info.Length, info.Width, info.Thickness)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Stick and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	stickInfo := fmt.Sprintf("Stick %d @ %.0f mm", info.StickIndex, info.X)
	pdf.CellFormat(textW, 3, stickInfo, "", 1, "L", false, 0, "")

	// Orientation indicator
	if info.Orientation != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated "+info.Orientation, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from an optimization result
// for use in testing or alternative export formats.
func CollectLabelInfos(result model.OptimizationResult) []LabelInfo {
	var labels []LabelInfo
	for stickIdx, plan := range result.Plans {
		for _, c := range plan.Cuts {
			orient := ""
			if c.Orientation != model.OrientIdentity {
				orient = c.Orientation.String()
			}
			labels = append(labels, LabelInfo{
				PartName:    c.PartName,
				Length:      c.Length,
				Width:       c.Width,
				Thickness:   c.Thickness,
				StickIndex:  stickIdx + 1,
				StickID:     plan.StickID,
				StockName:   plan.StockName,
				Orientation: orient,
				X:           c.X,
				Y:           c.Y,
				Z:           c.Z,
			})
		}
	}
	return labels
}
