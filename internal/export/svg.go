package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/StickCut/internal/model"
)

// svgFills is a flat hex palette matching the PDF part colors.
var svgFills = []string{
	"#4caf50", "#2196f3", "#ff9800", "#9c27b0",
	"#00bcd4", "#f44336", "#ffeb3b", "#795548",
}

// RenderStickSVG renders a top-down length-by-width diagram of one stick as
// an SVG fragment. pxPerMM controls the drawing scale.
func RenderStickSVG(plan model.CuttingPlan, pxPerMM float64) string {
	l := plan.Length * pxPerMM
	w := plan.Width * pxPerMM

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.1f" height="%.1f" viewBox="0 0 %.1f %.1f">`+"\n", l, w, l, w)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="#f5f5f5" stroke="#999"/>`+"\n", l, w)
	fmt.Fprintf(&b, `<text x="5" y="15" font-size="12" fill="#333">%s #%d</text>`+"\n", escapeXML(plan.StockName), plan.StickIndex)

	for i, c := range plan.Cuts {
		x := c.X * pxPerMM
		y := c.Y * pxPerMM
		cl := c.Length * pxPerMM
		cw := c.Width * pxPerMM
		fill := svgFills[i%len(svgFills)]
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" opacity="0.8" stroke="#222"/>`+"\n", x, y, cl, cw, fill)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" fill="#000">%s</text>`+"\n", x+2, y+12, escapeXML(c.PartName))
	}

	for _, o := range plan.Offcuts {
		if o.Status != model.OffcutReusable {
			continue
		}
		x := o.X * pxPerMM
		y := o.Y * pxPerMM
		ol := o.Length * pxPerMM
		ow := o.Width * pxPerMM
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#dcebdc" stroke="#082" stroke-dasharray="4 2"/>`+"\n", x, y, ol, ow)
	}

	b.WriteString("</svg>")
	return b.String()
}

// RenderCompositeSVG stacks all stick diagrams vertically into one SVG.
func RenderCompositeSVG(plans []model.CuttingPlan, pxPerMM float64, gapPx float64) string {
	if len(plans) == 0 {
		return `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40"></svg>`
	}

	var maxW, totalH float64
	for _, p := range plans {
		if l := p.Length * pxPerMM; l > maxW {
			maxW = l
		}
		totalH += p.Width * pxPerMM
	}
	totalW := maxW + 40
	totalH += gapPx*float64(len(plans)-1) + 40

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f">`+"\n", totalW, totalH)

	yCursor := 20.0
	for _, plan := range plans {
		sub := RenderStickSVG(plan, pxPerMM)
		sub = strings.Replace(sub, "<svg", "<g", 1)
		sub = strings.Replace(sub, "</svg>", "</g>", 1)
		fmt.Fprintf(&b, `<g transform="translate(20,%.1f)">`+"\n", yCursor)
		b.WriteString(sub)
		b.WriteString("\n</g>\n")
		yCursor += plan.Width*pxPerMM + gapPx
	}

	b.WriteString("</svg>")
	return b.String()
}

// ExportSVG writes a composite SVG of all cutting plans to a file.
func ExportSVG(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}
	svg := RenderCompositeSVG(result.Plans, 0.3, 20)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
