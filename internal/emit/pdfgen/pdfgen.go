// Package pdfgen renders a planned resume layout into PDF bytes using
// absolute coordinate placement on fixed-size A4 pages.
package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-exporter/internal/layout"
)

const (
	fontFamily   = "Helvetica"
	nameFontSize = 24

	brandImageName = "brand-mark"
	brandImageSize = 10
)

// creationDate is pinned so identical input yields byte-identical output;
// preview and download calls must match.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// measurer adapts gofpdf font metrics to the layout planner.
type measurer struct {
	pdf *gofpdf.Fpdf
}

func (m measurer) LineCount(text string, width float64) int {
	m.pdf.SetFont(fontFamily, "", 10)
	return len(m.pdf.SplitText(text, width))
}

func (m measurer) LabelWidth(label string, bold bool) float64 {
	style := ""
	if bold {
		style = "B"
	}
	m.pdf.SetFont(fontFamily, style, 10)
	return m.pdf.GetStringWidth(label)
}

// Render produces the PDF for a resolved document tree. brand is the PNG
// brand mark embedded on the page-1 banner.
func Render(doc *layout.Document, brand []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(creationDate)
	pdf.SetAutoPageBreak(false, 0)

	if len(brand) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(brandImageName, opts, bytes.NewReader(brand))
	}

	geo := layout.DefaultGeometry()
	plan := layout.PlanPages(doc, geo, measurer{pdf: pdf})

	banded := make(map[int]bool, len(plan.SidebarPages))
	for _, page := range plan.SidebarPages {
		banded[page] = true
	}

	for page := 1; page <= plan.PageCount; page++ {
		pdf.AddPage()
		if page == 1 {
			drawBanner(pdf, geo, doc.Name, len(brand) > 0)
		}
		if banded[page] {
			drawSidebarBand(pdf, geo, page)
		}
	}

	for _, pl := range plan.Placements {
		pdf.SetPage(pl.Page)
		drawPlacement(pdf, pl)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf generation failed: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBanner paints the page-1 header band: black background, brand mark on
// the left, candidate name centered.
func drawBanner(pdf *gofpdf.Fpdf, geo layout.Geometry, name string, withBrand bool) {
	fill := layout.HeaderFill
	pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
	pdf.Rect(0, 0, geo.PageWidth, geo.HeaderHeight, "F")

	if withBrand {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		y := geo.HeaderHeight/2 - brandImageSize/2
		pdf.ImageOptions(brandImageName, 7, y, brandImageSize, brandImageSize, false, opts, 0, "")
	}

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFamily, "B", nameFontSize)
	pdf.SetXY(0, 0)
	pdf.CellFormat(geo.PageWidth, geo.HeaderHeight, name, "", 0, "CM", false, 0, "")
}

func drawSidebarBand(pdf *gofpdf.Fpdf, geo layout.Geometry, page int) {
	fill := layout.SidebarFill
	pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
	pdf.Rect(geo.Margin, geo.SidebarBandTop(page), geo.SidebarBandWidth(), geo.SidebarBandHeight(page), "F")
}

func drawPlacement(pdf *gofpdf.Fpdf, pl layout.Placement) {
	fg := pl.Unit.FG
	pdf.SetTextColor(int(fg.R), int(fg.G), int(fg.B))

	if pl.Heading || pl.Unit.Kind == layout.UnitSubheading {
		pdf.SetFont(fontFamily, "B", pl.FontSize)
		pdf.Text(pl.X, pl.Y, pl.Unit.Text)
		return
	}

	// Square bullet glyph.
	pdf.SetFillColor(int(fg.R), int(fg.G), int(fg.B))
	pdf.Rect(pl.X, pl.Y-pl.GlyphDY, 1, 1, "F")

	textX := pl.TextX
	if pl.Unit.Label != "" {
		labelStyle := ""
		if pl.Unit.LabelBold {
			labelStyle = "B"
		}
		pdf.SetFont(fontFamily, labelStyle, pl.FontSize)
		pdf.Text(textX, pl.Y, pl.Unit.Label)
		textX += pdf.GetStringWidth(pl.Unit.Label)
	}

	valueStyle := ""
	if pl.Unit.TextBold {
		valueStyle = "B"
	}
	pdf.SetFont(fontFamily, valueStyle, pl.FontSize)

	if pl.WrapWidth <= 0 {
		pdf.Text(textX, pl.Y, pl.Unit.Text)
		return
	}

	lines := pdf.SplitText(pl.Unit.Text, pl.WrapWidth)
	for i, line := range lines {
		pdf.Text(textX, pl.Y+float64(i)*pl.LineSpacing, line)
	}
}
