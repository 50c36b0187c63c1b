// Package docxgen renders a resolved resume layout as a flow document: an
// OOXML package built from styled paragraphs and tables rather than absolute
// coordinates.
package docxgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"baliance.com/gooxml"
	"baliance.com/gooxml/color"
	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/ofc/sharedTypes"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/jonathan/resume-exporter/internal/layout"
)

const (
	fontFamily = "Helvetica"

	// Half-point sizes matching the PDF backend's 22/14/10pt.
	nameSize    = 22 * measurement.Point
	headingSize = 14 * measurement.Point
	bodySize    = 10 * measurement.Point

	// Line spacing in twentieths of a point; summary bullets are looser
	// than skill, certification and detail bullets.
	tightLine   = 276
	summaryLine = 280

	// A4 portrait in twips.
	pageWidthTwips  = 11906
	pageHeightTwips = 16838

	bulletGlyph = "▪"
)

// stamp pins the package core properties so repeated exports of the same
// record produce identical bytes.
var stamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func rgb(c layout.RGB) color.Color {
	return color.RGB(c.R, c.G, c.B)
}

// bulletOptions styles one bullet paragraph.
type bulletOptions struct {
	glyphColor color.Color
	textColor  color.Color
	label      string
	labelBold  bool
	value      string
	valueBold  bool
	line       int64
	justified  bool
}

// Render produces the DOCX package for a resolved document tree. brand is
// the PNG brand mark embedded in the banner table.
func Render(doc *layout.Document, brand []byte) ([]byte, error) {
	d := document.New()
	d.CoreProperties.SetCreated(stamp)
	d.CoreProperties.SetModified(stamp)

	// The image part is read from disk at save time, so the brand mark
	// stays on disk until the package is serialized.
	brandPath, cleanup, err := stageBrand(brand)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := addBannerTable(d, doc.Name, brandPath); err != nil {
		return nil, err
	}
	addColumnsTable(d, doc)

	// The two-column region ends here; detail content flows as plain
	// paragraphs in its own page-break-delimited section.
	breakPara := d.AddParagraph()
	breakSect := a4Section(0, 0, 0, 0)
	breakSect.Type = wml.NewCT_SectType()
	breakSect.Type.ValAttr = wml.ST_SectionMarkNextPage
	breakPara.Properties().X().SectPr = breakSect

	addDetail(d, doc.Detail)

	d.X().Body.SectPr = a4Section(1000, 2400, 1000, 1200)

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, fmt.Errorf("docx generation failed: %w", err)
	}
	return normalizeArchive(buf.Bytes())
}

// stageBrand writes the brand mark to a temporary file for the image loader.
// The cleanup func removes it; with no brand it is a no-op.
func stageBrand(brand []byte) (string, func(), error) {
	if len(brand) == 0 {
		return "", func() {}, nil
	}

	tmp, err := os.CreateTemp("", "brandmark-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("docx generation failed: %w", err)
	}
	if _, err := tmp.Write(brand); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("docx generation failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("docx generation failed: %w", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// addBannerTable builds the borderless black header row: brand mark cell,
// centered name cell, and a spacer cell for balance.
func addBannerTable(d *document.Document, name, brandPath string) error {
	table := d.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderNone, color.Auto, 0)

	row := table.AddRow()
	row.Properties().SetHeight(2000*measurement.Twips, wml.ST_HeightRuleExact)

	logoCell := row.AddCell()
	logoCell.Properties().SetWidthPercent(20)
	logoCell.Properties().SetShading(wml.ST_ShdSolid, color.Black, color.Auto)
	logoCell.Properties().SetVerticalAlignment(wml.ST_VerticalJcCenter)
	logoPara := logoCell.AddParagraph()
	logoPara.Properties().SetAlignment(wml.ST_JcLeft)
	if brandPath != "" {
		img, err := common.ImageFromFile(brandPath)
		if err != nil {
			return fmt.Errorf("docx generation failed: invalid brand image: %w", err)
		}
		ref, err := d.AddImage(img)
		if err != nil {
			return fmt.Errorf("docx generation failed: %w", err)
		}
		inline, err := logoPara.AddRun().AddDrawingInline(ref)
		if err != nil {
			return fmt.Errorf("docx generation failed: %w", err)
		}
		inline.SetSize(40*measurement.Pixel96, 40*measurement.Pixel96)
	}

	nameCell := row.AddCell()
	nameCell.Properties().SetWidthPercent(60)
	nameCell.Properties().SetShading(wml.ST_ShdSolid, color.Black, color.Auto)
	nameCell.Properties().SetVerticalAlignment(wml.ST_VerticalJcCenter)
	namePara := nameCell.AddParagraph()
	namePara.Properties().SetAlignment(wml.ST_JcCenter)
	nameRun := namePara.AddRun()
	nameRun.AddText(name)
	nameRun.Properties().SetBold(true)
	nameRun.Properties().SetColor(color.White)
	nameRun.Properties().SetSize(nameSize)
	nameRun.Properties().SetFontFamily(fontFamily)

	spacerCell := row.AddCell()
	spacerCell.Properties().SetWidthPercent(20)
	spacerCell.Properties().SetShading(wml.ST_ShdSolid, color.Black, color.Auto)
	spacerCell.Properties().SetVerticalAlignment(wml.ST_VerticalJcCenter)
	spacerCell.AddParagraph()

	return nil
}

// addColumnsTable builds the full-height two-column region: a teal sidebar
// cell and the main summary cell, separated from the page edge by a spacer
// column.
func addColumnsTable(d *document.Document, doc *layout.Document) {
	table := d.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderNone, color.Auto, 0)

	row := table.AddRow()
	row.Properties().SetHeight(13500*measurement.Twips, wml.ST_HeightRuleAtLeast)

	edgeCell := row.AddCell()
	edgeCell.Properties().SetWidthPercent(8)
	edgeCell.AddParagraph()

	sidebarCell := row.AddCell()
	sidebarCell.Properties().SetWidthPercent(32)
	sidebarCell.Properties().SetShading(wml.ST_ShdSolid, rgb(layout.SidebarFill), color.Auto)
	sidebarCell.Properties().SetVerticalAlignment(wml.ST_VerticalJcTop)
	if len(doc.Sidebar) == 0 {
		sidebarCell.AddParagraph()
	}
	for _, sec := range doc.Sidebar {
		addHeading(sidebarCell.AddParagraph(), sec.Title, color.White)
		for _, u := range sec.Units {
			addBullet(sidebarCell.AddParagraph(), bulletOptions{
				glyphColor: color.White,
				textColor:  color.White,
				value:      u.Text,
				line:       tightLine,
			})
		}
	}

	mainCell := row.AddCell()
	mainCell.Properties().SetWidthPercent(60)
	mainCell.Properties().SetVerticalAlignment(wml.ST_VerticalJcTop)
	if len(doc.Summary) == 0 {
		mainCell.AddParagraph()
	}
	for _, sec := range doc.Summary {
		addHeading(mainCell.AddParagraph(), sec.Title, color.Black)
		for _, u := range sec.Units {
			addBullet(mainCell.AddParagraph(), bulletOptions{
				glyphColor: color.Black,
				textColor:  color.Black,
				value:      u.Text,
				line:       summaryLine,
			})
		}
	}
}

// addDetail renders the fresh-page region: labeled experience bullets and
// education, as ordinary flowing paragraphs.
func addDetail(d *document.Document, sections []layout.Section) {
	for _, sec := range sections {
		addHeading(d.AddParagraph(), sec.Title, color.Black)

		for _, u := range sec.Units {
			switch u.Kind {
			case layout.UnitSpacer:
				d.AddParagraph()
			case layout.UnitSubheading:
				addBullet(d.AddParagraph(), bulletOptions{
					glyphColor: color.White,
					textColor:  color.Black,
					label:      u.Text,
					labelBold:  true,
					line:       tightLine,
					justified:  true,
				})
			default:
				addBullet(d.AddParagraph(), bulletOptions{
					glyphColor: color.Black,
					textColor:  color.Black,
					label:      u.Label,
					labelBold:  u.LabelBold,
					value:      u.Text,
					valueBold:  u.TextBold,
					line:       tightLine,
					justified:  true,
				})
			}
		}
	}
}

func addHeading(para document.Paragraph, title string, c color.Color) {
	setSpacing(para.Properties(), 300, 150, 0)
	run := para.AddRun()
	run.AddText(title)
	run.Properties().SetBold(true)
	run.Properties().SetColor(c)
	run.Properties().SetSize(headingSize)
	run.Properties().SetFontFamily(fontFamily)
}

// addBullet builds one bullet paragraph: glyph run, optional bold label run,
// and value run, hanging-indented so wrapped lines align under the text.
func addBullet(para document.Paragraph, opts bulletOptions) {
	props := para.Properties()
	setSpacing(props, 0, 120, opts.line)
	addBulletTab(props)
	if opts.justified {
		props.SetAlignment(wml.ST_JcBoth)
	}
	setBulletIndent(props)

	glyph := para.AddRun()
	glyph.AddText(bulletGlyph)
	glyph.AddTab()
	glyph.Properties().SetColor(opts.glyphColor)
	glyph.Properties().SetSize(bodySize)
	glyph.Properties().SetFontFamily(fontFamily)

	if opts.label != "" {
		label := para.AddRun()
		label.AddText(opts.label)
		label.Properties().SetBold(opts.labelBold)
		label.Properties().SetColor(opts.textColor)
		label.Properties().SetSize(bodySize)
		label.Properties().SetFontFamily(fontFamily)
	}

	if opts.value != "" {
		value := para.AddRun()
		value.AddText(opts.value)
		value.Properties().SetBold(opts.valueBold)
		value.Properties().SetColor(opts.textColor)
		value.Properties().SetSize(bodySize)
		value.Properties().SetFontFamily(fontFamily)
	}
}

// The helpers below write the raw schema types directly: the wrapper API
// covers neither hanging indents, auto-rule line spacing, tab stops, nor
// per-section page geometry. All distances are twips.

// setSpacing applies before/after paragraph spacing and, when line is
// non-zero, 240-based proportional line spacing.
func setSpacing(props document.ParagraphProperties, before, after, line int64) {
	ppr := props.X()
	if ppr.Spacing == nil {
		ppr.Spacing = wml.NewCT_Spacing()
	}
	if before > 0 {
		ppr.Spacing.BeforeAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(uint64(before))}
	}
	if after > 0 {
		ppr.Spacing.AfterAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(uint64(after))}
	}
	if line > 0 {
		ppr.Spacing.LineAttr = &wml.ST_SignedTwipsMeasure{Int64: gooxml.Int64(line)}
		ppr.Spacing.LineRuleAttr = wml.ST_LineSpacingRuleAuto
	}
}

// addBulletTab adds the left tab stop the glyph run tabs to.
func addBulletTab(props document.ParagraphProperties) {
	ppr := props.X()
	if ppr.Tabs == nil {
		ppr.Tabs = wml.NewCT_Tabs()
	}
	tab := wml.NewCT_TabStop()
	tab.ValAttr = wml.ST_TabJcLeft
	tab.PosAttr = wml.ST_SignedTwipsMeasure{Int64: gooxml.Int64(400)}
	ppr.Tabs.Tab = append(ppr.Tabs.Tab, tab)
}

// setBulletIndent applies the 600/200 twip hanging indent bullets use.
func setBulletIndent(props document.ParagraphProperties) {
	ppr := props.X()
	if ppr.Ind == nil {
		ppr.Ind = wml.NewCT_Ind()
	}
	ppr.Ind.LeftAttr = &wml.ST_SignedTwipsMeasure{Int64: gooxml.Int64(600)}
	ppr.Ind.HangingAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(200)}
}

// a4Section builds section properties for an A4 portrait page with the given
// margins.
func a4Section(top, right, bottom, left int64) *wml.CT_SectPr {
	sect := wml.NewCT_SectPr()

	sect.PgSz = wml.NewCT_PageSz()
	sect.PgSz.WAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(pageWidthTwips)}
	sect.PgSz.HAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(pageHeightTwips)}

	sect.PgMar = wml.NewCT_PageMar()
	sect.PgMar.TopAttr = wml.ST_SignedTwipsMeasure{Int64: gooxml.Int64(top)}
	sect.PgMar.RightAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(uint64(right))}
	sect.PgMar.BottomAttr = wml.ST_SignedTwipsMeasure{Int64: gooxml.Int64(bottom)}
	sect.PgMar.LeftAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(uint64(left))}
	sect.PgMar.HeaderAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(720)}
	sect.PgMar.FooterAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(720)}
	sect.PgMar.GutterAttr = sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: gooxml.Uint64(0)}

	return sect
}

// normalizeArchive rewrites the OOXML package with pinned entry metadata so
// the emitted bytes depend only on the document content.
func normalizeArchive(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx generation failed: %w", err)
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	for _, entry := range reader.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("docx generation failed: %w", err)
		}
		w, err := writer.CreateHeader(&zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: stamp,
		})
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("docx generation failed: %w", err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, fmt.Errorf("docx generation failed: %w", err)
		}
		rc.Close()
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("docx generation failed: %w", err)
	}
	return out.Bytes(), nil
}
