package layout

// Geometry fixes the page dimensions and margins the flow planner works
// against. All values are in millimetres on an A4 portrait page.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	TopMargin    float64
	BottomMargin float64

	// HeaderHeight is the page-1 banner band; ExtraTop is the additional
	// offset between the banner and the first content line.
	HeaderHeight float64
	ExtraTop     float64
}

// DefaultGeometry returns the A4 geometry used by the PDF backend.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		Margin:       10,
		TopMargin:    20,
		BottomMargin: 20,
		HeaderHeight: 45,
		ExtraTop:     7,
	}
}

// SidebarBandWidth is the width of the colored sidebar band.
func (g Geometry) SidebarBandWidth() float64 { return g.PageWidth * 0.35 }

// SidebarBandTop is the top edge of the sidebar band on the given page; the
// page-1 band starts below the header banner.
func (g Geometry) SidebarBandTop(page int) float64 {
	if page == 1 {
		return g.HeaderHeight + g.ExtraTop
	}
	return g.TopMargin
}

// SidebarBandHeight is the band extent on the given page, spanning from the
// band top to the bottom margin.
func (g Geometry) SidebarBandHeight(page int) float64 {
	return g.PageHeight - g.SidebarBandTop(page) - g.BottomMargin
}

// SidebarTextX is the left edge of sidebar headings.
func (g Geometry) SidebarTextX() float64 { return g.Margin + 7 }

// SidebarTextWidth is the wrap width available to sidebar content.
func (g Geometry) SidebarTextWidth() float64 { return g.PageWidth*0.35 - 20 }

// SummaryX is the left edge of the main summary column.
func (g Geometry) SummaryX() float64 { return g.Margin + g.PageWidth*0.35 + 5 }

// SummaryWidth is the width of the main summary column.
func (g Geometry) SummaryWidth() float64 { return g.PageWidth - g.SummaryX() - g.Margin }

// Detail-region extents: the fresh-page experience/education region uses
// wider margins than the two-column region.
const detailMargin = 6

// DetailX is the left edge of the detail region.
func (g Geometry) DetailX() float64 { return 30 }

// DetailWidth is the usable width of the detail region.
func (g Geometry) DetailWidth() float64 { return g.PageWidth - 2*g.DetailX() }

// firstContentY is where both columns start on page 1, below the banner.
func (g Geometry) firstContentY() float64 { return g.HeaderHeight + 10 + g.ExtraTop }

// contentLimit is the bottom boundary; a cursor strictly past it triggers a
// page break (an exact fit still fits).
func (g Geometry) contentLimit() float64 { return g.PageHeight - g.BottomMargin }

// Per-call-site line spacing constants. Sidebar bullets are tighter than
// summary and detail bullets.
const (
	sidebarLineSpacing    = 4
	mainLineSpacing       = 5
	headingAdvance        = 5
	detailTitleAdvance    = 8
	educationTitleAdvance = 6

	headingFontSize = 14
	bodyFontSize    = 10

	bulletGlyphDY       = 1.5
	detailBulletGlyphDY = 1.8

	// certGuard reserves extra space before each certification bullet.
	certGuard = 10
)

// Measurer supplies the text metrics pagination depends on. The PDF backend
// implements it with real font metrics; tests inject fixed-width fakes so
// break decisions can be verified without a drawing context.
type Measurer interface {
	// LineCount returns the number of lines Text wraps to at the body
	// font size within the given width.
	LineCount(text string, width float64) int
	// LabelWidth returns the rendered width of a bullet label at the
	// body font size.
	LabelWidth(label string, bold bool) float64
}

// Cursor tracks a column's write position: the active page and the vertical
// offset on it. Cursors are values; placing a unit yields a new cursor.
type Cursor struct {
	Page int
	Y    float64
}

func (c Cursor) advanced(dy float64) Cursor {
	c.Y += dy
	return c
}

// Placement is one positioned block in the planned document: a heading,
// sub-heading or bullet pinned to a page and coordinate.
type Placement struct {
	Unit    Unit
	Heading bool

	Page int
	// X is the heading text position, or the bullet glyph position.
	X float64
	// TextX is the bullet text position (glyph X plus the glyph gap).
	TextX float64
	Y     float64

	// WrapWidth is the width the text wraps to; zero means no wrapping.
	WrapWidth float64
	// Lines is the wrapped line count used for the cursor advance.
	Lines       int
	LineSpacing float64
	GlyphDY     float64
	FontSize    float64
}

// Plan is the planner's output: every placement plus the page inventory the
// emitter realizes.
type Plan struct {
	Placements []Placement
	PageCount  int
	// SidebarPages lists the pages whose sidebar band must be painted,
	// in ascending order.
	SidebarPages []int
}

type planner struct {
	g Geometry
	m Measurer

	plan       Plan
	totalPages int
}

// PlanPages lays the document tree onto pages. The sidebar and main columns
// flow independently: each keeps its own cursor and breaks pages on its own,
// sharing physical pages where both columns have content. The detail region
// always starts on a fresh page.
func PlanPages(doc *Document, g Geometry, m Measurer) *Plan {
	p := &planner{g: g, m: m, totalPages: 1}
	p.paintSidebar(1)

	p.planSidebar(doc.Sidebar)
	p.planSummary(doc.Summary)
	p.planDetail(doc.Detail)

	p.plan.PageCount = p.totalPages
	return &p.plan
}

func (p *planner) paintSidebar(page int) {
	p.plan.SidebarPages = append(p.plan.SidebarPages, page)
}

// newSidebarPage appends a fresh page for the sidebar/summary region and
// repaints the band on it.
func (p *planner) newSidebarPage() Cursor {
	p.totalPages++
	p.paintSidebar(p.totalPages)
	return Cursor{Page: p.totalPages, Y: p.g.TopMargin + 10}
}

// newDetailPage appends a fresh page for the detail region; detail pages
// carry no sidebar band.
func (p *planner) newDetailPage() Cursor {
	p.totalPages++
	return Cursor{Page: p.totalPages, Y: p.g.TopMargin}
}

func (p *planner) emit(pl Placement) {
	p.plan.Placements = append(p.plan.Placements, pl)
}

func (p *planner) planSidebar(sections []Section) {
	g := p.g
	cur := Cursor{Page: 1, Y: g.firstContentY()}

	for _, sec := range sections {
		if cur.Y > g.contentLimit() {
			cur = p.newSidebarPage()
		}
		p.emit(Placement{
			Unit:     Unit{Kind: UnitSubheading, Text: sec.Title, TextBold: true, FG: White, BG: SidebarFill},
			Heading:  true,
			Page:     cur.Page,
			X:        g.SidebarTextX(),
			Y:        cur.Y,
			FontSize: headingFontSize,
		})
		cur = cur.advanced(headingAdvance)

		guard := 0.0
		if sec.Kind == SectionCertifications {
			guard = certGuard
		}

		for _, u := range sec.Units {
			if cur.Y > g.contentLimit()-guard {
				cur = p.newSidebarPage()
			}
			wrapWidth := g.SidebarTextWidth() - 5
			lines := p.m.LineCount(u.Text, wrapWidth)
			p.emit(Placement{
				Unit:        u,
				Page:        cur.Page,
				X:           g.SidebarTextX() + 5,
				TextX:       g.SidebarTextX() + 10,
				Y:           cur.Y,
				WrapWidth:   wrapWidth,
				Lines:       lines,
				LineSpacing: sidebarLineSpacing,
				GlyphDY:     bulletGlyphDY,
				FontSize:    bodyFontSize,
			})
			cur = cur.advanced(float64(lines) * sidebarLineSpacing)
		}

		if sec.Kind == SectionSkills {
			cur = cur.advanced(4)
		}
	}
}

// planSummary flows the briefing bullets down the main column starting on
// page 1. Overflow reuses pages the sidebar already created before adding
// new ones, so both columns share page numbers where possible.
func (p *planner) planSummary(sections []Section) {
	g := p.g

	for _, sec := range sections {
		cur := Cursor{Page: 1, Y: g.firstContentY()}
		p.emit(Placement{
			Unit:     Unit{Kind: UnitSubheading, Text: sec.Title, TextBold: true, FG: Black, BG: White},
			Heading:  true,
			Page:     cur.Page,
			X:        g.SummaryX(),
			Y:        cur.Y,
			FontSize: headingFontSize,
		})
		cur = cur.advanced(headingAdvance)

		for _, u := range sec.Units {
			// The fit check estimates at a slightly wider wrap than
			// the final placement uses; both are kept as-is so page
			// breaks land where they always have.
			estLines := p.m.LineCount(u.Text, g.SummaryWidth()-5)
			estimated := float64(estLines)*mainLineSpacing + 2

			if cur.Y+estimated > g.contentLimit() {
				next := cur.Page + 1
				if next > p.totalPages {
					p.totalPages++
					p.paintSidebar(next)
				}
				cur = Cursor{Page: next, Y: g.TopMargin + 10}
			}

			wrapWidth := g.SummaryWidth() - 20
			lines := p.m.LineCount(u.Text, wrapWidth)
			p.emit(Placement{
				Unit:        u,
				Page:        cur.Page,
				X:           g.SummaryX() + 5,
				TextX:       g.SummaryX() + 10,
				Y:           cur.Y + 2,
				WrapWidth:   wrapWidth,
				Lines:       lines,
				LineSpacing: mainLineSpacing,
				GlyphDY:     bulletGlyphDY,
				FontSize:    bodyFontSize,
			})
			cur = cur.advanced(2 + float64(lines)*mainLineSpacing)
		}
	}
}

// planDetail lays out the fresh-page region: the labeled experience
// breakdown followed by education.
func (p *planner) planDetail(sections []Section) {
	if len(sections) == 0 {
		return
	}

	g := p.g
	cur := p.newDetailPage()

	for _, sec := range sections {
		if cur.Y > g.contentLimit() {
			cur = p.newDetailPage()
		}

		switch sec.Kind {
		case SectionEducation:
			p.emit(Placement{
				Unit:     Unit{Kind: UnitSubheading, Text: sec.Title, TextBold: true, FG: Black, BG: White},
				Heading:  true,
				Page:     cur.Page,
				X:        g.DetailX(),
				Y:        cur.Y,
				FontSize: headingFontSize,
			})
			cur = cur.advanced(educationTitleAdvance)
		default:
			p.emit(Placement{
				Unit:     Unit{Kind: UnitSubheading, Text: sec.Title, TextBold: true, FG: Black, BG: White},
				Heading:  true,
				Page:     cur.Page,
				X:        g.DetailX() - 3,
				Y:        cur.Y,
				FontSize: headingFontSize,
			})
			cur = cur.advanced(detailTitleAdvance)
		}

		for _, u := range sec.Units {
			cur = p.planDetailUnit(sec.Kind, u, cur)
		}

		// Both detail sections trail a blank line.
		cur = cur.advanced(mainLineSpacing)
	}
}

func (p *planner) planDetailUnit(kind SectionKind, u Unit, cur Cursor) Cursor {
	g := p.g

	if u.Kind == UnitSpacer {
		// Spacers advance the cursor but never force a page; the next
		// placed unit breaks if needed.
		return cur.advanced(u.Height)
	}

	if cur.Y > g.contentLimit() {
		cur = p.newDetailPage()
	}

	bulletX := g.DetailX() + detailMargin
	textX := bulletX + 5

	switch {
	case u.Kind == UnitSubheading:
		p.emit(Placement{
			Unit:     u,
			Page:     cur.Page,
			X:        textX,
			Y:        cur.Y,
			FontSize: bodyFontSize,
		})
		return cur.advanced(mainLineSpacing)

	case u.NoWrap:
		p.emit(Placement{
			Unit:        u,
			Page:        cur.Page,
			X:           bulletX,
			TextX:       textX,
			Y:           cur.Y,
			Lines:       1,
			LineSpacing: mainLineSpacing,
			GlyphDY:     detailBulletGlyphDY,
			FontSize:    bodyFontSize,
		})
		return cur.advanced(mainLineSpacing)

	case u.Label != "":
		labelWidth := p.m.LabelWidth(u.Label, u.LabelBold)
		wrapWidth := g.DetailWidth() - (textX + labelWidth - g.DetailX())
		lines := p.m.LineCount(u.Text, wrapWidth)
		p.emit(Placement{
			Unit:        u,
			Page:        cur.Page,
			X:           bulletX,
			TextX:       textX,
			Y:           cur.Y,
			WrapWidth:   wrapWidth,
			Lines:       lines,
			LineSpacing: mainLineSpacing,
			GlyphDY:     detailBulletGlyphDY,
			FontSize:    bodyFontSize,
		})
		return cur.advanced(float64(lines) * mainLineSpacing)

	default:
		// Unlabeled detail bullets (responsibilities, education).
		wrapWidth := g.DetailWidth() - 5
		lines := p.m.LineCount(u.Text, wrapWidth)
		glyphDY := bulletGlyphDY
		if kind == SectionEducation {
			glyphDY = detailBulletGlyphDY
		}
		p.emit(Placement{
			Unit:        u,
			Page:        cur.Page,
			X:           bulletX,
			TextX:       textX,
			Y:           cur.Y,
			WrapWidth:   wrapWidth,
			Lines:       lines,
			LineSpacing: mainLineSpacing,
			GlyphDY:     glyphDY,
			FontSize:    bodyFontSize,
		})
		return cur.advanced(float64(lines) * mainLineSpacing)
	}
}
