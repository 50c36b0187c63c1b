// Package layout turns a parsed resume record into a format-agnostic
// document tree and plans its two-column pagination. Both binary emitters
// render from the same tree so their content can never diverge.
package layout

// Column identifies which page column a section flows into.
type Column int

const (
	// ColumnSidebar is the narrow colored column carrying skills and
	// certifications.
	ColumnSidebar Column = iota
	// ColumnMain is the wide column carrying summary, experience detail
	// and education.
	ColumnMain
)

// UnitKind discriminates the renderable block types inside a section.
type UnitKind int

const (
	// UnitBullet is a square-glyph bullet with an optional bold label.
	UnitBullet UnitKind = iota
	// UnitSubheading is an inline bold line such as "RESPONSIBILITIES:".
	UnitSubheading
	// UnitSpacer is vertical whitespace between blocks.
	UnitSpacer
)

// RGB is a foreground or background color.
type RGB struct {
	R, G, B uint8
}

// Document theme colors shared by both emitters.
var (
	// SidebarFill is the teal band behind sidebar content.
	SidebarFill = RGB{R: 0x1F, G: 0x74, B: 0x7B}
	// HeaderFill is the black banner on page one.
	HeaderFill = RGB{}
	// White is the sidebar and banner foreground.
	White = RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	// Black is the main column foreground.
	Black = RGB{}
)

// Unit is one renderable block: a bullet, a sub-heading or a spacer. Units
// are built fresh for each export call and discarded with the output.
type Unit struct {
	Kind UnitKind

	// Label is an optional prefix run such as "Company: ".
	Label     string
	LabelBold bool

	// Text is the bullet value or sub-heading text.
	Text     string
	TextBold bool

	// NoWrap marks single-line bullets whose vertical extent is fixed
	// regardless of text length (company and date fields).
	NoWrap bool

	// Height is the extent of a spacer unit.
	Height float64

	// FG and BG are the unit's color pair; BG is the column band color.
	FG RGB
	BG RGB
}

// SectionKind identifies a section's role, which drives region-specific
// placement rules in the flow planner.
type SectionKind int

const (
	// SectionSkills is the sidebar "Technical Expertise" section.
	SectionSkills SectionKind = iota
	// SectionCertifications is the sidebar "Certifications" section.
	SectionCertifications
	// SectionSummary is the narrative briefing in the main column.
	SectionSummary
	// SectionExperienceDetail is the per-entry experience breakdown that
	// always starts on a fresh page.
	SectionExperienceDetail
	// SectionEducation closes the detail region.
	SectionEducation
)

// Section is an ordered run of units under one heading.
type Section struct {
	Kind   SectionKind
	Title  string
	Column Column
	Units  []Unit
}

// Document is the format-agnostic layout tree: the resolved sections of a
// record split into the sidebar flow, the main-column summary flow, and the
// fresh-page detail flow.
type Document struct {
	// Name is the banner name with the placeholder fallback applied.
	Name string

	Sidebar []Section
	Summary []Section
	Detail  []Section
}
