package layout

import (
	"strings"

	"github.com/jonathan/resume-exporter/internal/resume"
)

// Section and field labels as they appear in generated documents.
const (
	titleTechnicalExpertise     = "Technical Expertise"
	titleCertifications         = "Certifications"
	titleProfessionalExperience = "Professional Experience"
	titleEducation              = "Education"

	labelCompany            = "Company: "
	labelDate               = "Date: "
	labelRole               = "Role: "
	labelClientEngagement   = "Client Engagement: "
	labelProgram            = "Program: "
	subheadResponsibilities = "RESPONSIBILITIES:"

	// jobSpacing separates blocks and consecutive entries in the detail
	// region.
	jobSpacing = 5
)

// SelectSections classifies the record's fields into sidebar and main-column
// sections. Sections that resolve to zero items are dropped entirely: no
// heading, no vertical space.
func SelectSections(rec *resume.Record) *Document {
	doc := &Document{Name: strings.ToUpper(rec.DisplayName())}

	if s, ok := skillsSection(rec); ok {
		doc.Sidebar = append(doc.Sidebar, s)
	}
	if s, ok := certificationsSection(rec); ok {
		doc.Sidebar = append(doc.Sidebar, s)
	}
	if s, ok := summarySection(rec); ok {
		doc.Summary = append(doc.Summary, s)
	}
	if s, ok := experienceDetailSection(rec); ok {
		doc.Detail = append(doc.Detail, s)
	}
	if s, ok := educationSection(rec); ok {
		doc.Detail = append(doc.Detail, s)
	}

	return doc
}

// sidebarBullet builds a white-on-teal bullet for the sidebar column.
func sidebarBullet(text string) Unit {
	return Unit{Kind: UnitBullet, Text: text, FG: White, BG: SidebarFill}
}

// mainBullet builds a black-on-white bullet for the main column.
func mainBullet(label, text string, labelBold, textBold bool) Unit {
	return Unit{
		Kind:      UnitBullet,
		Label:     label,
		LabelBold: labelBold,
		Text:      text,
		TextBold:  textBold,
		FG:        Black,
		BG:        White,
	}
}

// skillsSection resolves the Technical Expertise section. A categorized
// skill map takes precedence over the flat list whenever the field was
// present, even if it resolves to nothing.
func skillsSection(rec *resume.Record) (Section, bool) {
	set := rec.Skills
	if rec.CategorizedSkills.Defined {
		set = rec.CategorizedSkills
	}

	var units []Unit
	if len(set.List) > 0 {
		for _, skill := range set.List {
			units = append(units, sidebarBullet(skill))
		}
	} else {
		for _, cat := range set.Categories {
			// Empty and non-list category values contribute nothing.
			if len(cat.Skills) == 0 {
				continue
			}
			text := resume.DisplayCategory(cat.Key) + ": " + strings.Join(cat.Skills, ", ")
			units = append(units, sidebarBullet(text))
		}
	}

	if len(units) == 0 {
		return Section{}, false
	}
	return Section{
		Kind:   SectionSkills,
		Title:  titleTechnicalExpertise,
		Column: ColumnSidebar,
		Units:  units,
	}, true
}

func certificationsSection(rec *resume.Record) (Section, bool) {
	if len(rec.Certifications) == 0 {
		return Section{}, false
	}

	units := make([]Unit, 0, len(rec.Certifications))
	for _, cert := range rec.Certifications {
		units = append(units, sidebarBullet(cert.Display()))
	}
	return Section{
		Kind:   SectionCertifications,
		Title:  titleCertifications,
		Column: ColumnSidebar,
		Units:  units,
	}, true
}

func summarySection(rec *resume.Record) (Section, bool) {
	if len(rec.ProfessionalBriefing) == 0 {
		return Section{}, false
	}

	units := make([]Unit, 0, len(rec.ProfessionalBriefing))
	for _, point := range rec.ProfessionalBriefing {
		units = append(units, mainBullet("", point, false, false))
	}
	return Section{
		Kind:   SectionSummary,
		Title:  titleProfessionalExperience,
		Column: ColumnMain,
		Units:  units,
	}, true
}

// experienceDetailSection builds the labeled per-entry breakdown. Entries
// with responsibilities are partitioned ahead of those without; within an
// entry, fields render in the fixed Company, Date, Role, Client Engagement,
// Program, RESPONSIBILITIES order with absent fields omitted.
func experienceDetailSection(rec *resume.Record) (Section, bool) {
	if len(rec.WorkExperience) == 0 {
		return Section{}, false
	}

	sorted := resume.SortByResponsibilities(rec.WorkExperience)

	var units []Unit
	for i, job := range sorted {
		if job.Company != "" {
			u := mainBullet(labelCompany, job.Company, true, false)
			u.NoWrap = true
			units = append(units, u)
		}
		if job.StartDate != "" || job.EndDate != "" {
			u := mainBullet(labelDate, resume.FormatDateRange(job.StartDate, job.EndDate), false, true)
			u.NoWrap = true
			units = append(units, u)
		}
		if job.Role != "" {
			units = append(units, mainBullet(labelRole, job.Role, true, false))
		}
		if job.ClientEngagement != "" {
			units = append(units, mainBullet(labelClientEngagement, job.ClientEngagement, true, false))
		}
		if job.Program != "" {
			units = append(units, mainBullet(labelProgram, job.Program, true, false))
		}
		if job.HasResponsibilities() {
			units = append(units, Unit{
				Kind:     UnitSubheading,
				Text:     subheadResponsibilities,
				TextBold: true,
				FG:       Black,
				BG:       White,
			})
			for _, resp := range job.Responsibilities {
				if strings.TrimSpace(resp) == "" {
					continue
				}
				units = append(units, mainBullet("", resp, false, false))
			}
		}

		units = append(units, Unit{Kind: UnitSpacer, Height: jobSpacing})
		if i < len(sorted)-1 {
			units = append(units, Unit{Kind: UnitSpacer, Height: jobSpacing})
		}
	}

	return Section{
		Kind:   SectionExperienceDetail,
		Title:  titleProfessionalExperience,
		Column: ColumnMain,
		Units:  units,
	}, true
}

func educationSection(rec *resume.Record) (Section, bool) {
	if len(rec.Education) == 0 {
		return Section{}, false
	}

	units := make([]Unit, 0, len(rec.Education))
	for _, edu := range rec.Education {
		units = append(units, mainBullet("", edu.Display(), false, false))
	}
	return Section{
		Kind:   SectionEducation,
		Title:  titleEducation,
		Column: ColumnMain,
		Units:  units,
	}, true
}
