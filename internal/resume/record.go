// Package resume provides type definitions and decoding for parsed resume
// records produced by the parsing backend.
package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PersonalDetails carries the candidate identity fields of a record.
type PersonalDetails struct {
	Name string `json:"name,omitempty"`
}

// SkillCategory is one named group of skills from a categorized skill map.
// Categories preserve the order they appear in the source document.
type SkillCategory struct {
	Key    string
	Skills []string
}

// SkillSet holds either a flat list of skills or an ordered list of
// categories, depending on the shape the parsing backend produced.
// Defined reports whether the field was present at all, so callers can
// distinguish an absent field from an empty one.
type SkillSet struct {
	Defined    bool
	List       []string
	Categories []SkillCategory
}

// IsEmpty reports whether the skill set resolves to zero renderable items.
func (s SkillSet) IsEmpty() bool {
	if len(s.List) > 0 {
		return false
	}
	for _, c := range s.Categories {
		if len(c.Skills) > 0 {
			return false
		}
	}
	return true
}

// Certification is a single certification entry. Plain-string entries decode
// with only Name set.
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// Display renders a certification as it appears in the document: the name,
// suffixed with " - <issuer>" when an issuer is present.
func (c Certification) Display() string {
	if c.Issuer != "" {
		return c.Name + " - " + c.Issuer
	}
	return c.Name
}

// Experience is one work-experience entry.
type Experience struct {
	Company          string   `json:"company,omitempty"`
	Role             string   `json:"role,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	ClientEngagement string   `json:"client_engagement,omitempty"`
	Program          string   `json:"program,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// HasResponsibilities reports whether the entry carries a non-empty
// responsibilities list.
func (e Experience) HasResponsibilities() bool {
	return len(e.Responsibilities) > 0
}

// Education is one education entry.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Display renders an education entry as "<degree> from <institution>".
func (e Education) Display() string {
	return fmt.Sprintf("%s from %s", e.Degree, e.Institution)
}

// Record is a parsed resume as returned by the parsing backend. Every field
// may be absent or empty; emptiness means the corresponding section is
// omitted from generated documents.
type Record struct {
	PersonalDetails      PersonalDetails
	Skills               SkillSet
	CategorizedSkills    SkillSet
	Certifications       []Certification
	ProfessionalBriefing []string
	WorkExperience       []Experience
	Education            []Education
}

// DisplayName returns the candidate name, or the placeholder when absent.
func (r *Record) DisplayName() string {
	if r.PersonalDetails.Name != "" {
		return r.PersonalDetails.Name
	}
	return "Unnamed Candidate"
}

// MalformedSectionError reports a record field that is present but not
// shaped as the section requires (e.g. work_experience that is not a list).
type MalformedSectionError struct {
	Field string
	Cause error
}

func (e *MalformedSectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed section %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("malformed section %q: expected a list", e.Field)
}

func (e *MalformedSectionError) Unwrap() error {
	return e.Cause
}

// rawRecord mirrors the wire shape of a record before shape checks.
type rawRecord struct {
	PersonalDetails      *PersonalDetails `json:"personal_details"`
	Skills               json.RawMessage  `json:"skills"`
	CategorizedSkills    json.RawMessage  `json:"categorized_skills"`
	Certifications       json.RawMessage  `json:"certifications"`
	ProfessionalBriefing json.RawMessage  `json:"professional_briefing"`
	WorkExperience       json.RawMessage  `json:"work_experience"`
	Education            json.RawMessage  `json:"education"`
}

// Decode parses a resume record from JSON. Absent, null and empty fields are
// tolerated; list-typed fields that are present but not lists fail with a
// MalformedSectionError naming the field. The skills fields additionally
// accept a category-to-list mapping; any other shape is treated as absent.
func Decode(data []byte) (*Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse resume record: %w", err)
	}

	rec := &Record{}
	if raw.PersonalDetails != nil {
		rec.PersonalDetails = *raw.PersonalDetails
	}

	rec.Skills = decodeSkillSet(raw.Skills)
	rec.CategorizedSkills = decodeSkillSet(raw.CategorizedSkills)

	if present(raw.ProfessionalBriefing) {
		if !isList(raw.ProfessionalBriefing) {
			return nil, &MalformedSectionError{Field: "professional_briefing"}
		}
		if err := json.Unmarshal(raw.ProfessionalBriefing, &rec.ProfessionalBriefing); err != nil {
			return nil, &MalformedSectionError{Field: "professional_briefing", Cause: err}
		}
	}

	if present(raw.Certifications) {
		if !isList(raw.Certifications) {
			return nil, &MalformedSectionError{Field: "certifications"}
		}
		certs, err := decodeCertifications(raw.Certifications)
		if err != nil {
			return nil, &MalformedSectionError{Field: "certifications", Cause: err}
		}
		rec.Certifications = certs
	}

	if present(raw.WorkExperience) {
		if !isList(raw.WorkExperience) {
			return nil, &MalformedSectionError{Field: "work_experience"}
		}
		if err := json.Unmarshal(raw.WorkExperience, &rec.WorkExperience); err != nil {
			return nil, &MalformedSectionError{Field: "work_experience", Cause: err}
		}
	}

	if present(raw.Education) {
		if !isList(raw.Education) {
			return nil, &MalformedSectionError{Field: "education"}
		}
		if err := json.Unmarshal(raw.Education, &rec.Education); err != nil {
			return nil, &MalformedSectionError{Field: "education", Cause: err}
		}
	}

	return rec, nil
}

// present reports whether a raw field was supplied with a non-null value.
func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// isList reports whether a raw JSON value is an array.
func isList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decodeSkillSet decodes a skills field that may be a flat list of strings
// or a mapping from category name to list of strings. Wrong shapes are
// tolerated and produce an empty (but defined) set.
func decodeSkillSet(raw json.RawMessage) SkillSet {
	if !present(raw) {
		return SkillSet{}
	}

	set := SkillSet{Defined: true}
	trimmed := bytes.TrimSpace(raw)

	switch trimmed[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err == nil {
			set.List = list
		}
	case '{':
		set.Categories = decodeSkillCategories(trimmed)
	}

	return set
}

// decodeSkillCategories walks a JSON object token by token so the source
// key order is preserved; encoding/json map decoding would lose it and make
// generated documents unstable across runs.
func decodeSkillCategories(raw []byte) []SkillCategory {
	dec := json.NewDecoder(bytes.NewReader(raw))

	// Opening brace.
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var categories []SkillCategory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return categories
		}
		key, ok := keyTok.(string)
		if !ok {
			return categories
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return categories
		}

		// Non-list category values are carried as empty so the
		// selector skips them, matching the skip-empty rule.
		var skills []string
		if isList(value) {
			_ = json.Unmarshal(value, &skills)
		}
		categories = append(categories, SkillCategory{Key: key, Skills: skills})
	}

	return categories
}

// decodeCertifications accepts a list whose items are plain strings or
// {name, issuer} objects.
func decodeCertifications(raw json.RawMessage) ([]Certification, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	certs := make([]Certification, 0, len(items))
	for _, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 {
			continue
		}
		switch trimmed[0] {
		case '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, err
			}
			certs = append(certs, Certification{Name: s})
		case '{':
			var c Certification
			if err := json.Unmarshal(trimmed, &c); err != nil {
				return nil, err
			}
			certs = append(certs, c)
		default:
			return nil, fmt.Errorf("certification items must be strings or objects")
		}
	}

	return certs, nil
}

// FormatDateRange renders a work-experience date range. A start without an
// end reads "<start> - Present" while an end without a start reads
// "Until <end>".
//
// TODO: confirm with product whether the start-only/end-only asymmetry is
// intentional; it is preserved here for compatibility with existing output.
func FormatDateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return "Until " + end
	case end == "":
		return start + " - Present"
	default:
		return start + " - " + end
	}
}

// SortByResponsibilities returns a copy of entries with every entry that has
// a non-empty responsibilities list placed before the entries without one.
// Relative order inside each group is preserved (stable partition).
func SortByResponsibilities(entries []Experience) []Experience {
	sorted := make([]Experience, 0, len(entries))
	for _, e := range entries {
		if e.HasResponsibilities() {
			sorted = append(sorted, e)
		}
	}
	for _, e := range entries {
		if !e.HasResponsibilities() {
			sorted = append(sorted, e)
		}
	}
	return sorted
}

// DisplayCategory derives a human-readable section label from a skill map
// key: underscores become spaces and each word is capitalized, so
// "programming_languages" becomes "Programming Languages".
func DisplayCategory(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
