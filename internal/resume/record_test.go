package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ToleratesAbsentAndNullFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"all null", `{"personal_details": null, "skills": null, "certifications": null, "professional_briefing": null, "work_experience": null, "education": null}`},
		{"empty lists", `{"certifications": [], "professional_briefing": [], "work_experience": [], "education": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Decode([]byte(tt.data))
			require.NoError(t, err)
			assert.Empty(t, rec.Certifications)
			assert.Empty(t, rec.ProfessionalBriefing)
			assert.Empty(t, rec.WorkExperience)
			assert.Empty(t, rec.Education)
			assert.Equal(t, "Unnamed Candidate", rec.DisplayName())
		})
	}
}

func TestDecode_MalformedListFields(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"briefing is a string", `{"professional_briefing": "not a list"}`, "professional_briefing"},
		{"briefing items not strings", `{"professional_briefing": [42]}`, "professional_briefing"},
		{"certifications is an object", `{"certifications": {"name": "AWS"}}`, "certifications"},
		{"certification item is a number", `{"certifications": [7]}`, "certifications"},
		{"work_experience is a string", `{"work_experience": "Acme"}`, "work_experience"},
		{"education is an object", `{"education": {"degree": "BSc"}}`, "education"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)

			var malformed *MalformedSectionError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestDecode_SkillShapes(t *testing.T) {
	t.Run("flat list", func(t *testing.T) {
		rec, err := Decode([]byte(`{"skills": ["Go", "Python"]}`))
		require.NoError(t, err)
		assert.True(t, rec.Skills.Defined)
		assert.Equal(t, []string{"Go", "Python"}, rec.Skills.List)
		assert.False(t, rec.Skills.IsEmpty())
	})

	t.Run("categorized map preserves key order", func(t *testing.T) {
		data := `{"categorized_skills": {
			"programming_languages": ["Go"],
			"cloud": ["AWS", "GCP"],
			"databases": ["PostgreSQL"],
			"tooling": ["Docker"]
		}}`
		rec, err := Decode([]byte(data))
		require.NoError(t, err)
		require.Len(t, rec.CategorizedSkills.Categories, 4)

		keys := make([]string, 0, 4)
		for _, c := range rec.CategorizedSkills.Categories {
			keys = append(keys, c.Key)
		}
		assert.Equal(t, []string{"programming_languages", "cloud", "databases", "tooling"}, keys)
	})

	t.Run("wrong shape is tolerated as empty", func(t *testing.T) {
		rec, err := Decode([]byte(`{"skills": "Go"}`))
		require.NoError(t, err)
		assert.True(t, rec.Skills.Defined)
		assert.True(t, rec.Skills.IsEmpty())
	})

	t.Run("non-list category values carry no skills", func(t *testing.T) {
		rec, err := Decode([]byte(`{"categorized_skills": {"cloud": "AWS", "languages": ["Go"]}}`))
		require.NoError(t, err)
		require.Len(t, rec.CategorizedSkills.Categories, 2)
		assert.Empty(t, rec.CategorizedSkills.Categories[0].Skills)
		assert.Equal(t, []string{"Go"}, rec.CategorizedSkills.Categories[1].Skills)
	})

	t.Run("absent skills are undefined", func(t *testing.T) {
		rec, err := Decode([]byte(`{}`))
		require.NoError(t, err)
		assert.False(t, rec.Skills.Defined)
		assert.False(t, rec.CategorizedSkills.Defined)
	})
}

func TestDecode_Certifications(t *testing.T) {
	data := `{"certifications": ["AWS SAA", {"name": "CKA", "issuer": "CNCF"}, {"name": "Bare"}]}`
	rec, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, rec.Certifications, 3)

	assert.Equal(t, "AWS SAA", rec.Certifications[0].Display())
	assert.Equal(t, "CKA - CNCF", rec.Certifications[1].Display())
	assert.Equal(t, "Bare", rec.Certifications[2].Display())
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"both present", "Jan 2020", "Mar 2023", "Jan 2020 - Mar 2023"},
		{"start only", "Jan 2020", "", "Jan 2020 - Present"},
		{"end only", "", "Mar 2023", "Until Mar 2023"},
		{"both absent", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end))
		})
	}
}

func TestSortByResponsibilities_StablePartition(t *testing.T) {
	entries := []Experience{
		{Company: "A"},
		{Company: "B", Responsibilities: []string{"x"}},
		{Company: "C"},
		{Company: "D", Responsibilities: []string{"y"}},
	}

	sorted := SortByResponsibilities(entries)
	companies := make([]string, 0, len(sorted))
	for _, e := range sorted {
		companies = append(companies, e.Company)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, companies)

	// Input is untouched.
	assert.Equal(t, "A", entries[0].Company)
}

func TestDisplayCategory(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"programming_languages", "Programming Languages"},
		{"cloud", "Cloud"},
		{"ci_cd_tooling", "Ci Cd Tooling"},
		{"", ""},
		{"__double", "  Double"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayCategory(tt.key))
		})
	}
}

func TestEducationDisplay(t *testing.T) {
	e := Education{Degree: "BSc Computer Science", Institution: "State University"}
	assert.Equal(t, "BSc Computer Science from State University", e.Display())
}

func TestDisplayName(t *testing.T) {
	rec := &Record{PersonalDetails: PersonalDetails{Name: "Jane Doe"}}
	assert.Equal(t, "Jane Doe", rec.DisplayName())

	rec = &Record{}
	assert.Equal(t, "Unnamed Candidate", rec.DisplayName())
}
