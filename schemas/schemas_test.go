package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-exporter/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeRecordSchema_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join(".", "resume_record.schema.json")
	data, err := os.ReadFile(schemaPath)
	require.NoError(t, err, "Failed to read schema file")

	var schemaDoc map[string]any
	err = json.Unmarshal(data, &schemaDoc)
	require.NoError(t, err, "Schema file is not valid JSON")

	assert.Contains(t, schemaDoc, "$schema")
	assert.Contains(t, schemaDoc, "properties")
}

func TestResumeRecordSchema_AcceptsTypicalRecord(t *testing.T) {
	schemaData, err := os.ReadFile("resume_record.schema.json")
	require.NoError(t, err)

	record := `{
		"personal_details": {"name": "Jane Doe"},
		"categorized_skills": {"programming_languages": ["Python", "Go"]},
		"certifications": ["AWS SAA", {"name": "CKA", "issuer": "CNCF"}],
		"professional_briefing": ["Seasoned engineer."],
		"work_experience": [{"company": "Acme", "responsibilities": ["Built things"]}],
		"education": [{"degree": "BSc", "institution": "State University"}]
	}`

	err = schemas.ValidateJSONString(string(schemaData), record)
	assert.NoError(t, err)
}

func TestResumeRecordSchema_RejectsWrongShapes(t *testing.T) {
	schemaData, err := os.ReadFile("resume_record.schema.json")
	require.NoError(t, err)

	tests := []struct {
		name   string
		record string
	}{
		{"work_experience not a list", `{"work_experience": "not-a-list"}`},
		{"briefing items not strings", `{"professional_briefing": [42]}`},
		{"education not a list", `{"education": {"degree": "BSc"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(string(schemaData), tt.record)
			assert.Error(t, err)
		})
	}
}
