package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
	"personal_details": {"name": "Jane Doe"},
	"professional_briefing": ["Ships software."],
	"work_experience": [{"company": "Acme", "responsibilities": ["Built services"]}]
}`

func writeRecord(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleRecord), 0644))
	return path
}

func TestRunExport_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.pdf")

	exportInput = writeRecord(t, dir, "record.json")
	exportFormat = "pdf"
	exportOut = out
	exportValidate = false

	require.NoError(t, runExport(nil, nil))

	blob, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob, []byte("%PDF")))
}

func TestRunExport_RejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	exportInput = writeRecord(t, dir, "record.json")
	exportFormat = "xlsx"
	exportOut = filepath.Join(dir, "out.xlsx")
	exportValidate = false

	assert.Error(t, runExport(nil, nil))
}

func TestRunExport_RejectsMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"work_experience": "not a list"}`), 0644))

	exportInput = path
	exportFormat = "pdf"
	exportOut = filepath.Join(dir, "out.pdf")
	exportValidate = false

	assert.Error(t, runExport(nil, nil))
}

func TestRunBatch_WritesArchive(t *testing.T) {
	dir := t.TempDir()
	first := writeRecord(t, dir, "jane.json")
	second := writeRecord(t, dir, "john.json")
	out := filepath.Join(dir, "out.zip")

	batchFormat = "docx"
	batchOut = out

	require.NoError(t, runBatch(nil, []string{first, second}))

	blob, err := os.ReadFile(out)
	require.NoError(t, err)
	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "jane.docx", reader.File[0].Name)
	assert.Equal(t, "john.docx", reader.File[1].Name)
}
