package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-exporter/internal/assets"
	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
)

func decodeRecord(t *testing.T, data string) *resume.Record {
	t.Helper()
	rec, err := resume.Decode([]byte(data))
	require.NoError(t, err)
	return rec
}

func TestItem_EntryName(t *testing.T) {
	tests := []struct {
		filename string
		format   export.Format
		want     string
	}{
		{"Jane Doe.pdf", export.FormatPDF, "Jane Doe.pdf"},
		{"John.docx", export.FormatPDF, "John.pdf"},
		{"resume.json", export.FormatDOCX, "resume.docx"},
		{"noext", export.FormatPDF, "noext.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			item := Item{Filename: tt.filename}
			assert.Equal(t, tt.want, item.EntryName(tt.format))
		})
	}
}

func TestBuild_CollectsEveryRecordInOrder(t *testing.T) {
	ex := export.New(assets.BrandMark())
	items := []Item{
		{Filename: "jane.json", Record: decodeRecord(t, `{"personal_details": {"name": "Jane Doe"}}`)},
		{Filename: "john.json", Record: decodeRecord(t, `{"personal_details": {"name": "John Roe"}}`)},
	}

	blob, err := Build(context.Background(), ex, items, export.FormatPDF)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "jane.pdf", reader.File[0].Name)
	assert.Equal(t, "john.pdf", reader.File[1].Name)

	// Entries match standalone exports byte for byte.
	rc, err := reader.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	var entry bytes.Buffer
	_, err = entry.ReadFrom(rc)
	require.NoError(t, err)

	standalone, err := ex.Export(items[0].Record, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, standalone, entry.Bytes())
}

func TestBuild_Deterministic(t *testing.T) {
	ex := export.New(assets.BrandMark())
	items := []Item{
		{Filename: "jane.json", Record: decodeRecord(t, `{"personal_details": {"name": "Jane Doe"}}`)},
	}

	first, err := Build(context.Background(), ex, items, export.FormatDOCX)
	require.NoError(t, err)
	second, err := Build(context.Background(), ex, items, export.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_AbortsWholeBatchOnFailure(t *testing.T) {
	// A corrupt brand image makes every DOCX emit fail; the batch returns
	// an error instead of a partial archive.
	ex := export.New([]byte("not a png"))
	items := []Item{
		{Filename: "jane.json", Record: decodeRecord(t, `{"personal_details": {"name": "Jane Doe"}}`)},
		{Filename: "john.json", Record: decodeRecord(t, `{"personal_details": {"name": "John Roe"}}`)},
	}

	blob, err := Build(context.Background(), ex, items, export.FormatDOCX)
	require.Error(t, err)
	assert.Nil(t, blob)
	assert.Contains(t, err.Error(), ".json")
}

func TestBuild_RejectsUnknownFormat(t *testing.T) {
	ex := export.New(nil)
	_, err := Build(context.Background(), ex, nil, export.Format("xlsx"))
	assert.Error(t, err)
}

func TestDownloadName(t *testing.T) {
	at := time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "resumes_pdf_2026-08-28.zip", DownloadName(export.FormatPDF, at))
	assert.Equal(t, "resumes_docx_2026-08-28.zip", DownloadName(export.FormatDOCX, at))
}
