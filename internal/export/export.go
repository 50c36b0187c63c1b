// Package export is the entry point for turning parsed resume records into
// binary documents. It owns the injected brand asset and routes records
// through the shared layout tree into the per-format emitters.
package export

import (
	"fmt"

	"github.com/jonathan/resume-exporter/internal/emit/docxgen"
	"github.com/jonathan/resume-exporter/internal/emit/pdfgen"
	"github.com/jonathan/resume-exporter/internal/layout"
	"github.com/jonathan/resume-exporter/internal/resume"
)

// Format selects a document backend.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Valid reports whether the format names a known backend.
func (f Format) Valid() bool {
	return f == FormatPDF || f == FormatDOCX
}

// MIME returns the content type of the format's output blob.
func (f Format) MIME() string {
	if f == FormatDOCX {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/pdf"
}

// EmitterError reports a failure inside one of the binary-format backends.
// Backend names which one so callers can surface it.
type EmitterError struct {
	Backend string
	Cause   error
}

func (e *EmitterError) Error() string {
	return fmt.Sprintf("%s emitter failed: %v", e.Backend, e.Cause)
}

func (e *EmitterError) Unwrap() error {
	return e.Cause
}

// Exporter renders records into document blobs. Each call builds its layout
// state fresh and returns an independent blob; an Exporter is safe for
// concurrent use.
type Exporter struct {
	brand []byte
}

// New returns an Exporter embedding the given brand-mark PNG into every
// generated document.
func New(brand []byte) *Exporter {
	return &Exporter{brand: brand}
}

// PDF renders the record as a paginated PDF. Output is deterministic: the
// same record yields byte-identical blobs on every call.
func (e *Exporter) PDF(rec *resume.Record) ([]byte, error) {
	doc := layout.SelectSections(rec)
	out, err := pdfgen.Render(doc, e.brand)
	if err != nil {
		return nil, &EmitterError{Backend: "PDF", Cause: err}
	}
	return out, nil
}

// DOCX renders the record as an OOXML package, deterministic in the same
// way as PDF.
func (e *Exporter) DOCX(rec *resume.Record) ([]byte, error) {
	doc := layout.SelectSections(rec)
	out, err := docxgen.Render(doc, e.brand)
	if err != nil {
		return nil, &EmitterError{Backend: "DOCX", Cause: err}
	}
	return out, nil
}

// Export renders the record in the requested format.
func (e *Exporter) Export(rec *resume.Record, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return e.PDF(rec)
	case FormatDOCX:
		return e.DOCX(rec)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Filename derives the standalone download filename from the candidate
// name, with the historical per-format fallback literals.
func (e *Exporter) Filename(rec *resume.Record, format Format) string {
	name := rec.PersonalDetails.Name
	if format == FormatDOCX {
		if name == "" {
			name = "resume"
		}
		return name + ".docx"
	}
	if name == "" {
		name = "Resume"
	}
	return name + ".pdf"
}
