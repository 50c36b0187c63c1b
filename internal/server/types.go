package server

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ExportRequest represents the request body for the single-document export
// endpoints. ParsedData carries the resume record exactly as the parsing
// backend produced it.
type ExportRequest struct {
	Filename   string          `json:"filename,omitempty"`
	ParsedData json.RawMessage `json:"parsed_data" validate:"required"`
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ArchiveItem is one resume inside a batch archive request.
type ArchiveItem struct {
	Filename   string          `json:"filename" validate:"required,min=1"`
	ParsedData json.RawMessage `json:"parsed_data" validate:"required"`
}

// ArchiveRequest represents the request body for the batch archive endpoint.
type ArchiveRequest struct {
	Format  string        `json:"format" validate:"required,oneof=pdf docx"`
	Resumes []ArchiveItem `json:"resumes" validate:"required,min=1,dive"`
}

// Validate validates the ArchiveRequest using the validator.
func (r *ArchiveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SaveResumeRequest represents the request body for storing a record in the
// export history.
type SaveResumeRequest struct {
	Filename   string          `json:"filename" validate:"required,min=1"`
	ParsedData json.RawMessage `json:"parsed_data" validate:"required"`
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
