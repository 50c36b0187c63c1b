package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/resume-exporter/internal/archive"
	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
	"github.com/jonathan/resume-exporter/internal/schemas"
)

// decodeRecord turns raw record JSON into a Record, running strict schema
// validation first when the server is configured with a schema path.
func (s *Server) decodeRecord(raw []byte) (*resume.Record, error) {
	if s.schemaPath != "" {
		if err := schemas.ValidateRecord(s.schemaPath, raw); err != nil {
			return nil, err
		}
	}
	return resume.Decode(raw)
}

// handleExportPDF renders a single record as a PDF download
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatPDF)
}

// handleExportDOCX renders a single record as a DOCX download
func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatDOCX)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, format export.Format) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rec, err := s.decodeRecord(req.ParsedData)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	blob, err := s.exporter.Export(rec, format)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.recordExport(r, req.Filename, req.ParsedData, format, len(blob))

	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.exporter.Filename(rec, format)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		log.Printf("Error writing export response: %v", err)
	}
}

// handleExportArchive renders a batch of records and streams back one ZIP.
// A single bad record fails the whole request: clients never get a partial
// archive.
func (s *Server) handleExportArchive(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	format := export.Format(req.Format)
	items := make([]archive.Item, 0, len(req.Resumes))
	for _, entry := range req.Resumes {
		rec, err := s.decodeRecord(entry.ParsedData)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), fmt.Sprintf("record %q: %v", entry.Filename, err))
			return
		}
		items = append(items, archive.Item{Filename: entry.Filename, Record: rec})
	}

	blob, err := archive.Build(r.Context(), s.exporter, items, format)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", archive.DownloadName(format, time.Now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		log.Printf("Error writing archive response: %v", err)
	}
}

// handleSaveResume stores an uploaded record in the export history
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}

	var req SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// The store only accepts records the exporter would accept.
	if _, err := s.decodeRecord(req.ParsedData); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := s.db.SaveResume(r.Context(), req.Filename, req.ParsedData)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleListResumes returns the stored records, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}

	rows, err := s.db.ListResumes(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": rows})
}

// recordExport logs a completed export to the history store when one is
// configured. Failures are logged, not surfaced: auditing never blocks a
// download.
func (s *Server) recordExport(r *http.Request, filename string, raw json.RawMessage, format export.Format, size int) {
	if s.db == nil {
		return
	}
	if filename == "" {
		filename = "(unnamed)"
	}
	id, err := s.db.SaveResume(r.Context(), filename, raw)
	if err != nil {
		log.Printf("Error recording export history: %v", err)
		return
	}
	if err := s.db.RecordExport(r.Context(), id, string(format), size); err != nil {
		log.Printf("Error recording export history: %v", err)
	}
}
