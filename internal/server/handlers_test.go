package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-exporter/internal/assets"
	"github.com/jonathan/resume-exporter/internal/export"
)

func testServer() *Server {
	return &Server{exporter: export.New(assets.BrandMark())}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	w := doRequest(t, testServer(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleExportPDF(t *testing.T) {
	body := `{"parsed_data": {"personal_details": {"name": "Jane Doe"}, "professional_briefing": ["Ships software."]}}`
	w := doRequest(t, testServer(), http.MethodPost, "/api/exports/pdf", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"Jane Doe.pdf"`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestHandleExportDOCX(t *testing.T) {
	body := `{"parsed_data": {"personal_details": {"name": "Jane Doe"}}}`
	w := doRequest(t, testServer(), http.MethodPost, "/api/exports/docx", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"Jane Doe.docx"`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestHandleExport_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid JSON", `{`, http.StatusBadRequest},
		{"missing parsed_data", `{"filename": "x.json"}`, http.StatusBadRequest},
		{"malformed record section", `{"parsed_data": {"work_experience": "not a list"}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, testServer(), http.MethodPost, "/api/exports/pdf", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestHandleExportArchive(t *testing.T) {
	body := `{
		"format": "pdf",
		"resumes": [
			{"filename": "jane.json", "parsed_data": {"personal_details": {"name": "Jane Doe"}}},
			{"filename": "john.json", "parsed_data": {"personal_details": {"name": "John Roe"}}}
		]
	}`
	w := doRequest(t, testServer(), http.MethodPost, "/api/exports/archive", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "resumes_pdf_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestHandleExportArchive_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown format", `{"format": "xlsx", "resumes": [{"filename": "a.json", "parsed_data": {}}]}`, http.StatusBadRequest},
		{"empty batch", `{"format": "pdf", "resumes": []}`, http.StatusBadRequest},
		{"item missing filename", `{"format": "pdf", "resumes": [{"parsed_data": {}}]}`, http.StatusBadRequest},
		{"malformed record", `{"format": "pdf", "resumes": [{"filename": "a.json", "parsed_data": {"education": 5}}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, testServer(), http.MethodPost, "/api/exports/archive", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestHandleResumes_WithoutStore(t *testing.T) {
	s := testServer()

	w := doRequest(t, s, http.MethodGet, "/api/resumes", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/resumes", `{"filename": "a.json", "parsed_data": {}}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWithCORS(t *testing.T) {
	s := testServer()
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/exports/pdf", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
