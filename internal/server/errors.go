package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
	"github.com/jonathan/resume-exporter/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var malformed *resume.MalformedSectionError
	if errors.As(err, &malformed) {
		return http.StatusUnprocessableEntity
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return http.StatusUnprocessableEntity
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}

	var emitter *export.EmitterError
	if errors.As(err, &emitter) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
