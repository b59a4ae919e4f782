package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/auth"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingIdentity):
		Unauthorized(w, "Unauthorized")

	// Export errors
	case errors.Is(err, export.ErrNothingToExport):
		UnprocessableEntity(w, "NOTHING_TO_EXPORT", err.Error())
	case errors.Is(err, export.ErrUnsupportedFormat):
		NotFound(w, err.Error())

	// Scope and store errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrScopeUnavailable), errors.Is(err, attendance.ErrEventStoreUnavailable):
		slog.Error("Attendance backend unavailable", "error", err)
		ServiceUnavailable(w, "Attendance data is temporarily unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
