package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("unhandled error", "error", err)
		Error(w, status, "An unexpected error occurred", nil)
		return
	}
	Error(w, status, err.Error(), nil)
}

// StatusOf returns the HTTP status a domain error maps to.
func StatusOf(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity

	// Auth errors
	case errors.Is(err, user.ErrInvalidToken), errors.Is(err, user.ErrInvalidRole):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrAccessDenied),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrEmployeeProfileRequired):
		return http.StatusForbidden

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, payroll.ErrPayrollRecordNotFound),
		errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, review.ErrReviewerNotFound),
		errors.Is(err, document.ErrDocumentNotFound):
		return http.StatusNotFound

	// Conflicts
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrAttendanceExists),
		errors.Is(err, payroll.ErrPayrollRecordAlreadyExists),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrLeaveOverlap),
		errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		return http.StatusConflict

	// Rule violations on well-formed input
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrClockOutBeforeIn),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidStatus),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, employee.ErrManagerNotFound),
		errors.Is(err, employee.ErrCannotManageSelf),
		errors.Is(err, review.ErrSelfReview),
		errors.Is(err, document.ErrUnsupportedFileType),
		errors.Is(err, document.ErrFileRequired):
		return http.StatusUnprocessableEntity

	case errors.Is(err, document.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge

	default:
		return http.StatusInternalServerError
	}
}
