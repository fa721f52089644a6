package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: validator.ValidationErrors{{Field: "tax", Message: "bad"}}, wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_ERROR"},
		{name: "invalid token", err: user.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "access denied", err: user.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "not found", err: payroll.ErrPayrollRecordNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "wrapped conflict", err: fmt.Errorf("create: %w", payroll.ErrPayrollRecordAlreadyExists), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "already processed", err: leave.ErrLeaveRequestAlreadyProcessed, wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "rule violation", err: attendance.ErrNotClockedIn, wantStatus: http.StatusUnprocessableEntity, wantCode: "UNPROCESSABLE_ENTITY"},
		{name: "file too large", err: document.ErrFileTooLarge, wantStatus: http.StatusRequestEntityTooLarge, wantCode: "FILE_TOO_LARGE"},
		{name: "unknown", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, StatusOf(tt.err))
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, errors.New("pq: password authentication failed"))

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "password")
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}})

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "month must be between 1 and 12", resp.Error.Details["month"])
}

func TestError_UnknownStatusFallsBack(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusTeapot, "short and stout", nil)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", decode(t, rec).Error.Code)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()

	err := Attachment(rec, "", "contract.pdf", 5, strings.NewReader("%PDF-"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="contract.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-", rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, Attachment(rec, "text/plain", "notes.txt", -1, strings.NewReader("hi")))
	assert.Empty(t, rec.Header().Get("Content-Length"))
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
