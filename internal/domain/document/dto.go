package document

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

type UploadDocumentRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Type       string  `json:"type" validate:"required,max=100"`
	FileURL    string  `json:"file_url" validate:"required,url"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
}

func (r *UploadDocumentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	return validator.Struct(r)
}

// UploadDocumentFileRequest carries the form fields of a multipart upload.
type UploadDocumentFileRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Type       string  `json:"type" validate:"required,max=100"`
	Filename   string  `json:"file" validate:"required,max=255"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
}

func (r *UploadDocumentFileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	return validator.Struct(r)
}

type DocumentFilter struct {
	pagination.Params

	EmployeeID *string `json:"employee_id,omitempty"`
	Type       *string `json:"type,omitempty"`
}

func (f *DocumentFilter) Validate() error {
	errs := f.Params.Normalize(10)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DocumentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	FileURL      string  `json:"file_url"`
	UploadedAt   string  `json:"uploaded_at"`
}

type ListDocumentResponse struct {
	pagination.Meta
	Documents []DocumentResponse `json:"documents"`
}

func NewDocumentResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Name:         d.Name,
		Type:         d.Type,
		FileURL:      d.FileURL,
		UploadedAt:   d.UploadedAt.Format(time.RFC3339),
	}
}
