package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/service/file"
)

type DocumentServiceImpl struct {
	documentRepo document.DocumentRepository
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

func NewDocumentService(
	documentRepo document.DocumentRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
) document.DocumentService {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		employeeRepo: employeeRepo,
		fileService:  fileService,
	}
}

// UploadDocument implements document.DocumentService.
// Without an explicit employee_id the document belongs to the caller.
func (s *DocumentServiceImpl) UploadDocument(ctx context.Context, caller user.Principal, req document.UploadDocumentRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	owner, err := s.resolveOwner(ctx, caller, req.EmployeeID)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	return s.create(ctx, caller, owner, document.Document{
		EmployeeID: owner.ID,
		Name:       req.Name,
		Type:       req.Type,
		FileURL:    req.FileURL,
	})
}

// UploadDocumentFile implements document.DocumentService.
func (s *DocumentServiceImpl) UploadDocumentFile(ctx context.Context, caller user.Principal, req document.UploadDocumentFileRequest, f io.Reader) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}
	if f == nil {
		return document.DocumentResponse{}, document.ErrFileRequired
	}

	owner, err := s.resolveOwner(ctx, caller, req.EmployeeID)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	stored, err := s.fileService.StoreDocument(ctx, owner.ID, req.Type, f, req.Filename)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	resp, err := s.create(ctx, caller, owner, document.Document{
		EmployeeID: owner.ID,
		Name:       req.Name,
		Type:       req.Type,
		FileURL:    stored.URL,
		StorageKey: &stored.Key,
	})
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, stored.Key); delErr != nil {
			slog.Warn("failed to remove orphaned upload", "key", stored.Key, "error", delErr)
		}
		return document.DocumentResponse{}, err
	}
	return resp, nil
}

// OpenDocumentFile implements document.DocumentService.
func (s *DocumentServiceImpl) OpenDocumentFile(ctx context.Context, caller user.Principal, employeeID, name string) (io.ReadCloser, error) {
	if !caller.IsAdminOrHR() && employeeID != caller.EmployeeID {
		return nil, user.ErrAccessDenied
	}
	return s.fileService.OpenDocument(ctx, s.fileService.DocumentKey(employeeID, name))
}

// ListDocuments implements document.DocumentService.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, filter document.DocumentFilter) (document.ListDocumentResponse, error) {
	if err := filter.Validate(); err != nil {
		return document.ListDocumentResponse{}, err
	}

	docs, total, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		return document.ListDocumentResponse{}, fmt.Errorf("failed to list documents: %w", err)
	}

	responses := make([]document.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, document.NewDocumentResponse(d))
	}

	return document.ListDocumentResponse{
		Meta:      pagination.NewMeta(filter.Params, total),
		Documents: responses,
	}, nil
}

// GetMyDocuments implements document.DocumentService.
func (s *DocumentServiceImpl) GetMyDocuments(ctx context.Context, employeeID string, filter document.DocumentFilter) (document.ListDocumentResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListDocuments(ctx, filter)
}

// DeleteDocument implements document.DocumentService.
// The stored file, if any, is removed after the record; a failure there is only logged.
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, id string, caller user.Principal) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdminOrHR() && doc.EmployeeID != caller.EmployeeID {
		return user.ErrAccessDenied
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if doc.StorageKey != nil {
		if err := s.fileService.DeleteFile(ctx, *doc.StorageKey); err != nil {
			slog.Warn("failed to remove stored document file", "document_id", id, "key", *doc.StorageKey, "error", err)
		}
	}

	slog.Info("document deleted", "document_id", id, "deleted_by", caller.UserID)
	return nil
}

func (s *DocumentServiceImpl) resolveOwner(ctx context.Context, caller user.Principal, employeeID *string) (employee.Employee, error) {
	ownerID := caller.EmployeeID
	if employeeID != nil && *employeeID != caller.EmployeeID {
		if !caller.IsAdminOrHR() {
			return employee.Employee{}, user.ErrAccessDenied
		}
		ownerID = *employeeID
	}
	if ownerID == "" {
		return employee.Employee{}, user.ErrEmployeeProfileRequired
	}

	return s.employeeRepo.GetByID(ctx, ownerID)
}

func (s *DocumentServiceImpl) create(ctx context.Context, caller user.Principal, owner employee.Employee, d document.Document) (document.DocumentResponse, error) {
	created, err := s.documentRepo.Create(ctx, d)
	if err != nil {
		return document.DocumentResponse{}, fmt.Errorf("failed to store document: %w", err)
	}
	name := owner.FullName()
	created.EmployeeName = &name

	slog.Info("document uploaded", "document_id", created.ID, "employee_id", owner.ID, "uploaded_by", caller.UserID)

	return document.NewDocumentResponse(created), nil
}
