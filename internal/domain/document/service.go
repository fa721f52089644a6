package document

import (
	"context"
	"io"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, caller user.Principal, req UploadDocumentRequest) (DocumentResponse, error)
	UploadDocumentFile(ctx context.Context, caller user.Principal, req UploadDocumentFileRequest, file io.Reader) (DocumentResponse, error)
	OpenDocumentFile(ctx context.Context, caller user.Principal, employeeID, name string) (io.ReadCloser, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) (ListDocumentResponse, error)
	GetMyDocuments(ctx context.Context, employeeID string, filter DocumentFilter) (ListDocumentResponse, error)
	DeleteDocument(ctx context.Context, id string, caller user.Principal) error
}
