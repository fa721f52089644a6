package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// MaxDocumentSize bounds a single uploaded document.
const MaxDocumentSize = 10 << 20

var documentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx", ".xls", ".xlsx", ".txt"}

// StoredFile describes a file written to storage.
type StoredFile struct {
	Key string
	URL string
}

type FileService interface {
	// StoreDocument writes an employee document under documents/{employeeID}/.
	StoreDocument(ctx context.Context, employeeID string, documentType string, file io.Reader, filename string) (StoredFile, error)

	// OpenDocument returns document.ErrDocumentNotFound when the key holds nothing.
	OpenDocument(ctx context.Context, key string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, key string) error

	// DocumentKey builds the key of a file stored for employeeID.
	DocumentKey(employeeID, name string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// StoreDocument implements FileService.
func (s *fileServiceImpl) StoreDocument(ctx context.Context, employeeID string, documentType string, file io.Reader, filename string) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(documentExts, ext) {
		return StoredFile{}, document.ErrUnsupportedFileType
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := fmt.Sprintf("%s-%s%s", slug(documentType), uuid.New().String(), ext)
	limited := &io.LimitedReader{R: file, N: MaxDocumentSize + 1}

	key, err := s.storage.Upload(ctx, limited, s.DocumentKey(employeeID, name), contentType)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to upload document: %w", err)
	}
	if limited.N <= 0 {
		_ = s.storage.Delete(ctx, key)
		return StoredFile{}, document.ErrFileTooLarge
	}

	return StoredFile{Key: key, URL: s.storage.URL(key)}, nil
}

// OpenDocument implements FileService.
func (s *fileServiceImpl) OpenDocument(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.storage.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrFileMissing) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}
	return rc, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// DocumentKey implements FileService.
func (s *fileServiceImpl) DocumentKey(employeeID, name string) string {
	return path.Join("documents", employeeID, path.Base(name))
}

// slug keeps letters, digits and dashes so the document type is safe in a filename.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
