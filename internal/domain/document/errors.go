package document

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedFileType = errors.New("file type is not allowed")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrFileRequired        = errors.New("file is required")
)
