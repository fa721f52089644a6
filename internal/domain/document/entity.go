package document

import "time"

// Document is a file attached to an employee. StorageKey is set when the file
// was uploaded to this service; otherwise FileURL points elsewhere.
type Document struct {
	ID         string
	EmployeeID string
	Name       string
	Type       string
	FileURL    string
	StorageKey *string
	UploadedAt time.Time

	EmployeeName *string
}
