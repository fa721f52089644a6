package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/google/uuid"
)

type DocumentRepository struct {
	s *Store
}

var _ document.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(ctx context.Context, d document.Document) (document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UploadedAt = r.s.now()
	r.s.documents[d.ID] = d
	return r.join(d), nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.documents[id]
	if !ok {
		return document.Document{}, document.ErrDocumentNotFound
	}
	return r.join(d), nil
}

func (r *DocumentRepository) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]document.Document, 0)
	for _, d := range r.s.documents {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Type != nil && d.Type != *filter.Type {
			continue
		}
		matched = append(matched, r.join(d))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].UploadedAt.After(matched[j].UploadedAt) })

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[id]; !ok {
		return document.ErrDocumentNotFound
	}
	delete(r.s.documents, id)
	return nil
}

func (r *DocumentRepository) join(d document.Document) document.Document {
	d.EmployeeName, _, _ = r.s.employeeJoin(d.EmployeeID)
	return d
}
