package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/google/uuid"
)

type ReviewRepository struct {
	s *Store
}

var _ review.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := r.s.now()
	rv.CreatedAt, rv.UpdatedAt = now, now
	r.s.reviews[rv.ID] = rv
	return r.join(rv), nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return review.Review{}, review.ErrReviewNotFound
	}
	return r.join(rv), nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reviews[rv.ID]
	if !ok {
		return review.Review{}, review.ErrReviewNotFound
	}
	rv.CreatedAt = existing.CreatedAt
	rv.UpdatedAt = r.s.now()
	r.s.reviews[rv.ID] = rv
	return r.join(rv), nil
}

func (r *ReviewRepository) List(ctx context.Context, filter review.ReviewFilter) ([]review.Review, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]review.Review, 0)
	for _, rv := range r.s.reviews {
		if filter.EmployeeID != nil && rv.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ReviewerID != nil && rv.ReviewerID != *filter.ReviewerID {
			continue
		}
		if filter.Period != nil && rv.Period != *filter.Period {
			continue
		}
		if filter.Status != nil && string(rv.Status) != *filter.Status {
			continue
		}
		matched = append(matched, r.join(rv))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

func (r *ReviewRepository) join(rv review.Review) review.Review {
	rv.EmployeeName, _, _ = r.s.employeeJoin(rv.EmployeeID)
	rv.ReviewerName, _, _ = r.s.employeeJoin(rv.ReviewerID)
	rv.ReviewerUserID = nil
	if reviewer, ok := r.s.employees[rv.ReviewerID]; ok {
		rv.ReviewerUserID = reviewer.UserID
	}
	return rv
}
