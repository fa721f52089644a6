package review

import (
	"context"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
)

type ReviewService interface {
	// CreateReview records a review written by the caller's employee profile
	CreateReview(ctx context.Context, caller user.Principal, req CreateReviewRequest) (ReviewResponse, error)
	ListReviews(ctx context.Context, filter ReviewFilter) (ListReviewResponse, error)
	GetMyReviews(ctx context.Context, employeeID string, filter ReviewFilter) (ListReviewResponse, error)
	GetReview(ctx context.Context, id string) (ReviewResponse, error)

	// UpdateReview is allowed for the reviewer and for admin/hr
	UpdateReview(ctx context.Context, id string, caller user.Principal, req UpdateReviewRequest) (ReviewResponse, error)
}
