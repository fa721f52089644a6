package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
)

type ReviewServiceImpl struct {
	reviewRepo   review.ReviewRepository
	employeeRepo employee.EmployeeRepository
}

func NewReviewService(reviewRepo review.ReviewRepository, employeeRepo employee.EmployeeRepository) review.ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:   reviewRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateReview implements review.ReviewService.
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, caller user.Principal, req review.CreateReviewRequest) (review.ReviewResponse, error) {
	if !caller.CanApprove() {
		return review.ReviewResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return review.ReviewResponse{}, err
	}
	if !caller.HasEmployee() {
		return review.ReviewResponse{}, review.ErrReviewerNotFound
	}

	reviewer, err := s.employeeRepo.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return review.ReviewResponse{}, review.ErrReviewerNotFound
		}
		return review.ReviewResponse{}, err
	}
	if reviewer.ID == req.EmployeeID {
		return review.ReviewResponse{}, review.ErrSelfReview
	}

	subject, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return review.ReviewResponse{}, err
	}

	created, err := s.reviewRepo.Create(ctx, review.Review{
		EmployeeID:   subject.ID,
		ReviewerID:   reviewer.ID,
		Period:       req.Period,
		Rating:       req.Rating,
		Feedback:     req.Feedback,
		Goals:        req.Goals,
		Achievements: req.Achievements,
		Status:       review.StatusDraft,
	})
	if err != nil {
		return review.ReviewResponse{}, fmt.Errorf("failed to create review: %w", err)
	}

	subjectName, reviewerName := subject.FullName(), reviewer.FullName()
	created.EmployeeName = &subjectName
	created.ReviewerName = &reviewerName

	slog.Info("performance review created", "review_id", created.ID, "employee_id", subject.ID, "reviewer_id", reviewer.ID)

	return review.NewReviewResponse(created), nil
}

// ListReviews implements review.ReviewService.
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, filter review.ReviewFilter) (review.ListReviewResponse, error) {
	if err := filter.Validate(); err != nil {
		return review.ListReviewResponse{}, err
	}

	reviews, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return review.ListReviewResponse{}, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]review.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, review.NewReviewResponse(r))
	}

	return review.ListReviewResponse{
		Meta:    pagination.NewMeta(filter.Params, total),
		Reviews: responses,
	}, nil
}

// GetMyReviews implements review.ReviewService.
func (s *ReviewServiceImpl) GetMyReviews(ctx context.Context, employeeID string, filter review.ReviewFilter) (review.ListReviewResponse, error) {
	filter.EmployeeID = &employeeID
	filter.ReviewerID = nil
	return s.ListReviews(ctx, filter)
}

// GetReview implements review.ReviewService.
func (s *ReviewServiceImpl) GetReview(ctx context.Context, id string) (review.ReviewResponse, error) {
	r, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return review.ReviewResponse{}, err
	}
	return review.NewReviewResponse(r), nil
}

// UpdateReview implements review.ReviewService.
func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, id string, caller user.Principal, req review.UpdateReviewRequest) (review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return review.ReviewResponse{}, err
	}

	existing, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return review.ReviewResponse{}, err
	}

	isReviewer := caller.HasEmployee() && existing.ReviewerID == caller.EmployeeID
	if !isReviewer && !caller.IsAdminOrHR() {
		return review.ReviewResponse{}, user.ErrAccessDenied
	}

	updated, err := s.reviewRepo.Update(ctx, req.Apply(existing))
	if err != nil {
		return review.ReviewResponse{}, err
	}

	return review.NewReviewResponse(updated), nil
}
