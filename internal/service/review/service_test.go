package review

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	service  review.ReviewService
	clock    *clock.Fixed
	manager  user.Principal
	hr       user.Principal
	staff    user.Principal
	staffID  string
	otherMgr user.Principal
}

func newReviewFixture(t *testing.T) reviewFixture {
	t.Helper()
	ctx := context.Background()
	clk := &clock.Fixed{T: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk)

	seed := func(code, first string) employee.Employee {
		userID := "user-" + code
		e, err := store.Employees().Create(ctx, employee.Employee{
			UserID:        &userID,
			EmployeeCode:  code,
			FirstName:     first,
			LastName:      "Saputra",
			Email:         code + "@example.com",
			DateOfJoining: time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
			IsActive:      true,
		})
		require.NoError(t, err)
		return e
	}

	mgr := seed("EMP001", "Joko")
	staff := seed("EMP002", "Kartika")
	other := seed("EMP003", "Lina")

	return reviewFixture{
		service:  NewReviewService(store.Reviews(), store.Employees()),
		clock:    clk,
		manager:  user.Principal{UserID: *mgr.UserID, EmployeeID: mgr.ID, Role: user.RoleManager},
		hr:       user.Principal{UserID: "user-hr", Role: user.RoleHR},
		staff:    user.Principal{UserID: *staff.UserID, EmployeeID: staff.ID, Role: user.RoleEmployee},
		staffID:  staff.ID,
		otherMgr: user.Principal{UserID: *other.UserID, EmployeeID: other.ID, Role: user.RoleManager},
	}
}

func (f reviewFixture) create(t *testing.T, period string) review.ReviewResponse {
	t.Helper()
	rating := 4
	resp, err := f.service.CreateReview(context.Background(), f.manager, review.CreateReviewRequest{
		EmployeeID: f.staffID,
		Period:     period,
		Rating:     &rating,
	})
	require.NoError(t, err)
	return resp
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	f := newReviewFixture(t)

	resp := f.create(t, "2024-Q1")

	assert.Equal(t, f.staffID, resp.EmployeeID)
	assert.Equal(t, f.manager.EmployeeID, resp.ReviewerID)
	assert.Equal(t, string(review.StatusDraft), resp.Status)
	require.NotNil(t, resp.ReviewerName)
	assert.Equal(t, "Joko Saputra", *resp.ReviewerName)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Kartika Saputra", *resp.EmployeeName)
}

func TestReviewService_CreateReview_Rules(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	rating := 6

	_, err := f.service.CreateReview(ctx, f.staff, review.CreateReviewRequest{EmployeeID: f.staffID, Period: "2024-Q1"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.service.CreateReview(ctx, f.hr, review.CreateReviewRequest{EmployeeID: f.staffID, Period: "2024-Q1"})
	assert.ErrorIs(t, err, review.ErrReviewerNotFound)

	_, err = f.service.CreateReview(ctx, f.manager, review.CreateReviewRequest{EmployeeID: f.manager.EmployeeID, Period: "2024-Q1"})
	assert.ErrorIs(t, err, review.ErrSelfReview)

	_, err = f.service.CreateReview(ctx, f.manager, review.CreateReviewRequest{EmployeeID: f.staffID, Period: "", Rating: &rating})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "period")
	assert.Contains(t, verrs.ToMap(), "rating")

	_, err = f.service.CreateReview(ctx, f.manager, review.CreateReviewRequest{EmployeeID: "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f", Period: "2024-Q1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReviewService_UpdateReview_Access(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	created := f.create(t, "2024-Q1")

	feedback := "Consistently ships on time"
	status := "submitted"

	updated, err := f.service.UpdateReview(ctx, created.ID, f.manager, review.UpdateReviewRequest{Feedback: &feedback, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, string(review.StatusSubmitted), updated.Status)
	require.NotNil(t, updated.Feedback)
	assert.Equal(t, feedback, *updated.Feedback)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)

	approved := "APPROVED"
	_, err = f.service.UpdateReview(ctx, created.ID, f.hr, review.UpdateReviewRequest{Status: &approved})
	assert.NoError(t, err)

	_, err = f.service.UpdateReview(ctx, created.ID, f.otherMgr, review.UpdateReviewRequest{Feedback: &feedback})
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	_, err = f.service.UpdateReview(ctx, created.ID, f.staff, review.UpdateReviewRequest{Feedback: &feedback})
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	bogus := "ARCHIVED"
	_, err = f.service.UpdateReview(ctx, created.ID, f.manager, review.UpdateReviewRequest{Status: &bogus})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.service.UpdateReview(ctx, "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f", f.hr, review.UpdateReviewRequest{Feedback: &feedback})
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}

func TestReviewService_ListReviews(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)
	f.create(t, "2024-Q1")
	f.clock.Advance(time.Hour)
	f.create(t, "2024-Q2")

	all, err := f.service.ListReviews(ctx, review.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
	assert.Equal(t, "2024-Q2", all.Reviews[0].Period)

	period := "2024-Q1"
	byPeriod, err := f.service.ListReviews(ctx, review.ReviewFilter{Period: &period})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byPeriod.TotalCount)

	reviewer := f.otherMgr.EmployeeID
	none, err := f.service.ListReviews(ctx, review.ReviewFilter{ReviewerID: &reviewer})
	require.NoError(t, err)
	assert.Empty(t, none.Reviews)

	mine, err := f.service.GetMyReviews(ctx, f.staffID, review.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)

	got, err := f.service.GetReview(ctx, all.Reviews[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-Q1", got.Period)
}
