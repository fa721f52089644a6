package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const reviewColumns = `pr.id, pr.employee_id, pr.reviewer_id, pr.period, pr.rating, pr.feedback, pr.goals,
	pr.achievements, pr.status, pr.created_at, pr.updated_at,
	e.first_name || ' ' || e.last_name, rv.first_name || ' ' || rv.last_name, rv.user_id`

const reviewJoins = `
	JOIN employees e ON e.id = pr.employee_id
	JOIN employees rv ON rv.id = pr.reviewer_id`

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) review.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

func scanReview(row pgx.Row) (review.Review, error) {
	var r review.Review
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.ReviewerID, &r.Period, &r.Rating, &r.Feedback, &r.Goals,
		&r.Achievements, &r.Status, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.ReviewerName, &r.ReviewerUserID,
	)
	return r, err
}

func (r *reviewRepositoryImpl) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH pr AS (
			INSERT INTO performance_reviews (employee_id, reviewer_id, period, rating, feedback, goals, achievements, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT ` + reviewColumns + `
		FROM pr` + reviewJoins

	created, err := scanReview(q.QueryRow(ctx, query,
		rv.EmployeeID, rv.ReviewerID, rv.Period, rv.Rating, rv.Feedback, rv.Goals, rv.Achievements, rv.Status,
	))
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to create review: %w", err)
	}
	return created, nil
}

func (r *reviewRepositoryImpl) GetByID(ctx context.Context, id string) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reviewColumns + ` FROM performance_reviews pr` + reviewJoins + ` WHERE pr.id = $1`

	found, err := scanReview(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return review.Review{}, review.ErrReviewNotFound
		}
		return review.Review{}, fmt.Errorf("failed to get review with id %s: %w", id, err)
	}
	return found, nil
}

func (r *reviewRepositoryImpl) Update(ctx context.Context, rv review.Review) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH pr AS (
			UPDATE performance_reviews SET
				period = $2, rating = $3, feedback = $4, goals = $5, achievements = $6, status = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + reviewColumns + `
		FROM pr` + reviewJoins

	updated, err := scanReview(q.QueryRow(ctx, query,
		rv.ID, rv.Period, rv.Rating, rv.Feedback, rv.Goals, rv.Achievements, rv.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return review.Review{}, review.ErrReviewNotFound
		}
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}
	return updated, nil
}

func (r *reviewRepositoryImpl) List(ctx context.Context, filter review.ReviewFilter) ([]review.Review, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ReviewerID != nil {
		conditions = append(conditions, fmt.Sprintf("pr.reviewer_id = $%d", argIdx))
		args = append(args, *filter.ReviewerID)
		argIdx++
	}
	if filter.Period != nil {
		conditions = append(conditions, fmt.Sprintf("pr.period = $%d", argIdx))
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM performance_reviews pr " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM performance_reviews pr %s
		%s
		ORDER BY pr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, reviewColumns, reviewJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]review.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
