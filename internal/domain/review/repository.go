package review

import "context"

type ReviewRepository interface {
	Create(ctx context.Context, r Review) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	Update(ctx context.Context, r Review) (Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]Review, int64, error)
}
