package review

import "errors"

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrReviewerNotFound = errors.New("reviewer not found")
	ErrSelfReview       = errors.New("employees cannot review themselves")
)
