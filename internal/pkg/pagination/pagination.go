package pagination

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

const MaxLimit = 100

// Params is embedded in list filters.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies defaults and reports out-of-range values.
func (p *Params) Normalize(defaultLimit int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if p.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if p.Page == 0 {
		p.Page = 1
	}

	if p.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	return errs
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of list responses.
type Meta struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	showing := fmt.Sprintf("%d-%d of %d", p.Offset()+1, min(p.Page*p.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return Meta{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		Showing:    showing,
	}
}
