package http

import (
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
)

type ReviewHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyReviews(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type reviewHandlerImpl struct {
	reviewService review.ReviewService
}

func NewReviewHandler(reviewService review.ReviewService) ReviewHandler {
	return &reviewHandlerImpl{reviewService: reviewService}
}

func (h *reviewHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req review.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.reviewService.CreateReview(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review created successfully", resp)
}

func (h *reviewHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := reviewFilter(w, r)
	if !ok {
		return
	}
	filter.EmployeeID = queryString(r, "employee_id")
	filter.ReviewerID = queryString(r, "reviewer_id")

	resp, err := h.reviewService.ListReviews(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *reviewHandlerImpl) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	filter, ok := reviewFilter(w, r)
	if !ok {
		return
	}

	resp, err := h.reviewService.GetMyReviews(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *reviewHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.reviewService.GetReview(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *reviewHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req review.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.reviewService.UpdateReview(r.Context(), id, p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review updated successfully", resp)
}

func reviewFilter(w http.ResponseWriter, r *http.Request) (review.ReviewFilter, bool) {
	params, ok := pageParams(w, r)
	if !ok {
		return review.ReviewFilter{}, false
	}

	return review.ReviewFilter{
		Params: params,
		Period: queryString(r, "period"),
		Status: queryString(r, "status"),
	}, true
}
