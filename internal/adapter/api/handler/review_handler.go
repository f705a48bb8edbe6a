package handler

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/usecase"
	"skillswap/pkg/errors"
	"skillswap/pkg/response"
	"skillswap/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type submitReviewRequest struct {
	RevieweeID string `json:"reviewee_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty"`
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.SubmitReview(c.Request().Context(), reviewerID, usecase.SubmitReviewInput{
		ProjectID:  projectID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

// ListReviews answers GET /v1/reviews?userId=, the flat query form of the
// per-user listing.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return response.Error(c, errors.BadRequest("userId query parameter is required", nil))
	}

	reviews, err := h.reviewUseCase.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	reviews, err := h.reviewUseCase.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)

	total := int64(len(reviews))
	start := params.Offset
	if start > len(reviews) {
		start = len(reviews)
	}
	end := start + params.PageSize
	if end > len(reviews) {
		end = len(reviews)
	}

	return response.Paginated(c, reviews[start:end], total, params.Page, params.PageSize)
}

func (h *ReviewHandler) ListProjectReviews(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	reviews, err := h.reviewUseCase.ListForProject(c.Request().Context(), projectID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
