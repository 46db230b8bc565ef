package handlers

import (
	"net/http"

	"help-app-api/apperrors"
	"help-app-api/middleware"
	"help-app-api/reviews"
	"help-app-api/validation"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	Rating     *int    `json:"rating"`
	Comment    *string `json:"comment"`
	BookingID  string  `json:"bookingId"`
	ProviderID string  `json:"providerId"`
}

func (r *CreateReviewRequest) Validate() []string {
	var errs validation.Errors
	errs.IntRange("rating", r.Rating, 1, 5)
	if r.Comment != nil {
		errs.MaxLength("comment", *r.Comment, 500)
	}
	errs.Required("bookingId", r.BookingID)
	errs.Required("providerId", r.ProviderID)
	return errs
}

// CreateReview records the caller's review of a completed booking
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if !bind(c, &req) {
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), reviews.CreateInput{
		Rating:     *req.Rating,
		Comment:    req.Comment,
		BookingID:  req.BookingID,
		ClientID:   middleware.GetUserID(c),
		ProviderID: req.ProviderID,
	})
	if err != nil {
		apperrors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
