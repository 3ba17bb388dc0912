package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/store"
)

// ReviewController handles review submission and retrieval.
type ReviewController struct {
	store        store.Store
	achievements *services.AchievementService
}

// NewReviewController creates a review controller.
func NewReviewController(s store.Store, achievements *services.AchievementService) *ReviewController {
	return &ReviewController{store: s, achievements: achievements}
}

// CreateReviewRequest represents the request body for submitting a review
type CreateReviewRequest struct {
	BookingID       string                  `json:"booking_id" binding:"required"`
	OverallRating   int                     `json:"overall_rating" binding:"required,min=1,max=5"`
	Text            string                  `json:"text"`
	ImageURLs       []string                `json:"image_urls"`
	CategoryRatings *models.CategoryRatings `json:"category_ratings"`
}

// CreateReview handles POST /api/v1/reviews - the booking's looker reviews a
// completed booking, at most once. The insert, the booking's review
// back-reference and the provider's rating recompute commit atomically.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	booking, err := rc.store.GetBooking(c.Request.Context(), req.BookingID)
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	if booking.LookerID != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only the booking's looker can submit a review")
		return
	}
	if booking.Status != models.BookingCompleted {
		respondError(c, http.StatusBadRequest, "INVALID_STATUS", "Only completed bookings can be reviewed")
		return
	}
	if booking.ReviewID != nil {
		respondError(c, http.StatusConflict, "ALREADY_REVIEWED", "This booking has already been reviewed")
		return
	}

	review := models.Review{
		BookingID:       booking.ID,
		LookerID:        caller,
		ProviderID:      booking.ProviderID,
		OverallRating:   req.OverallRating,
		Text:            req.Text,
		ImageURLs:       req.ImageURLs,
		CategoryRatings: req.CategoryRatings,
	}

	// The transaction rechecks the booking, so a concurrent duplicate still
	// surfaces here.
	if err := rc.store.CreateReview(c.Request.Context(), &review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "ALREADY_REVIEWED", "This booking has already been reviewed")
			return
		}
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	rc.achievements.OnReviewSubmitted(c.Request.Context(), caller)

	respondSuccess(c, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/reviews/:id
func (rc *ReviewController) GetReview(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	review, err := rc.store.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "REVIEW_NOT_FOUND", "Review not found")
		return
	}

	respondSuccess(c, http.StatusOK, review)
}

// ListProviderReviews handles GET /api/v1/providers/:id/reviews
func (rc *ReviewController) ListProviderReviews(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	reviews, err := rc.store.ListProviderReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "REVIEW_NOT_FOUND", "Review not found")
		return
	}

	respondSuccess(c, http.StatusOK, reviews)
}
