package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/store"
)

// BookingController handles the booking lifecycle endpoints.
type BookingController struct {
	store        store.Store
	achievements *services.AchievementService
}

// NewBookingController creates a booking controller.
func NewBookingController(s store.Store, achievements *services.AchievementService) *BookingController {
	return &BookingController{store: s, achievements: achievements}
}

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	LookerID      string                 `json:"looker_id" binding:"required"`
	ProviderID    string                 `json:"provider_id" binding:"required"`
	Services      []models.BookedService `json:"services" binding:"required,min=1,dive"`
	DateTime      string                 `json:"date_time" binding:"required"`
	CustomRequest string                 `json:"custom_request"`
}

// CreateBooking handles POST /api/v1/bookings - a looker books a provider
func (bc *BookingController) CreateBooking(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	// A booking can only be created on the caller's own behalf.
	if req.LookerID != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only create bookings for yourself")
		return
	}
	if req.ProviderID == caller {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot book yourself")
		return
	}

	if _, err := bc.store.GetUser(c.Request.Context(), req.ProviderID); err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "Provider profile not found")
		return
	}

	serviceIDs := make([]string, 0, len(req.Services))
	for _, s := range req.Services {
		serviceIDs = append(serviceIDs, s.ServiceID)
	}

	// Monetary fields start at zero; pricing is settled out of band.
	booking := models.Booking{
		LookerID:      req.LookerID,
		ProviderID:    req.ProviderID,
		Services:      req.Services,
		ServiceIDs:    serviceIDs,
		DateTime:      req.DateTime,
		CustomRequest: req.CustomRequest,
		Status:        models.BookingPendingConfirmation,
		PaymentStatus: models.PaymentPendingAuthorization,
	}

	if err := bc.store.CreateBooking(c.Request.Context(), &booking); err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	respondSuccess(c, http.StatusCreated, booking)
}

// GetBooking handles GET /api/v1/bookings/:id - participants only
func (bc *BookingController) GetBooking(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	booking, err := bc.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	if !booking.IsParticipant(caller) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant in this booking")
		return
	}

	respondSuccess(c, http.StatusOK, booking)
}

// ListUserBookings handles GET /api/v1/users/:id/bookings - a user's own
// bookings, optionally filtered by status and by role (side of the engagement)
func (bc *BookingController) ListUserBookings(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	if userID != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only list your own bookings")
		return
	}

	role := c.Query("role")
	if role != "" && role != models.RoleLooker && role != models.RoleProvider {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be Looker or Provider")
		return
	}

	bookings, err := bc.store.ListBookings(c.Request.Context(), store.BookingQuery{
		UserID: userID,
		Role:   role,
		Status: models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	respondSuccess(c, http.StatusOK, bookings)
}

// ConfirmBooking handles POST /api/v1/bookings/:id/confirm - provider accepts
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	bc.transition(c, models.OpConfirm)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel - either side backs out
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, models.OpCancel)
}

// CompleteBooking handles POST /api/v1/bookings/:id/complete - provider marks done
func (bc *BookingController) CompleteBooking(c *gin.Context) {
	bc.transition(c, models.OpComplete)
}

// transition runs one lifecycle operation: load the booking, ask the gate
// whether the caller may apply op from the observed status, then apply the
// result conditionally. A concurrent transition between the read and the
// write surfaces as a 409.
func (bc *BookingController) transition(c *gin.Context, op models.BookingOp) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	booking, err := bc.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	next, err := booking.Transition(op, caller)
	if err != nil {
		respondGateError(c, err)
		return
	}

	updated, err := bc.store.TransitionBooking(c.Request.Context(), booking.ID, booking.Status, next)
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	if op == models.OpComplete {
		bc.achievements.OnBookingCompleted(c.Request.Context(), updated.LookerID)
	}

	respondSuccess(c, http.StatusOK, updated)
}

// AuthorizePayment handles POST /api/v1/bookings/:id/authorize-payment - the
// looker authorizes payment. No gateway is wired; only the status moves.
func (bc *BookingController) AuthorizePayment(c *gin.Context) {
	bc.paymentTransition(c, models.PaymentAuthorized)
}

// CapturePayment handles POST /api/v1/bookings/:id/capture-payment - the
// provider captures an authorized payment.
func (bc *BookingController) CapturePayment(c *gin.Context) {
	bc.paymentTransition(c, models.PaymentCaptured)
}

func (bc *BookingController) paymentTransition(c *gin.Context, target models.PaymentStatus) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	booking, err := bc.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	next, err := booking.PaymentTransition(target, caller)
	if err != nil {
		respondGateError(c, err)
		return
	}

	updated, err := bc.store.TransitionPayment(c.Request.Context(), booking.ID, booking.PaymentStatus, next)
	if err != nil {
		respondStoreError(c, err, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}

	respondSuccess(c, http.StatusOK, updated)
}
