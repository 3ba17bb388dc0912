package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

// MarketplaceController handles lookers' open marketplace requests.
type MarketplaceController struct {
	store store.Store
}

// NewMarketplaceController creates a marketplace controller.
func NewMarketplaceController(s store.Store) *MarketplaceController {
	return &MarketplaceController{store: s}
}

// CreateMarketplaceRequestBody represents the request body for submitting a request
type CreateMarketplaceRequestBody struct {
	ServiceName       string `json:"service_name" binding:"required"`
	Area              string `json:"area" binding:"required"`
	Notes             string `json:"notes"`
	NotificationOptIn bool   `json:"notification_opt_in"`
}

// UpdateMarketplaceRequestBody represents the request body for updating a request's status
type UpdateMarketplaceRequestBody struct {
	Status            models.RequestStatus `json:"status" binding:"required"`
	MatchedProviderID string               `json:"matched_provider_id"`
}

// CreateRequest handles POST /api/v1/marketplace-requests - lookers only
func (mc *MarketplaceController) CreateRequest(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	user, err := mc.store.GetUser(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}
	if user.Role != models.RoleLooker {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only lookers can submit marketplace requests")
		return
	}

	var req CreateMarketplaceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	request := models.MarketplaceRequest{
		LookerID:          caller,
		ServiceName:       req.ServiceName,
		Area:              req.Area,
		Notes:             req.Notes,
		NotificationOptIn: req.NotificationOptIn,
		Status:            models.RequestPending,
	}

	if err := mc.store.CreateMarketplaceRequest(c.Request.Context(), &request); err != nil {
		respondStoreError(c, err, "REQUEST_NOT_FOUND", "Marketplace request not found")
		return
	}

	respondSuccess(c, http.StatusCreated, request)
}

// ListRequests handles GET /api/v1/marketplace-requests?status=&area= -
// providers and admins browse the open board.
func (mc *MarketplaceController) ListRequests(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	user, err := mc.store.GetUser(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}
	if user.Role != models.RoleProvider && user.Role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only providers and admins can browse marketplace requests")
		return
	}

	status := models.RequestStatus(c.Query("status"))
	if status != "" && !models.ValidRequestStatus(status) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown request status")
		return
	}

	requests, err := mc.store.ListMarketplaceRequests(c.Request.Context(), status, c.Query("area"))
	if err != nil {
		respondStoreError(c, err, "REQUEST_NOT_FOUND", "Marketplace request not found")
		return
	}

	respondSuccess(c, http.StatusOK, requests)
}

// UpdateRequest handles PUT /api/v1/marketplace-requests/:id - providers and
// admins move a request through its statuses. Marking a request matched
// records the matching provider.
func (mc *MarketplaceController) UpdateRequest(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	user, err := mc.store.GetUser(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}
	if user.Role != models.RoleProvider && user.Role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only providers and admins can update marketplace requests")
		return
	}

	var req UpdateMarketplaceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if !models.ValidRequestStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown request status")
		return
	}

	matchedProviderID := ""
	if req.Status == models.RequestMatched {
		matchedProviderID = req.MatchedProviderID
		if matchedProviderID == "" && user.Role == models.RoleProvider {
			matchedProviderID = caller
		}
	}

	updated, err := mc.store.UpdateMarketplaceRequestStatus(c.Request.Context(), c.Param("id"), req.Status, matchedProviderID)
	if err != nil {
		respondStoreError(c, err, "REQUEST_NOT_FOUND", "Marketplace request not found")
		return
	}

	respondSuccess(c, http.StatusOK, updated)
}
