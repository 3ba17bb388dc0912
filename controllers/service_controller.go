package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

// ServiceController handles the provider service catalog.
type ServiceController struct {
	store store.Store
}

// NewServiceController creates a service controller.
func NewServiceController(s store.Store) *ServiceController {
	return &ServiceController{store: s}
}

// CreateServiceRequest represents the request body for creating a catalog entry
type CreateServiceRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	Duration       int      `json:"duration" binding:"required,gt=0"`
	Category       string   `json:"category" binding:"required"`
	ImageURL       string   `json:"image_url"`
	AvailableDays  []string `json:"available_days"`
	AvailableTimes []string `json:"available_times"`
}

// UpdateServiceRequest allows partial updates; absent fields are left untouched.
type UpdateServiceRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Price          *float64  `json:"price"`
	Duration       *int      `json:"duration"`
	Category       *string   `json:"category"`
	ImageURL       *string   `json:"image_url"`
	AvailableDays  *[]string `json:"available_days"`
	AvailableTimes *[]string `json:"available_times"`
}

// CreateService handles POST /api/v1/services - providers only, owned by the caller
func (sc *ServiceController) CreateService(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	user, err := sc.store.GetUser(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}
	if user.Role != models.RoleProvider {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only providers can create services")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	service := models.Service{
		ProviderID:     caller,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Duration:       req.Duration,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		AvailableDays:  req.AvailableDays,
		AvailableTimes: req.AvailableTimes,
	}

	if err := sc.store.CreateService(c.Request.Context(), &service); err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	respondSuccess(c, http.StatusCreated, service)
}

// GetService handles GET /api/v1/services/:id
func (sc *ServiceController) GetService(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	service, err := sc.store.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	respondSuccess(c, http.StatusOK, service)
}

// ListServices handles GET /api/v1/services?providerId=&category=
func (sc *ServiceController) ListServices(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	services, err := sc.store.ListServices(c.Request.Context(), c.Query("providerId"), c.Query("category"))
	if err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	respondSuccess(c, http.StatusOK, services)
}

// UpdateService handles PUT /api/v1/services/:id - owner only
func (sc *ServiceController) UpdateService(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	service, err := sc.store.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}
	if service.ProviderID != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only update your own services")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "price must be greater than zero")
			return
		}
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be greater than zero")
			return
		}
		updates["duration"] = *req.Duration
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.AvailableDays != nil {
		updates["available_days"] = *req.AvailableDays
	}
	if req.AvailableTimes != nil {
		updates["available_times"] = *req.AvailableTimes
	}

	updated, err := sc.store.UpdateService(c.Request.Context(), service.ID, updates)
	if err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	respondSuccess(c, http.StatusOK, updated)
}

// DeleteService handles DELETE /api/v1/services/:id - owner only
func (sc *ServiceController) DeleteService(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	service, err := sc.store.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}
	if service.ProviderID != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only delete your own services")
		return
	}

	if err := sc.store.DeleteService(c.Request.Context(), service.ID); err != nil {
		respondStoreError(c, err, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
