package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

// UserController handles profile and favorite-provider endpoints.
type UserController struct {
	store store.Store
}

// NewUserController creates a user controller.
func NewUserController(s store.Store) *UserController {
	return &UserController{store: s}
}

// CreateUserRequest represents the request body for registering a profile
type CreateUserRequest struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role" binding:"omitempty,oneof=Looker Provider"`
	AvatarURL   string   `json:"avatar_url"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
}

// UpdateUserRequest is the canonical profile update schema. Every field is
// optional; absent fields are left untouched. Role and identity are not
// updatable through this endpoint.
type UpdateUserRequest struct {
	Name        *string   `json:"name"`
	AvatarURL   *string   `json:"avatar_url"`
	PhoneNumber *string   `json:"phone_number"`
	Address     *string   `json:"address"`
	Bio         *string   `json:"bio"`
	Skills      *[]string `json:"skills"`
}

// AddFavoriteRequest represents the request body for adding a favorite provider
type AddFavoriteRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

// CreateUser handles POST /api/v1/users - registers the caller's profile.
// The profile id is the verified token subject, never taken from the body.
func (uc *UserController) CreateUser(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleLooker
	}

	user := models.User{
		ID:          caller,
		Name:        req.Name,
		Role:        role,
		AvatarURL:   req.AvatarURL,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Bio:         req.Bio,
		Skills:      req.Skills,
	}

	if err := uc.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "CONFLICT", "A profile already exists for this account")
			return
		}
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	user, err := uc.store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, user)
}

// UpdateUser handles PUT /api/v1/users/:id - callers update only their own
// profile, and only the canonical fields.
func (uc *UserController) UpdateUser(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only update your own profile")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name cannot be empty")
			return
		}
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Skills != nil {
		updates["skills"] = *req.Skills
	}

	user, err := uc.store.UpdateUser(c.Request.Context(), caller, updates)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/:id - self only, soft delete
func (uc *UserController) DeleteUser(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only delete your own profile")
		return
	}

	if err := uc.store.DeleteUser(c.Request.Context(), caller); err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// AddFavorite handles POST /api/v1/users/:id/favorites - adds a provider to
// the caller's favorites. Adding an existing favorite is a 409.
func (uc *UserController) AddFavorite(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own favorites")
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := uc.store.AddFavoriteProvider(c.Request.Context(), caller, req.ProviderID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "ALREADY_FAVORITE", "Provider is already in your favorites")
			return
		}
		respondStoreError(c, err, "USER_NOT_FOUND", "Provider profile not found")
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"provider_id": req.ProviderID})
}

// RemoveFavorite handles DELETE /api/v1/users/:id/favorites/:providerId.
// Removing a provider that is not favorited is a 404.
func (uc *UserController) RemoveFavorite(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own favorites")
		return
	}

	providerID := c.Param("providerId")
	if err := uc.store.RemoveFavoriteProvider(c.Request.Context(), caller, providerID); err != nil {
		respondStoreError(c, err, "FAVORITE_NOT_FOUND", "Provider is not in your favorites")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"provider_id": providerID})
}

// ListFavorites handles GET /api/v1/users/:id/favorites - the caller's own
// favorite provider ids.
func (uc *UserController) ListFavorites(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only list your own favorites")
		return
	}

	ids, err := uc.store.ListFavoriteProviders(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, ids)
}
