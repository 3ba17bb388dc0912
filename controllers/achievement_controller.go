package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cognitonow/beauty-book-next/store"
)

// AchievementController exposes the badge catalog and earned achievements.
type AchievementController struct {
	store store.Store
}

// NewAchievementController creates an achievement controller.
func NewAchievementController(s store.Store) *AchievementController {
	return &AchievementController{store: s}
}

// ListBadges handles GET /api/v1/badges - the public badge catalog
func (ac *AchievementController) ListBadges(c *gin.Context) {
	badges, err := ac.store.ListBadges(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "BADGE_NOT_FOUND", "Badge not found")
		return
	}

	respondSuccess(c, http.StatusOK, badges)
}

// ListUserAchievements handles GET /api/v1/users/:id/achievements - self only
func (ac *AchievementController) ListUserAchievements(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if c.Param("id") != caller {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only list your own achievements")
		return
	}

	achievements, err := ac.store.ListUserAchievements(c.Request.Context(), caller)
	if err != nil {
		respondStoreError(c, err, "USER_NOT_FOUND", "User profile not found")
		return
	}

	respondSuccess(c, http.StatusOK, achievements)
}
