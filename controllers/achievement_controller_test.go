package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

func newAchievementRouter(s store.Store, caller string) *gin.Engine {
	router := setupTestRouter()
	ac := NewAchievementController(s)

	// The badge catalog is public; achievements require auth.
	router.GET("/badges", ac.ListBadges)
	authed := router.Group("", mockAuthMiddleware(caller))
	authed.GET("/users/:id/achievements", ac.ListUserAchievements)
	return router
}

func TestListBadges(t *testing.T) {
	s := setupTestStore(t)

	w := doJSON(newAchievementRouter(s, ""), http.MethodGet, "/badges", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var badges []models.Badge
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &badges))
	assert.Len(t, badges, len(models.DefaultBadges()))
}

func TestListUserAchievements(t *testing.T) {
	s := setupTestStore(t)
	seedUser(t, s, "u1", "Lena", models.RoleLooker)
	require.NoError(t, s.AwardBadge(context.Background(), "u1", "first_booking"))

	// Only the owner may list their achievements.
	w := doJSON(newAchievementRouter(s, "u2"), http.MethodGet, "/users/u1/achievements", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newAchievementRouter(s, "u1"), http.MethodGet, "/users/u1/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var achievements []models.Achievement
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &achievements))
	require.Len(t, achievements, 1)
	assert.Equal(t, "first_booking", achievements[0].BadgeID)
	assert.Equal(t, "First Booking", achievements[0].Badge.Name)
}
