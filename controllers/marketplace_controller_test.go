package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

func newMarketplaceRouter(s store.Store, caller string) *gin.Engine {
	router := setupTestRouter()
	mc := NewMarketplaceController(s)

	authed := router.Group("", mockAuthMiddleware(caller))
	authed.POST("/marketplace-requests", mc.CreateRequest)
	authed.GET("/marketplace-requests", mc.ListRequests)
	authed.PUT("/marketplace-requests/:id", mc.UpdateRequest)
	return router
}

func TestCreateMarketplaceRequest(t *testing.T) {
	s := setupTestStore(t)
	seedUser(t, s, "looker-1", "Lena", models.RoleLooker)
	seedUser(t, s, "provider-1", "Priya", models.RoleProvider)

	body := gin.H{
		"service_name":        "Gel manicure",
		"area":                "Dublin 2",
		"notes":               "Weekend preferred",
		"notification_opt_in": true,
	}

	// Providers cannot post to the request board.
	w := doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodPost, "/marketplace-requests", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A caller with no profile cannot post either.
	w = doJSON(newMarketplaceRouter(s, "ghost"), http.MethodPost, "/marketplace-requests", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(newMarketplaceRouter(s, "looker-1"), http.MethodPost, "/marketplace-requests", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var request models.MarketplaceRequest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &request))
	assert.Equal(t, "looker-1", request.LookerID)
	assert.Equal(t, models.RequestPending, request.Status)
	assert.True(t, request.NotificationOptIn)
}

func TestListMarketplaceRequests(t *testing.T) {
	s := setupTestStore(t)
	seedUser(t, s, "looker-1", "Lena", models.RoleLooker)
	seedUser(t, s, "provider-1", "Priya", models.RoleProvider)

	for _, body := range []gin.H{
		{"service_name": "Gel manicure", "area": "Dublin 2"},
		{"service_name": "Balayage", "area": "Dublin 4"},
	} {
		w := doJSON(newMarketplaceRouter(s, "looker-1"), http.MethodPost, "/marketplace-requests", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Lookers cannot browse the board.
	w := doJSON(newMarketplaceRouter(s, "looker-1"), http.MethodGet, "/marketplace-requests", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodGet, "/marketplace-requests?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var requests []models.MarketplaceRequest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &requests))
	assert.Len(t, requests, 2)

	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodGet, "/marketplace-requests?area=Dublin+4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, "Balayage", requests[0].ServiceName)

	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodGet, "/marketplace-requests?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMarketplaceRequest(t *testing.T) {
	s := setupTestStore(t)
	seedUser(t, s, "looker-1", "Lena", models.RoleLooker)
	seedUser(t, s, "provider-1", "Priya", models.RoleProvider)

	w := doJSON(newMarketplaceRouter(s, "looker-1"), http.MethodPost, "/marketplace-requests", gin.H{
		"service_name": "Gel manicure",
		"area":         "Dublin 2",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var request models.MarketplaceRequest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &request))

	// Lookers cannot move requests through statuses.
	w = doJSON(newMarketplaceRouter(s, "looker-1"), http.MethodPut, "/marketplace-requests/"+request.ID, gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodPut, "/marketplace-requests/"+request.ID, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Marking a request matched records the matching provider.
	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodPut, "/marketplace-requests/"+request.ID, gin.H{"status": "matched"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.MarketplaceRequest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, models.RequestMatched, updated.Status)
	require.NotNil(t, updated.MatchedProviderID)
	assert.Equal(t, "provider-1", *updated.MatchedProviderID)

	w = doJSON(newMarketplaceRouter(s, "provider-1"), http.MethodPut, "/marketplace-requests/missing", gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "REQUEST_NOT_FOUND", errorCode(t, w))
}
