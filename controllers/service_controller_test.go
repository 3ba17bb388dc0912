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

func newServiceRouter(s store.Store, caller string) *gin.Engine {
	router := setupTestRouter()
	sc := NewServiceController(s)

	authed := router.Group("", mockAuthMiddleware(caller))
	authed.GET("/services", sc.ListServices)
	authed.GET("/services/:id", sc.GetService)
	authed.POST("/services", sc.CreateService)
	authed.PUT("/services/:id", sc.UpdateService)
	authed.DELETE("/services/:id", sc.DeleteService)
	return router
}

func TestCreateService(t *testing.T) {
	s := setupTestStore(t)
	seedUser(t, s, "looker-1", "Lena", models.RoleLooker)
	seedUser(t, s, "provider-1", "Priya", models.RoleProvider)

	tests := []struct {
		name           string
		caller         string
		body           gin.H
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "provider creates a service",
			caller: "provider-1",
			body: gin.H{
				"name":     "Gel manicure",
				"price":    45.0,
				"duration": 60,
				"category": "nails",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "lookers cannot create services",
			caller:         "looker-1",
			body:           gin.H{"name": "Gel manicure", "price": 45.0, "duration": 60, "category": "nails"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "price must be positive",
			caller:         "provider-1",
			body:           gin.H{"name": "Gel manicure", "price": -5.0, "duration": 60, "category": "nails"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "duration must be positive",
			caller:         "provider-1",
			body:           gin.H{"name": "Gel manicure", "price": 45.0, "duration": 0, "category": "nails"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(newServiceRouter(s, tt.caller), http.MethodPost, "/services", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
				return
			}

			var service models.Service
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &service))
			assert.Equal(t, "provider-1", service.ProviderID, "ownership comes from the caller")
			assert.NotEmpty(t, service.ID)
		})
	}
}

func TestListServicesFilters(t *testing.T) {
	s := setupTestStore(t)

	for _, service := range []*models.Service{
		{ProviderID: "p1", Name: "Gel manicure", Price: 45, Duration: 60, Category: "nails"},
		{ProviderID: "p1", Name: "Balayage", Price: 120, Duration: 180, Category: "hair"},
		{ProviderID: "p2", Name: "Acrylic set", Price: 55, Duration: 90, Category: "nails"},
	} {
		require.NoError(t, s.CreateService(context.Background(), service))
	}

	router := newServiceRouter(s, "anyone")

	w := doJSON(router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var services []models.Service
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &services))
	assert.Len(t, services, 3)

	w = doJSON(router, http.MethodGet, "/services?providerId=p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &services))
	assert.Len(t, services, 2)

	w = doJSON(router, http.MethodGet, "/services?providerId=p1&category=nails", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Gel manicure", services[0].Name)
}

func TestUpdateServiceOwnerOnly(t *testing.T) {
	s := setupTestStore(t)
	service := &models.Service{ProviderID: "p1", Name: "Gel manicure", Price: 45, Duration: 60, Category: "nails"}
	require.NoError(t, s.CreateService(context.Background(), service))

	w := doJSON(newServiceRouter(s, "p2"), http.MethodPut, "/services/"+service.ID, gin.H{"price": 50.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newServiceRouter(s, "p1"), http.MethodPut, "/services/"+service.ID, gin.H{"price": 50.0, "description": "Includes removal"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Service
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, 50.0, updated.Price)
	assert.Equal(t, "Includes removal", updated.Description)
	assert.Equal(t, "Gel manicure", updated.Name)

	w = doJSON(newServiceRouter(s, "p1"), http.MethodPut, "/services/"+service.ID, gin.H{"price": 0.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteServiceOwnerOnly(t *testing.T) {
	s := setupTestStore(t)
	service := &models.Service{ProviderID: "p1", Name: "Gel manicure", Price: 45, Duration: 60, Category: "nails"}
	require.NoError(t, s.CreateService(context.Background(), service))

	w := doJSON(newServiceRouter(s, "p2"), http.MethodDelete, "/services/"+service.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newServiceRouter(s, "p1"), http.MethodDelete, "/services/"+service.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(newServiceRouter(s, "p1"), http.MethodGet, "/services/"+service.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SERVICE_NOT_FOUND", errorCode(t, w))
}
