package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/store"
)

// setupTestStore builds a store over an in-memory SQLite database with the
// badge catalog seeded, mirroring what main does at startup.
func setupTestStore(t *testing.T) store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, store.AutoMigrate(db), "failed to migrate test database")

	s := store.New(db)
	require.NoError(t, s.SeedBadges(context.Background(), models.DefaultBadges()))
	return s
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware sets the verified caller identity the way the real
// Authenticate middleware does.
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// seedUser inserts a profile directly through the store.
func seedUser(t *testing.T, s store.Store, id, name, role string) *models.User {
	t.Helper()

	user := &models.User{ID: id, Name: name, Role: role}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// seedBooking inserts a booking directly through the store.
func seedBooking(t *testing.T, s store.Store, lookerID, providerID string, status models.BookingStatus) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		LookerID:   lookerID,
		ProviderID: providerID,
		Services:   []models.BookedService{{ServiceID: "svc-1"}},
		ServiceIDs: []string{"svc-1"},
		DateTime:   "2026-09-12T10:00:00Z",
		Status:     status,
	}
	require.NoError(t, s.CreateBooking(context.Background(), booking))
	return booking
}

// doJSON performs a JSON request against the router and returns the recorder.
func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response envelope.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "response is not the standard envelope: %s", w.Body.String())
	return env
}

// errorCode returns the error code of a failed response, failing the test if
// the response was a success.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

// newAchievements builds the achievement service the booking and review
// controllers expect.
func newAchievements(s store.Store) *services.AchievementService {
	return services.NewAchievementService(s)
}
