package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cognitonow/beauty-book-next/controllers"
	"github.com/cognitonow/beauty-book-next/middleware"
	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/store"
)

// application bundles the injected dependencies the router needs. Tests build
// one around an in-memory store and a fake verifier.
type application struct {
	db       *gorm.DB
	store    store.Store
	verifier middleware.TokenVerifier
	s3       services.S3Interface
}

// setupRouter wires middleware and all routes onto a fresh engine.
func setupRouter(app *application) *gin.Engine {
	middleware.RegisterMetrics()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(requestLogger()))
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "METHOD_NOT_ALLOWED",
				"message": "Method not allowed",
			},
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Route not found",
			},
		})
	})

	router.GET("/healthz", healthCheck(app.db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	achievements := services.NewAchievementService(app.store)

	bookings := controllers.NewBookingController(app.store, achievements)
	users := controllers.NewUserController(app.store)
	catalog := controllers.NewServiceController(app.store)
	reviews := controllers.NewReviewController(app.store, achievements)
	marketplace := controllers.NewMarketplaceController(app.store)
	messaging := controllers.NewMessageController(app.store)
	badges := controllers.NewAchievementController(app.store)
	uploads := controllers.NewUploadController(app.s3)

	v1 := router.Group("/api/v1")

	// The badge catalog is the one public v1 route.
	v1.GET("/badges", badges.ListBadges)

	authed := v1.Group("")
	authed.Use(middleware.Authenticate(app.verifier))
	{
		authed.POST("/users", users.CreateUser)
		authed.GET("/users/:id", users.GetUser)
		authed.PUT("/users/:id", users.UpdateUser)
		authed.DELETE("/users/:id", users.DeleteUser)
		authed.GET("/users/:id/favorites", users.ListFavorites)
		authed.POST("/users/:id/favorites", users.AddFavorite)
		authed.DELETE("/users/:id/favorites/:providerId", users.RemoveFavorite)
		authed.GET("/users/:id/bookings", bookings.ListUserBookings)
		authed.GET("/users/:id/achievements", badges.ListUserAchievements)

		authed.POST("/bookings", bookings.CreateBooking)
		authed.GET("/bookings/:id", bookings.GetBooking)
		authed.POST("/bookings/:id/confirm", bookings.ConfirmBooking)
		authed.POST("/bookings/:id/cancel", bookings.CancelBooking)
		authed.POST("/bookings/:id/complete", bookings.CompleteBooking)
		authed.POST("/bookings/:id/authorize-payment", bookings.AuthorizePayment)
		authed.POST("/bookings/:id/capture-payment", bookings.CapturePayment)

		authed.GET("/services", catalog.ListServices)
		authed.GET("/services/:id", catalog.GetService)
		authed.POST("/services", catalog.CreateService)
		authed.PUT("/services/:id", catalog.UpdateService)
		authed.DELETE("/services/:id", catalog.DeleteService)

		authed.POST("/reviews", reviews.CreateReview)
		authed.GET("/reviews/:id", reviews.GetReview)
		authed.GET("/providers/:id/reviews", reviews.ListProviderReviews)

		authed.POST("/marketplace-requests", marketplace.CreateRequest)
		authed.GET("/marketplace-requests", marketplace.ListRequests)
		authed.PUT("/marketplace-requests/:id", marketplace.UpdateRequest)

		authed.POST("/conversations", messaging.CreateConversation)
		authed.GET("/conversations", messaging.ListConversations)
		authed.GET("/conversations/:id", messaging.GetConversation)
		authed.GET("/conversations/:id/messages", messaging.ListMessages)
		authed.POST("/conversations/:id/messages", messaging.CreateMessage)

		authed.POST("/uploads", uploads.UploadImage)
	}

	return router
}

// healthCheck pings the database so load balancers see real readiness.
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.Ping()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "DATABASE_ERROR",
						"message": "Database connection failed",
					},
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"status": "ok"},
		})
	}
}
