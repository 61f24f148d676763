package routes

import (
	"net/http"
	"time"

	"voicebook/config"
	"voicebook/handlers"
	"voicebook/middleware"
	"voicebook/services/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle, registry *session.Registry) {
	api := r.Group("/api/sessions")
	{
		api.POST("", hb.CreateSessionHandler)

		// Everything past creation requires the session token.
		api.Use(middleware.SessionAuthMiddleware(registry))
		api.POST("/usage", hb.ReportUsageHandler)
		api.POST("/end", hb.EndSessionHandler)
	}
}

// RegisterCallRoutes registers the operation endpoints the voice agent calls
// during a live conversation.
func RegisterCallRoutes(r *gin.Engine, hb *handlers.HandlerBundle, registry *session.Registry) {
	api := r.Group("/api/call")
	{
		api.Use(middleware.SessionAuthMiddleware(registry))
		api.POST("/identify", hb.IdentifyHandler)
		api.GET("/slots", hb.FetchSlotsHandler)
		api.POST("/appointments", hb.BookHandler)
		api.GET("/appointments", hb.RetrieveHandler)
		api.DELETE("/appointments/:appointmentID", hb.CancelHandler)
		api.PUT("/appointments/:appointmentID", hb.ModifyHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for catalogue management.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/slots/seed", hb.SeedSlotsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Voicebook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, registry *session.Registry) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterSessionRoutes(r, hb, registry)
	RegisterCallRoutes(r, hb, registry)
	RegisterAdminRoutes(r, hb)
}
