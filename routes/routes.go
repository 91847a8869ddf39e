package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/sms-sub001/handlers"
)

// RegisterRoutes wires all optimizer endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.OptimizerHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api/optimizer")
	{
		api.POST("/booking", h.OptimizeBooking)
		api.GET("/no-show/:customerID", h.PredictNoShow)
		api.GET("/demand", h.PredictDemand)
		api.GET("/availability", h.GetAvailabilityAnalysis)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
