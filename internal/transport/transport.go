package transport

import (
	"time"

	"github.com/firufinds/match-notifier/internal/service"
	"github.com/firufinds/match-notifier/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(usecase service.CoincidenceUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Timeout(30))

	handler := NewCoincidenceHandler(usecase)

	// Same path shape the platform's webhook invokes on the hosted function.
	router.POST("/functions/v1/send-match-notification", handler.SendMatchNotification)

	api := router.Group("/api/v1")
	{
		api.POST("/tokens", handler.RegisterToken)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   "match-notification-service",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return router
}
