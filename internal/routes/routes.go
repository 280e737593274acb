package routes

import (
	"net/http"

	"arizabot/internal/handlers"
	"arizabot/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	appHandler *handlers.ApplicationHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authHandler.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware([]byte(jwtSecret)))

	api := r.Group("/api")
	{
		api.GET("/applications", appHandler.List)
		api.GET("/stats", appHandler.Stats)
		api.GET("/search", appHandler.Search)
	}
	r.GET("/download/:id", appHandler.Download)
	r.GET("/export", appHandler.ExportXLSX)

	return r
}
