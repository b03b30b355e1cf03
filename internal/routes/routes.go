package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/handlers"
)

// RegisterRoutes mounts every handler under /api/v1.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	h.AuthHandler.RegisterRoutes(v1)
	h.ItemHandler.RegisterRoutes(v1)
	h.MatchHandler.RegisterRoutes(v1)
	h.NearbyHandler.RegisterRoutes(v1)
	h.ContactHandler.RegisterRoutes(v1)
	h.UploadHandler.RegisterRoutes(v1)
}
