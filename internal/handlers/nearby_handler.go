package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/services"
	"returnit_backend/internal/services/dto"
)

type NearbyHandler struct {
	*BaseHandler
	nearbyService services.NearbyService
}

func NewNearbyHandler(base *BaseHandler, nearbyService services.NearbyService) *NearbyHandler {
	return &NearbyHandler{
		BaseHandler:   base,
		nearbyService: nearbyService,
	}
}

func (h *NearbyHandler) RegisterRoutes(r *gin.RouterGroup) {
	nearby := r.Group("/nearby")
	{
		nearby.GET("/items", h.Items)
	}
}

func (h *NearbyHandler) Items(c *gin.Context) {
	var query dto.NearbyQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	radius := services.DefaultNearbyRadiusKm
	if query.RadiusKm > 0 {
		radius = query.RadiusKm
	}

	items, err := h.nearbyService.ItemsWithin(c.Request.Context(), *query.Latitude, *query.Longitude, radius)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "radiusKm": radius})
}
