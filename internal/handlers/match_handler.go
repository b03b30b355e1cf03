package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/middleware"
	"returnit_backend/internal/services"
	"returnit_backend/pkg/apperrors"
)

type MatchHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchHandler(base *BaseHandler, matchingService services.MatchingService) *MatchHandler {
	return &MatchHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchHandler) RegisterRoutes(r *gin.RouterGroup) {
	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.GET("/:userId", h.MatchesForUser)
	}
}

// MatchesForUser ranks the caller's lost reports against every found report.
// Users may only request their own matches.
func (h *MatchHandler) MatchesForUser(c *gin.Context) {
	authUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	userID := c.Param("userId")
	if userID != authUserID {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Cannot request matches for another user"))
		return
	}

	groups, err := h.matchingService.MatchUserItems(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}
