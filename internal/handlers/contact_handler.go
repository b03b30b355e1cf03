package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/middleware"
	"returnit_backend/internal/services"
	"returnit_backend/internal/services/dto"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	contact := r.Group("/contact")
	contact.Use(middleware.AuthMiddleware())
	{
		contact.POST("", h.ContactOwner)
	}
}

func (h *ContactHandler) ContactOwner(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.contactService.ContactOwner(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent to the item owner"})
}
