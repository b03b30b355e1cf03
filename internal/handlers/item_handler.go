package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/middleware"
	"returnit_backend/internal/models"
	"returnit_backend/internal/services"
	"returnit_backend/internal/services/dto"
	"returnit_backend/pkg/apperrors"
)

type ItemHandler struct {
	*BaseHandler
	itemService services.ItemService
}

func NewItemHandler(base *BaseHandler, itemService services.ItemService) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		itemService: itemService,
	}
}

func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("/report", h.ReportLost)
		items.POST("/found", h.ReportFound)
		items.GET("/mine", h.ListMine)
		items.GET("/:id", h.Get)
		items.DELETE("/:id", h.Delete)
	}
}

func (h *ItemHandler) ReportLost(c *gin.Context) {
	h.report(c, models.ItemKindLost)
}

func (h *ItemHandler) ReportFound(c *gin.Context) {
	h.report(c, models.ItemKindFound)
}

func (h *ItemHandler) report(c *gin.Context, kind models.ItemKind) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.itemService.Report(c.Request.Context(), kind, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	kind, ok := h.parseKind(c)
	if !ok {
		return
	}

	items, err := h.itemService.ListMine(c.Request.Context(), kind, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ItemHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	kind, ok := h.parseKind(c)
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	kind, ok := h.parseKind(c)
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), kind, c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// parseKind reads the ?type= query param. Lost is the default because the
// web client browses lost reports unless told otherwise.
func (h *ItemHandler) parseKind(c *gin.Context) (models.ItemKind, bool) {
	switch c.DefaultQuery("type", string(models.ItemKindLost)) {
	case string(models.ItemKindLost):
		return models.ItemKindLost, true
	case string(models.ItemKindFound):
		return models.ItemKindFound, true
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Query parameter 'type' must be 'lost' or 'found'"))
		return "", false
	}
}
