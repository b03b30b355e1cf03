package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"returnit_backend/internal/middleware"
	"returnit_backend/internal/services"
	"returnit_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/image", h.UploadImage)
		uploads.DELETE("/image", h.DeleteImage)
	}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing 'file' form field"))
		return
	}

	uploaded, err := h.uploadService.SaveImage(c.Request.Context(), userID, header)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, uploaded)
}

func (h *UploadHandler) DeleteImage(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing 'key' query parameter"))
		return
	}

	if err := h.uploadService.DeleteImage(c.Request.Context(), key); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
