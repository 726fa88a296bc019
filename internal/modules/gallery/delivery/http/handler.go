package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sukamaju.desa.id/portal/internal/modules/gallery/dto"
	gallery "sukamaju.desa.id/portal/internal/modules/gallery/service"
	"sukamaju.desa.id/portal/pkg/response"
	"sukamaju.desa.id/portal/pkg/validator"
)

type GalleryHandler struct {
	service gallery.GalleryService
}

func NewGalleryHandler(service gallery.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *GalleryHandler) GetAllItems(c *gin.Context) {
	items, err := h.service.GetAllItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *GalleryHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "foto berhasil dihapus"})
}
