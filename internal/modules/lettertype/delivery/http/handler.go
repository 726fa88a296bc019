package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sukamaju.desa.id/portal/internal/modules/lettertype/dto"
	lettertype "sukamaju.desa.id/portal/internal/modules/lettertype/service"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
	"sukamaju.desa.id/portal/pkg/response"
	"sukamaju.desa.id/portal/pkg/validator"
)

type LetterTypeHandler struct {
	service lettertype.LetterTypeService
}

func NewLetterTypeHandler(service lettertype.LetterTypeService) *LetterTypeHandler {
	return &LetterTypeHandler{service: service}
}

func (h *LetterTypeHandler) CreateLetterType(c *gin.Context) {
	var req dto.CreateLetterTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	letterType, err := h.service.CreateLetterType(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, letterType)
}

func (h *LetterTypeHandler) GetAllLetterTypes(c *gin.Context) {
	var filter commonDto.LetterTypeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	letterTypes, err := h.service.GetAllLetterTypes(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, letterTypes)
}

func (h *LetterTypeHandler) GetLetterType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	letterType, err := h.service.GetLetterType(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, letterType)
}

func (h *LetterTypeHandler) UpdateLetterType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLetterTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	letterType, err := h.service.UpdateLetterType(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, letterType)
}

func (h *LetterTypeHandler) DeleteLetterType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLetterType(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "jenis surat berhasil dihapus"})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, false
	}
	return id, true
}
