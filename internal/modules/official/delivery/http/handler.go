package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sukamaju.desa.id/portal/internal/modules/official/dto"
	official "sukamaju.desa.id/portal/internal/modules/official/service"
	"sukamaju.desa.id/portal/pkg/response"
	"sukamaju.desa.id/portal/pkg/validator"
)

type OfficialHandler struct {
	service official.OfficialService
}

func NewOfficialHandler(service official.OfficialService) *OfficialHandler {
	return &OfficialHandler{service: service}
}

func (h *OfficialHandler) CreateOfficial(c *gin.Context) {
	var req dto.CreateOfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.CreateOfficial(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *OfficialHandler) GetAllOfficials(c *gin.Context) {
	officials, err := h.service.GetAllOfficials(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": officials})
}

func (h *OfficialHandler) UpdateOfficial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	var req dto.UpdateOfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.service.UpdateOfficial(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *OfficialHandler) DeleteOfficial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	if err := h.service.DeleteOfficial(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "perangkat desa berhasil dihapus"})
}
