package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/letterrequest/dto"
	letterrequest "sukamaju.desa.id/portal/internal/modules/letterrequest/service"
	userRepo "sukamaju.desa.id/portal/internal/modules/user/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
	"sukamaju.desa.id/portal/pkg/response"
	"sukamaju.desa.id/portal/pkg/validator"
)

type LetterRequestHandler struct {
	service  letterrequest.LetterRequestService
	userRepo userRepo.UserRepository
}

func NewLetterRequestHandler(service letterrequest.LetterRequestService, userRepo userRepo.UserRepository) *LetterRequestHandler {
	return &LetterRequestHandler{
		service:  service,
		userRepo: userRepo,
	}
}

// Submit handles the public citizen submission form.
func (h *LetterRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *LetterRequestHandler) GetAll(c *gin.Context) {
	var filter commonDto.LetterRequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *LetterRequestHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	request, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *LetterRequestHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input dto.UpdateLetterRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.service.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *LetterRequestHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pengajuan surat berhasil dihapus"})
}

// GenerateLetter is the admin action that renders, stores and records the
// PDF letter. The acting admin comes from the RequireAdmin middleware.
func (h *LetterRequestHandler) GenerateLetter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	value, exists := c.Get("user")
	admin, ok := value.(*entity.User)
	if !exists || !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	adminName := admin.FullName
	if adminName == "" && admin.Username != nil {
		adminName = *admin.Username
	}

	result, err := h.service.GenerateLetter(c.Request.Context(), id, adminName)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMine returns the authenticated citizen's own requests, newest first.
func (h *LetterRequestHandler) ListMine(c *gin.Context) {
	caller, err := h.currentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if caller.NIK == nil {
		response.ResponseError(c, apperror.ErrForbidden)
		return
	}

	requests, err := h.service.ListMine(c.Request.Context(), *caller.NIK)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// Download proxies the stored PDF back to the browser.
func (h *LetterRequestHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	caller, err := h.currentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.Download(c.Request.Context(), id, caller)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *LetterRequestHandler) currentUser(c *gin.Context) (*entity.User, error) {
	userID := c.GetString("user_id")
	if userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, false
	}
	return id, true
}
