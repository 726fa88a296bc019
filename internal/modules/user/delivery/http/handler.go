package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sukamaju.desa.id/portal/internal/modules/user/dto"
	user "sukamaju.desa.id/portal/internal/modules/user/service"
	"sukamaju.desa.id/portal/pkg/response"
	"sukamaju.desa.id/portal/pkg/validator"
)

type AuthHandler struct {
	adminService   user.AuthService
	citizenService user.CitizenAuthService
}

func NewAuthHandler(adminService user.AuthService, citizenService user.CitizenAuthService) *AuthHandler {
	return &AuthHandler{
		adminService:   adminService,
		citizenService: citizenService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.adminService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) WargaLogin(c *gin.Context) {
	var input dto.WargaLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.citizenService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) SetPassword(c *gin.Context) {
	var input dto.SetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.citizenService.SetPassword(c.Request.Context(), userID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password berhasil disimpan"})
}
