package dto

import "sukamaju.desa.id/portal/internal/entity"

type AdminLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type WargaLoginInput struct {
	NIK      string `json:"nik" binding:"required,nik"`
	Phone    string `json:"phone" binding:"required,telepon"`
	Password string `json:"password"`
}

type SetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
	Role        *entity.Role `json:"role"`
}
