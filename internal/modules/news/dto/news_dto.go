package dto

import (
	"sukamaju.desa.id/portal/internal/entity"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

type CreateNewsRequest struct {
	Title     string  `json:"title" binding:"required,max=200"`
	Content   string  `json:"content" binding:"required"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

type UpdateNewsRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	Content   *string `json:"content"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

type PaginatedNewsResponse struct {
	Data []*entity.News           `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
