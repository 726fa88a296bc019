package dto

import "github.com/google/uuid"

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type IDUri struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type SlugUri struct {
	Slug string `uri:"slug" binding:"required"`
}

type LetterTypeFilter struct {
	Active       *bool  `form:"active"`
	FormTemplate string `form:"formTemplate"`
}

type LetterRequestFilter struct {
	Status       string `form:"status"`
	LetterTypeID string `form:"letterTypeId"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

type NewsFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type GalleryFilter struct {
	Category string `form:"category"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type GenerateLetterResponse struct {
	LetterURL string `json:"letterUrl"`
	Filename  string `json:"filename"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}
