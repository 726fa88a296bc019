package dto

type CreateGalleryItemRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	ImageURL string `json:"image_url" binding:"required,url"`
	Category string `json:"category" binding:"omitempty,max=50"`
}
