package dto

type CreateOfficialRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Position string  `json:"position" binding:"required,max=100"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
	Order    int     `json:"order"`
}

type UpdateOfficialRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Position *string `json:"position" binding:"omitempty,max=100"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,url"`
	Order    *int    `json:"order"`
}
