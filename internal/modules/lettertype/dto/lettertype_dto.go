package dto

type CreateLetterTypeRequest struct {
	Code         string `json:"code" binding:"required,max=20"`
	Name         string `json:"name" binding:"required,max=150"`
	Description  string `json:"description"`
	FormTemplate string `json:"formTemplate" binding:"omitempty,oneof=general domicile move"`
	Active       *bool  `json:"active"`
	Order        int    `json:"order"`
	Requirements string `json:"requirements"`
	Notes        string `json:"notes"`
}

type UpdateLetterTypeRequest struct {
	Code         *string `json:"code" binding:"omitempty,max=20"`
	Name         *string `json:"name" binding:"omitempty,max=150"`
	Description  *string `json:"description"`
	FormTemplate *string `json:"formTemplate" binding:"omitempty,oneof=general domicile move"`
	Active       *bool   `json:"active"`
	Order        *int    `json:"order"`
	Requirements *string `json:"requirements"`
	Notes        *string `json:"notes"`
}
