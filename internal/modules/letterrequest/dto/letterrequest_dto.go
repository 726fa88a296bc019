package dto

import (
	"sukamaju.desa.id/portal/internal/entity"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

type SubmitLetterRequest struct {
	LetterTypeID string `json:"letterTypeId" binding:"required,uuid"`

	FullName   string `json:"fullName" binding:"required,max=100"`
	NIK        string `json:"nik" binding:"required,nik"`
	BirthPlace string `json:"birthPlace"`
	BirthDate  string `json:"birthDate"`
	Address    string `json:"address" binding:"required"`
	Phone      string `json:"phone" binding:"required,telepon"`
	Purpose    string `json:"purpose" binding:"required"`

	// Only for the "move" form template.
	DestinationAddress *string `json:"destinationAddress"`
	MoveReason         *string `json:"moveReason"`

	Details *entity.RequestDetails `json:"details"`

	IDPhotoURL        *string           `json:"idPhotoUrl"`
	FamilyRegisterURL *string           `json:"familyRegisterUrl"`
	CoverLetterURL    *string           `json:"coverLetterUrl"`
	ExtraDocuments    map[string]string `json:"extraDocuments"`
}

type UpdateLetterRequestInput struct {
	Status  *string `json:"status" binding:"omitempty,oneof=pending approved rejected revision"`
	Catatan *string `json:"catatan"`
}

type PaginatedLetterRequestResponse struct {
	Data []*entity.LetterRequest  `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

// DownloadResult carries the streamed PDF back to the delivery layer.
type DownloadResult struct {
	Filename string
	Content  []byte
}
