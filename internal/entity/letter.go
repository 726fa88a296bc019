package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form templates decide which extra fields the submission form asks for.
const (
	FormTemplateGeneral  = "general"
	FormTemplateDomicile = "domicile"
	FormTemplateMove     = "move"
)

// Request statuses. Any admin may move a request to any of these at any
// time; there is no enforced transition graph.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusRevision = "revision"
)

// LetterType is the admin-managed catalog of letter kinds (SKD, SKU, ...).
type LetterType struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	FormTemplate string    `gorm:"size:20;default:general" json:"formTemplate"`
	Active       bool      `gorm:"default:true" json:"active"`
	DisplayOrder int       `gorm:"default:0" json:"order"`
	Requirements string    `gorm:"type:text" json:"requirements"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *LetterType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BusinessDetails holds the extra fields of a business certificate (SKU).
type BusinessDetails struct {
	BusinessName    string `json:"businessName"`
	BusinessType    string `json:"businessType,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`
}

// BirthDetails holds the extra fields of a birth certificate cover letter.
type BirthDetails struct {
	ChildName  string `json:"childName"`
	BirthDate  string `json:"birthDate"`
	BirthPlace string `json:"birthPlace"`
	FatherName string `json:"fatherName,omitempty"`
	MotherName string `json:"motherName,omitempty"`
}

// DeathDetails holds the extra fields of a death certificate.
type DeathDetails struct {
	DeceasedName string `json:"deceasedName"`
	DeathDate    string `json:"deathDate"`
	DeathPlace   string `json:"deathPlace,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// RequestDetails is the per-letter-type variant block. At most one member
// is set, selected by the letter-type code. Stored as a JSON column so the
// request table does not grow a nullable column per letter kind.
type RequestDetails struct {
	Business *BusinessDetails `json:"business,omitempty"`
	Birth    *BirthDetails    `json:"birth,omitempty"`
	Death    *DeathDetails    `json:"death,omitempty"`
}

// LetterRequest is one citizen's application for one letter type. The
// applicant block is an immutable snapshot; only admins mutate status,
// note and the generation fields.
type LetterRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LetterTypeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"letterTypeId"`
	LetterType   LetterType `gorm:"constraint:OnUpdate:CASCADE" json:"letterType"`
	// TypeCode is denormalized from LetterType at submission time so old
	// requests keep their code even if the catalog entry is edited.
	TypeCode string `gorm:"size:20;index" json:"typeCode"`

	FullName   string `gorm:"size:100;not null" json:"fullName"`
	NIK        string `gorm:"size:16;not null;index" json:"nik"`
	BirthPlace string `gorm:"size:100" json:"birthPlace"`
	BirthDate  string `gorm:"size:20" json:"birthDate"`
	Address    string `gorm:"type:text" json:"address"`
	Phone      string `gorm:"size:20" json:"phone"`
	Purpose    string `gorm:"type:text" json:"purpose"`

	// Destination block, only filled for the "move" form template.
	DestinationAddress *string `gorm:"type:text" json:"destinationAddress,omitempty"`
	MoveReason         *string `gorm:"type:text" json:"moveReason,omitempty"`

	Details datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`

	IDPhotoURL        *string        `gorm:"type:text" json:"idPhotoUrl,omitempty"`
	FamilyRegisterURL *string        `gorm:"type:text" json:"familyRegisterUrl,omitempty"`
	CoverLetterURL    *string        `gorm:"type:text" json:"coverLetterUrl,omitempty"`
	ExtraDocuments    datatypes.JSON `gorm:"type:jsonb" json:"extraDocuments,omitempty"`

	Status string  `gorm:"size:20;default:pending;index" json:"status"`
	Note   *string `gorm:"type:text" json:"catatan,omitempty"`

	LetterGenerated   bool       `gorm:"default:false" json:"letterGenerated"`
	LetterURL         *string    `gorm:"type:text" json:"letterUrl,omitempty"`
	LetterNumber      *string    `gorm:"size:50" json:"letterNumber,omitempty"`
	LetterGeneratedAt *time.Time `json:"letterGeneratedAt,omitempty"`
	LetterGeneratedBy *string    `gorm:"size:100" json:"letterGeneratedBy,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *LetterRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// DecodeDetails unmarshals the per-type variant block. Returns an empty
// RequestDetails when the column is null.
func (r *LetterRequest) DecodeDetails() (RequestDetails, error) {
	var details RequestDetails
	if len(r.Details) == 0 {
		return details, nil
	}
	err := json.Unmarshal(r.Details, &details)
	return details, err
}
