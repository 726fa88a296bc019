package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// News is a public article on the village site. Content is stored as
// sanitized HTML.
type News struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Slug      string     `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Content   string     `gorm:"type:text" json:"content"`
	ImageURL  *string    `gorm:"type:text" json:"image_url,omitempty"`
	Published bool       `gorm:"default:true" json:"published"`
	AuthorID  *uuid.UUID `gorm:"type:uuid" json:"author_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type GalleryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	ImageURL  string    `gorm:"type:text;not null" json:"image_url"`
	Category  string    `gorm:"size:50;index" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Official is an entry on the village org-structure page.
type Official struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Position     string    `gorm:"size:100;not null" json:"position"`
	PhotoURL     *string   `gorm:"type:text" json:"photo_url,omitempty"`
	DisplayOrder int       `gorm:"default:0" json:"order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (o *Official) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Upload tracks every file pushed through the upload endpoint so the
// cleanup job can find objects nothing references anymore.
type Upload struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	Category   string    `gorm:"size:50" json:"category"`
	UploaderID uuid.UUID `gorm:"type:uuid" json:"uploader_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Notification is an admin-facing alert, currently created when a citizen
// submits a new letter request.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	RequestID *uuid.UUID `gorm:"type:uuid" json:"request_id,omitempty"`
	Read      bool       `gorm:"default:false" json:"read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
