package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	RoleAdmin = "admin"
	RoleWarga = "warga"
)

// User covers both identity schemes: admins carry a unique username and a
// password hash, citizens (warga) carry a unique NIK and a phone number.
// A record never has both a username and a NIK.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     *string   `gorm:"size:50;uniqueIndex" json:"username,omitempty"`
	NIK          *string   `gorm:"size:16;uniqueIndex" json:"nik,omitempty"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`

	// IsAutoCreated marks accounts materialized implicitly from a letter
	// submission, as opposed to ones that set a password deliberately.
	IsAutoCreated  bool `gorm:"default:false" json:"is_auto_created"`
	HasSetPassword bool `gorm:"default:false" json:"has_set_password"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}
