package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	AvatarURL   string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Role        string    `gorm:"size:20;default:'user'" json:"role"`

	Suspended        bool       `gorm:"default:false" json:"suspended"`
	SuspendedUntil   *time.Time `json:"suspended_until,omitempty"`
	SuspensionReason string     `gorm:"size:500" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
