package models

import (
	"time"

	"github.com/google/uuid"
)

// Warning is issued against a content author by the warn action. Expires 30
// days after issue.
type Warning struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Reason    string    `gorm:"not null;size:500" json:"reason"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
