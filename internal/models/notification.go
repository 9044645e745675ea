package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AudienceUser  = "user"
	AudienceAdmin = "admin"
)

// Notification is a delivery record written by the notification sink.
// Admin alerts have a nil recipient and audience "admin".
type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecipientID *uuid.UUID     `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	Audience    string         `gorm:"not null;size:10;index" json:"audience"`
	Kind        string         `gorm:"not null;size:50" json:"kind"`
	Title       string         `gorm:"size:255" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	Payload     datatypes.JSON `json:"payload,omitempty"`
	Read        bool           `gorm:"default:false" json:"read"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}
