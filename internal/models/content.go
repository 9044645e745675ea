package models

import (
	"time"

	"github.com/google/uuid"
)

// Content is the record-store view of a reportable piece of content. All five
// content types share one table; the per-type text fields are sparse.
type Content struct {
	ID       string      `gorm:"primaryKey;size:255" json:"id"`
	Type     ContentType `gorm:"primaryKey;size:20" json:"type"`
	AuthorID *uuid.UUID  `gorm:"type:uuid;index" json:"author_id"`

	// Text fields by type: body for posts/comments/messages, name+bio for
	// profiles, title+description for products.
	Body        string `gorm:"type:text" json:"body,omitempty"`
	Title       string `gorm:"size:500" json:"title,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Name        string `gorm:"size:255" json:"name,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`

	// Moderation state.
	Hidden        bool       `gorm:"default:false" json:"hidden"`
	Removed       bool       `gorm:"default:false" json:"removed"`
	RemovedAt     *time.Time `json:"removed_at,omitempty"`
	RemovalReason string     `gorm:"size:500" json:"removal_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
