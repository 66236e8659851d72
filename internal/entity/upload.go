package entity

import (
	"time"

	"github.com/google/uuid"
)

// Upload records a blob pushed to storage before it is attached to a post.
// Rows whose URL never ends up in a post file are reclaimed by the orphan
// cleanup job.
type Upload struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	PublicID     string    `gorm:"size:255" json:"public_id"`
	ResourceType string    `gorm:"size:20;not null" json:"resource_type"`
	Format       string    `gorm:"size:20" json:"format"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
