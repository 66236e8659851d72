package entity

import (
	"time"

	"anoa.com/postpilot/pkg/mediakind"
	"github.com/google/uuid"
)

// Post is a scheduled social-media post. PublishAt is stored in UTC; the
// user-facing date/time pair is derived from it via pkg/phtime.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User           `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Caption     string         `gorm:"size:2000;not null" json:"caption"`
	PublishAt   time.Time      `gorm:"not null;index" json:"publish_at"`
	MediaKind   mediakind.Kind `gorm:"size:20;not null" json:"media_kind"`
	FileCount   int            `gorm:"not null" json:"file_count"`
	IsVideo     bool           `gorm:"not null" json:"is_video"`
	IsPublished bool           `gorm:"not null;default:false;index" json:"is_published"`
	Files       []PostFile     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// PostFile is one attached media file, exclusively owned by its post.
// Position preserves the order the client submitted the files in.
type PostFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Position  int       `gorm:"not null" json:"position"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Caption   string    `gorm:"size:500" json:"caption"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
