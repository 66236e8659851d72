package dto

import (
	commonDto "anoa.com/postpilot/pkg/dto"
)

type FileInput struct {
	URL          string `json:"url" binding:"required,url"`
	ResourceType string `json:"resource_type" binding:"omitempty,oneof=image video"`
	Caption      string `json:"caption" binding:"omitempty,max=500"`
}

type CreatePostRequest struct {
	Caption     string      `json:"caption" binding:"required,min=1,max=2000"`
	PublishDate string      `json:"publish_date" binding:"required,datetime=2006-01-02"`
	PublishTime string      `json:"publish_time" binding:"required,datetime=15:04"`
	Files       []FileInput `json:"files" binding:"required,min=1,max=10,dive"`
}

// UpdatePostRequest is a partial update: nil fields are left unchanged.
// PublishDate and PublishTime only take effect when both are present.
type UpdatePostRequest struct {
	Caption     *string `json:"caption" binding:"omitempty,min=1,max=2000"`
	PublishDate *string `json:"publish_date" binding:"omitempty,datetime=2006-01-02"`
	PublishTime *string `json:"publish_time" binding:"omitempty,datetime=15:04"`
	IsPublished *bool   `json:"is_published"`
}

type PostFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=published pending"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type PostFileResponse struct {
	ID      uint   `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type PostResponse struct {
	ID          uint               `json:"id"`
	Caption     string             `json:"caption"`
	PublishAt   string             `json:"publish_at"`
	PublishDate string             `json:"publish_date"`
	PublishTime string             `json:"publish_time"`
	MediaKind   string             `json:"media_kind"`
	FileCount   int                `json:"file_count"`
	IsVideo     bool               `json:"is_video"`
	IsPublished bool               `json:"is_published"`
	Files       []PostFileResponse `json:"files"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

type PaginatedPostResponse struct {
	Data []PostResponse           `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type DuePostResponse struct {
	ID        uint                    `json:"id"`
	Owner     commonDto.OwnerResponse `json:"owner"`
	Caption   string                  `json:"caption"`
	MediaKind string                  `json:"media_kind"`
	IsVideo   bool                    `json:"is_video"`
	PublishAt string                  `json:"publish_at"`
	Files     []PostFileResponse      `json:"files"`
}

// DueWindowResponse echoes the window bounds so the polling agent can log
// exactly which interval was inspected.
type DueWindowResponse struct {
	Count       int               `json:"count"`
	CheckTime   string            `json:"check_time"`
	WindowStart string            `json:"window_start"`
	WindowEnd   string            `json:"window_end"`
	Posts       []DuePostResponse `json:"posts"`
}
