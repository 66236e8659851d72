package post

import (
	"errors"
	"math"
	"time"

	"anoa.com/postpilot/internal/entity"
	postDto "anoa.com/postpilot/internal/modules/post/dto"
	commonDto "anoa.com/postpilot/pkg/dto"
	"anoa.com/postpilot/pkg/mediakind"
	"anoa.com/postpilot/pkg/phtime"
	"gorm.io/gorm"
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func toMediaFiles(files []postDto.FileInput) []mediakind.File {
	out := make([]mediakind.File, 0, len(files))
	for _, f := range files {
		out = append(out, mediakind.File{
			URL:          f.URL,
			ResourceType: f.ResourceType,
			Caption:      f.Caption,
		})
	}
	return out
}

// buildFiles preserves submission order. Per-file captions only mean
// something on multi-image posts; single-media posts carry the post-level
// caption alone, so individual captions are dropped.
func buildFiles(files []postDto.FileInput, kind mediakind.Kind) []entity.PostFile {
	out := make([]entity.PostFile, 0, len(files))
	for i, f := range files {
		caption := f.Caption
		if kind != mediakind.MultipleImages {
			caption = ""
		}
		out = append(out, entity.PostFile{
			Position: i,
			URL:      f.URL,
			Caption:  caption,
		})
	}
	return out
}

func toFileResponses(files []entity.PostFile) []postDto.PostFileResponse {
	out := make([]postDto.PostFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, postDto.PostFileResponse{
			ID:      f.ID,
			URL:     f.URL,
			Caption: f.Caption,
		})
	}
	return out
}

func toPostResponse(post *entity.Post) *postDto.PostResponse {
	date, clock := phtime.Split(post.PublishAt)
	return &postDto.PostResponse{
		ID:          post.ID,
		Caption:     post.Caption,
		PublishAt:   post.PublishAt.UTC().Format(time.RFC3339),
		PublishDate: date,
		PublishTime: clock,
		MediaKind:   string(post.MediaKind),
		FileCount:   post.FileCount,
		IsVideo:     post.IsVideo,
		IsPublished: post.IsPublished,
		Files:       toFileResponses(post.Files),
		CreatedAt:   post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toDuePostResponse(post *entity.Post) postDto.DuePostResponse {
	return postDto.DuePostResponse{
		ID: post.ID,
		Owner: commonDto.OwnerResponse{
			ID:    post.UserID.String(),
			Name:  post.User.FullName(),
			Email: post.User.Email,
		},
		Caption:   post.Caption,
		MediaKind: string(post.MediaKind),
		IsVideo:   post.IsVideo,
		PublishAt: post.PublishAt.UTC().Format(time.RFC3339),
		Files:     toFileResponses(post.Files),
	}
}

func toPaginatedResponse(posts []*entity.Post, total int64, page, limit int) *postDto.PaginatedPostResponse {
	data := make([]postDto.PostResponse, 0, len(posts))
	for _, p := range posts {
		data = append(data, *toPostResponse(p))
	}

	return &postDto.PaginatedPostResponse{
		Data: data,
		Meta: commonDto.PaginationMeta{
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
			TotalItems:  total,
			Limit:       limit,
		},
	}
}
