package service

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"anoa.com/postpilot/internal/entity"
	"anoa.com/postpilot/internal/modules/upload/dto"
	"anoa.com/postpilot/internal/modules/upload/repository"
	"anoa.com/postpilot/pkg/apperror"
	"anoa.com/postpilot/pkg/mediakind"
	"anoa.com/postpilot/pkg/storage"
	"github.com/google/uuid"
)

// MaxUploadSize caps a single media file at 50MB.
const MaxUploadSize = 50 << 20

var allowedTypes = map[string]string{
	"image/jpeg":      mediakind.ResourceImage,
	"image/png":       mediakind.ResourceImage,
	"image/gif":       mediakind.ResourceImage,
	"image/webp":      mediakind.ResourceImage,
	"video/mp4":       mediakind.ResourceVideo,
	"video/quicktime": mediakind.ResourceVideo,
	"video/x-msvideo": mediakind.ResourceVideo,
}

type UploadService interface {
	Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UploadResponse, error)
	CleanupOrphanUploads(ctx context.Context) error
}

type uploadService struct {
	uploadRepo  repository.UploadRepository
	fileStorage storage.BlobStorage
	folder      string
}

func NewUploadService(uploadRepo repository.UploadRepository, fileStorage storage.BlobStorage, folder string) UploadService {
	return &uploadService{
		uploadRepo:  uploadRepo,
		fileStorage: fileStorage,
		folder:      folder,
	}
}

func (s *uploadService) Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	contentType := file.Header.Get("Content-Type")
	resourceType, ok := allowedTypes[contentType]
	if !ok {
		return nil, apperror.Invalid("invalid file type. Only images (JPEG, PNG, GIF, WebP) and videos (MP4, MOV, AVI) are allowed")
	}

	if file.Size > MaxUploadSize {
		return nil, apperror.Invalid("file size too large. Maximum size is 50MB")
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := s.fileStorage.Upload(ctx, f, s.folder, file.Filename, resourceType)
	if err != nil {
		return nil, err
	}

	upload := &entity.Upload{
		UserID:       userID,
		URL:          result.URL,
		PublicID:     result.PublicID,
		ResourceType: result.ResourceType,
		Format:       result.Format,
		Width:        result.Width,
		Height:       result.Height,
	}

	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		ID:           upload.ID,
		URL:          upload.URL,
		ResourceType: upload.ResourceType,
		Format:       upload.Format,
		Width:        upload.Width,
		Height:       upload.Height,
	}, nil
}

// CleanupOrphanUploads reclaims blobs that were uploaded but never
// attached to a post within 24 hours.
func (s *uploadService) CleanupOrphanUploads(ctx context.Context) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	orphans, err := s.uploadRepo.FindOrphans(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, orphan := range orphans {
		if err := s.fileStorage.Delete(ctx, orphan.URL, orphan.ResourceType); err != nil {
			// Keep going; the row stays deletable either way.
			log.Printf("failed to delete orphan blob %s: %v", orphan.URL, err)
		}

		if err := s.uploadRepo.Delete(ctx, orphan.ID); err != nil {
			// If DB delete fails, next run will pick it up again.
			log.Printf("failed to delete orphan upload row %d: %v", orphan.ID, err)
		}
	}
	return nil
}
