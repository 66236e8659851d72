package repository

import (
	"context"
	"time"

	"anoa.com/postpilot/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats holds the dashboard counts for one owner.
type Stats struct {
	Total     int64
	Published int64
	Pending   int64
	ThisWeek  int64
	ThisMonth int64
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)
	FindByUser(ctx context.Context, userID uuid.UUID, published *bool, offset, limit int) ([]*entity.Post, int64, error)
	// FindDue returns unpublished posts whose publish instant falls inside
	// the closed interval [windowStart, windowEnd], optionally restricted
	// to the owner with the given email.
	FindDue(ctx context.Context, windowStart, windowEnd time.Time, ownerEmail string) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, userID uuid.UUID, weekStart, monthStart time.Time) (*Stats, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func orderedFiles(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	// Files ride along in the same insert, so post and files commit
	// atomically.
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByUser(ctx context.Context, userID uuid.UUID, published *bool, offset, limit int) ([]*entity.Post, int64, error) {
	var posts []*entity.Post
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Where("user_id = ?", userID)

	if published != nil {
		query = query.Where("is_published = ?", *published)
	}

	if err := query.Model(&entity.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) FindDue(ctx context.Context, windowStart, windowEnd time.Time, ownerEmail string) ([]*entity.Post, error) {
	var posts []*entity.Post

	query := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Preload("User").
		Where("is_published = ?", false).
		Where("publish_at BETWEEN ? AND ?", windowStart, windowEnd)

	if ownerEmail != "" {
		query = query.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("users.email = ?", ownerEmail)
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.PostFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, id).Error
	})
}

func (r *postRepository) Stats(ctx context.Context, userID uuid.UUID, weekStart, monthStart time.Time) (*Stats, error) {
	stats := &Stats{}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.Post{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_published = ?", true).Count(&stats.Published).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_published = ?", false).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("created_at >= ?", weekStart).Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}
	if err := base().Where("created_at >= ?", monthStart).Count(&stats.ThisMonth).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
