package post

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"anoa.com/postpilot/internal/entity"
	postDto "anoa.com/postpilot/internal/modules/post/dto"
	postRepo "anoa.com/postpilot/internal/modules/post/repository"
	"anoa.com/postpilot/pkg/apperror"
	"anoa.com/postpilot/pkg/mediakind"
	"anoa.com/postpilot/pkg/phtime"
	"anoa.com/postpilot/pkg/ratelimiter"
	"anoa.com/postpilot/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.PostResponse, error)
	GetPosts(ctx context.Context, userID uuid.UUID, filter postDto.PostFilter) (*postDto.PaginatedPostResponse, error)
	GetPostByID(ctx context.Context, userID uuid.UUID, postID uint) (*postDto.PostResponse, error)
	// UpdatePost applies a partial update. A nil owner means the caller is
	// the trusted automation agent and the ownership check is skipped.
	UpdatePost(ctx context.Context, owner *uuid.UUID, postID uint, req postDto.UpdatePostRequest) (*postDto.PostResponse, error)
	DeletePost(ctx context.Context, userID uuid.UUID, postID uint) error
	// DuePosts returns unpublished posts scheduled inside [now-W, now+W].
	// It never mutates the publication flag; flipping it is the agent's
	// responsibility via UpdatePost.
	DuePosts(ctx context.Context, now time.Time, ownerEmail string) (*postDto.DueWindowResponse, error)
}

type Options struct {
	PublishWindow   time.Duration
	RateLimitGlobal time.Duration
	RateLimitPost   time.Duration
}

type postService struct {
	postRepo    postRepo.PostRepository
	classifier  mediakind.Classifier
	fileStorage storage.BlobStorage
	redisClient ratelimiter.Client
	sanitizer   *bluemonday.Policy
	opts        Options
}

func NewPostService(repo postRepo.PostRepository, classifier mediakind.Classifier, fileStorage storage.BlobStorage, redisClient ratelimiter.Client, opts Options) PostService {
	if opts.PublishWindow <= 0 {
		opts.PublishWindow = 10 * time.Minute
	}
	return &postService{
		postRepo:    repo,
		classifier:  classifier,
		fileStorage: fileStorage,
		redisClient: redisClient,
		sanitizer:   bluemonday.StrictPolicy(),
		opts:        opts,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.PostResponse, error) {
	// Global cooldown
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, "global", s.opts.RateLimitGlobal)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl := s.cooldownTTL(ctx, userID, "global", s.opts.RateLimitGlobal)
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	// Post-specific cooldown
	allowed, err = ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, "post", s.opts.RateLimitPost)
	if err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, "global")
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, "global")
		ttl := s.cooldownTTL(ctx, userID, "post", s.opts.RateLimitPost)
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you can only schedule one post every %.0f seconds. Please wait %.0f seconds", s.opts.RateLimitPost.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	// Release cooldowns if the post is rejected
	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, "global")
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, "post")
		}
	}()

	kind, err := s.classifier.Classify(toMediaFiles(req.Files))
	if err != nil {
		return nil, apperror.Invalid(err.Error())
	}

	publishAt, err := phtime.Combine(req.PublishDate, req.PublishTime)
	if err != nil {
		return nil, apperror.Invalid(err.Error())
	}
	if !publishAt.After(time.Now()) {
		return nil, apperror.Invalid("cannot schedule a post in the past")
	}

	caption, err := s.sanitizeCaption(req.Caption)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:    userID,
		Caption:   caption,
		PublishAt: publishAt,
		MediaKind: kind,
		FileCount: len(req.Files),
		IsVideo:   kind == mediakind.SingleVideo,
		Files:     buildFiles(req.Files, kind),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	creationFailed = false
	return toPostResponse(post), nil
}

func (s *postService) GetPosts(ctx context.Context, userID uuid.UUID, filter postDto.PostFilter) (*postDto.PaginatedPostResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 50 {
		filter.Limit = 10
	}

	var published *bool
	switch filter.Status {
	case "published":
		published = boolPtr(true)
	case "pending":
		published = boolPtr(false)
	}

	offset := (filter.Page - 1) * filter.Limit
	posts, total, err := s.postRepo.FindByUser(ctx, userID, published, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	return toPaginatedResponse(posts, total, filter.Page, filter.Limit), nil
}

func (s *postService) GetPostByID(ctx context.Context, userID uuid.UUID, postID uint) (*postDto.PostResponse, error) {
	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return toPostResponse(post), nil
}

func (s *postService) UpdatePost(ctx context.Context, owner *uuid.UUID, postID uint, req postDto.UpdatePostRequest) (*postDto.PostResponse, error) {
	var post *entity.Post
	var err error

	if owner != nil {
		post, err = s.findOwnedPost(ctx, *owner, postID)
	} else {
		post, err = s.findPost(ctx, postID)
	}
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		caption, err := s.sanitizeCaption(*req.Caption)
		if err != nil {
			return nil, err
		}
		post.Caption = caption
	}

	// A reschedule needs both halves of the local date/time pair; a lone
	// date or time is ignored, matching the create contract.
	if req.PublishDate != nil && req.PublishTime != nil {
		publishAt, err := phtime.Combine(*req.PublishDate, *req.PublishTime)
		if err != nil {
			return nil, apperror.Invalid(err.Error())
		}
		if !publishAt.After(time.Now()) {
			return nil, apperror.Invalid("cannot schedule a post in the past")
		}
		post.PublishAt = publishAt
	}

	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return toPostResponse(post), nil
}

func (s *postService) DeletePost(ctx context.Context, userID uuid.UUID, postID uint) error {
	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	// Blob deletion is best effort. The rows are gone; a leaked blob only
	// costs storage and the cleanup job cannot see it anymore.
	if s.fileStorage != nil {
		resourceType := mediakind.ResourceImage
		if post.IsVideo {
			resourceType = mediakind.ResourceVideo
		}
		for _, f := range post.Files {
			if err := s.fileStorage.Delete(ctx, f.URL, resourceType); err != nil {
				log.Printf("failed to delete blob %s: %v", f.URL, err)
			}
		}
	}

	return nil
}

func (s *postService) DuePosts(ctx context.Context, now time.Time, ownerEmail string) (*postDto.DueWindowResponse, error) {
	windowStart := now.Add(-s.opts.PublishWindow)
	windowEnd := now.Add(s.opts.PublishWindow)

	posts, err := s.postRepo.FindDue(ctx, windowStart, windowEnd, ownerEmail)
	if err != nil {
		// Propagate the failure: an empty result here would make the
		// agent silently skip due posts on a transient outage.
		return nil, fmt.Errorf("due-window query failed: %w", err)
	}

	resp := &postDto.DueWindowResponse{
		Count:       len(posts),
		CheckTime:   now.UTC().Format(time.RFC3339),
		WindowStart: windowStart.UTC().Format(time.RFC3339),
		WindowEnd:   windowEnd.UTC().Format(time.RFC3339),
		Posts:       make([]postDto.DuePostResponse, 0, len(posts)),
	}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toDuePostResponse(p))
	}

	return resp, nil
}

// sanitizeCaption strips markup and rejects captions that carry no text
// once the markup is gone, so a stored caption is never empty.
func (s *postService) sanitizeCaption(raw string) (string, error) {
	caption := s.sanitizer.Sanitize(raw)
	if strings.TrimSpace(caption) == "" {
		return "", apperror.Invalid("caption must contain text")
	}
	return caption, nil
}

// cooldownTTL reports how long the caller has to wait. When the TTL
// lookup fails the configured cooldown is the upper bound, so the client
// never sees a zero Retry-After.
func (s *postService) cooldownTTL(ctx context.Context, userID uuid.UUID, action string, fallback time.Duration) time.Duration {
	ttl, err := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, userID, action)
	if err != nil || ttl <= 0 {
		return fallback
	}
	return ttl
}

func (s *postService) findPost(ctx context.Context, postID uint) (*entity.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		if isRecordNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// findOwnedPost reports a foreign post as not found so the endpoint does
// not leak which IDs exist.
func (s *postService) findOwnedPost(ctx context.Context, userID uuid.UUID, postID uint) (*entity.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, apperror.ErrNotFound
	}
	return post, nil
}

func boolPtr(b bool) *bool {
	return &b
}
