package service

import (
	"context"
	"time"

	postRepo "anoa.com/postpilot/internal/modules/post/repository"
	statDto "anoa.com/postpilot/internal/modules/stat/dto"
	"github.com/google/uuid"
)

type StatService interface {
	GetPostStats(ctx context.Context, userID uuid.UUID, now time.Time) (*statDto.StatsResponse, error)
}

type statService struct {
	postRepo postRepo.PostRepository
}

func NewStatService(postRepo postRepo.PostRepository) StatService {
	return &statService{
		postRepo: postRepo,
	}
}

func (s *statService) GetPostStats(ctx context.Context, userID uuid.UUID, now time.Time) (*statDto.StatsResponse, error) {
	stats, err := s.postRepo.Stats(ctx, userID, StartOfWeek(now), StartOfMonth(now))
	if err != nil {
		return nil, err
	}

	return &statDto.StatsResponse{
		Total:     stats.Total,
		Published: stats.Published,
		Pending:   stats.Pending,
		ThisWeek:  stats.ThisWeek,
		ThisMonth: stats.ThisMonth,
	}, nil
}

// StartOfWeek returns midnight on the Sunday of now's week, in now's
// location. Display convention only.
func StartOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}

// StartOfMonth returns midnight on the first day of now's month.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
