package service_test

import (
	"context"
	"testing"
	"time"

	postRepo "anoa.com/postpilot/internal/modules/post/repository"
	"anoa.com/postpilot/internal/modules/stat/service"
	"github.com/google/uuid"

	"anoa.com/postpilot/internal/entity"
)

func TestStartOfWeekIsSundayMidnight(t *testing.T) {
	// 2025-06-04 is a Wednesday.
	now := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)
	got := service.StartOfWeek(now)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}

	// Sunday stays on the same day.
	sunday := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	if got := service.StartOfWeek(sunday); !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestStartOfMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := service.StartOfMonth(now); !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

type stubStatsRepo struct {
	gotWeekStart  time.Time
	gotMonthStart time.Time
	stats         postRepo.Stats
}

func (r *stubStatsRepo) Create(ctx context.Context, p *entity.Post) error { return nil }
func (r *stubStatsRepo) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return nil, nil
}
func (r *stubStatsRepo) FindByUser(ctx context.Context, userID uuid.UUID, published *bool, offset, limit int) ([]*entity.Post, int64, error) {
	return nil, 0, nil
}
func (r *stubStatsRepo) FindDue(ctx context.Context, windowStart, windowEnd time.Time, ownerEmail string) ([]*entity.Post, error) {
	return nil, nil
}
func (r *stubStatsRepo) Update(ctx context.Context, p *entity.Post) error { return nil }
func (r *stubStatsRepo) Delete(ctx context.Context, id uint) error        { return nil }
func (r *stubStatsRepo) Stats(ctx context.Context, userID uuid.UUID, weekStart, monthStart time.Time) (*postRepo.Stats, error) {
	r.gotWeekStart = weekStart
	r.gotMonthStart = monthStart
	return &r.stats, nil
}

func TestGetPostStatsPassesCalendarBoundaries(t *testing.T) {
	repo := &stubStatsRepo{stats: postRepo.Stats{Total: 5, Published: 2, Pending: 3, ThisWeek: 1, ThisMonth: 4}}
	svc := service.NewStatService(repo)

	now := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)
	resp, err := svc.GetPostStats(context.Background(), uuid.New(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.gotWeekStart.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start: %s", repo.gotWeekStart)
	}
	if !repo.gotMonthStart.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month start: %s", repo.gotMonthStart)
	}
	if resp.Total != 5 || resp.Published != 2 || resp.Pending != 3 || resp.ThisWeek != 1 || resp.ThisMonth != 4 {
		t.Errorf("counts not mapped: %+v", resp)
	}
}
