package service

import (
	"context"
	"strings"
	"time"

	"portion-vision/stats-svc/internal/domain"
	"portion-vision/stats-svc/internal/storage"
)

const (
	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

type StatsService struct {
	store StoreInterface
	now   func() time.Time
}

func NewStatsService(store StoreInterface) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// Popular ranks items by how often they were placed on a plate. A blank meal
// ranks across every meal type.
func (s *StatsService) Popular(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > MaxPopularLimit {
		limit = MaxPopularLimit
	}
	return s.store.TopItems(ctx, mealKey(meal), limit)
}

func (s *StatsService) Calories(ctx context.Context, meal string) (domain.CalorieStats, error) {
	return s.store.Calories(ctx, mealKey(meal))
}

// Daily counts plates served on date (YYYY-MM-DD, UTC); blank means today.
func (s *StatsService) Daily(ctx context.Context, date string) (domain.DailyStats, error) {
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.DailyStats{}, ErrInvalidDate
	}
	return s.store.Daily(ctx, date)
}

func mealKey(meal string) string {
	if strings.TrimSpace(meal) == "" {
		return domain.AllMeals
	}
	return storage.NormalizeMeal(meal)
}
