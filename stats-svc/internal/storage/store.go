package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portion-vision/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dailyTTL = 30 * 24 * time.Hour
	seenTTL  = 7 * 24 * time.Hour
)

func ItemsKey(meal string) string    { return "stats:items:" + meal }
func CaloriesKey(meal string) string { return "stats:calories:" + meal }
func DailyKey(date string) string    { return "stats:daily:" + date }
func seenKey(id string) string       { return "stats:seen:" + id }

// NormalizeMeal lowercases a meal type; blank becomes "other".
func NormalizeMeal(meal string) string {
	meal = strings.ToLower(strings.TrimSpace(meal))
	if meal == "" {
		return "other"
	}
	return meal
}

type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

// RecordPlate folds one served plate into the counters for its meal type and
// for AllMeals. It returns false when the recommendation was already counted.
func (s *Store) RecordPlate(ctx context.Context, event domain.PlateEvent) (bool, error) {
	if event.RecommendationID != "" {
		fresh, err := s.rdb.SetNX(ctx, seenKey(event.RecommendationID), 1, seenTTL).Result()
		if err != nil {
			return false, fmt.Errorf("mark %s seen: %w", event.RecommendationID, err)
		}
		if !fresh {
			return false, nil
		}
	}

	at := event.Timestamp
	if at.IsZero() {
		at = s.now()
	}
	daily := DailyKey(at.UTC().Format("2006-01-02"))
	meals := []string{NormalizeMeal(event.MealType), domain.AllMeals}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, meal := range meals {
			for _, item := range event.Items {
				if item.Item == "" {
					continue
				}
				pipe.ZIncrBy(ctx, ItemsKey(meal), 1, item.Item)
			}
			pipe.HIncrBy(ctx, CaloriesKey(meal), "sum", int64(event.TotalCalories))
			pipe.HIncrBy(ctx, CaloriesKey(meal), "count", 1)
		}
		pipe.Incr(ctx, daily)
		pipe.Expire(ctx, daily, dailyTTL)
		return nil
	})
	if err != nil {
		// release the marker so a redelivery can count the plate
		if event.RecommendationID != "" {
			if delErr := s.rdb.Del(context.WithoutCancel(ctx), seenKey(event.RecommendationID)).Err(); delErr != nil {
				err = errors.Join(err, fmt.Errorf("unmark %s: %w", event.RecommendationID, delErr))
			}
		}
		return false, fmt.Errorf("record plate %s: %w", event.RecommendationID, err)
	}
	return true, nil
}

func (s *Store) TopItems(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error) {
	members, err := s.rdb.ZRevRangeWithScores(ctx, ItemsKey(meal), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top items %s: %w", meal, err)
	}

	items := make([]domain.ItemCount, 0, len(members))
	for _, member := range members {
		name, _ := member.Member.(string)
		items = append(items, domain.ItemCount{Item: name, Count: int64(member.Score)})
	}
	return items, nil
}

func (s *Store) Calories(ctx context.Context, meal string) (domain.CalorieStats, error) {
	stats := domain.CalorieStats{MealType: meal}

	fields, err := s.rdb.HGetAll(ctx, CaloriesKey(meal)).Result()
	if err != nil {
		return stats, fmt.Errorf("calories %s: %w", meal, err)
	}

	sum, _ := strconv.ParseInt(fields["sum"], 10, 64)
	stats.Count, _ = strconv.ParseInt(fields["count"], 10, 64)
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}

func (s *Store) Daily(ctx context.Context, date string) (domain.DailyStats, error) {
	stats := domain.DailyStats{Date: date}

	n, err := s.rdb.Get(ctx, DailyKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("daily %s: %w", date, err)
	}
	stats.Plates = n
	return stats, nil
}
