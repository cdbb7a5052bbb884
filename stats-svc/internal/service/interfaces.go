package service

import (
	"context"

	"portion-vision/stats-svc/internal/domain"
	"portion-vision/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordPlate(ctx context.Context, event domain.PlateEvent) (bool, error)
	TopItems(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error)
	Calories(ctx context.Context, meal string) (domain.CalorieStats, error)
	Daily(ctx context.Context, date string) (domain.DailyStats, error)
}

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessPlate(ctx context.Context, event domain.PlateEvent)
}

type StatsInterface interface {
	Popular(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error)
	Calories(ctx context.Context, meal string) (domain.CalorieStats, error)
	Daily(ctx context.Context, date string) (domain.DailyStats, error)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
	_ StatsInterface    = (*StatsService)(nil)
)
