package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"portion-vision/stats-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultReadBackoff = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    logrus.FieldLogger
	// Backoff is the pause after a failed read; zero means one second.
	Backoff time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log logrus.FieldLogger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log,
	}
}

// Start reads plate events until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	c.logger().Info("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) {
				c.logger().Info("reader closed, stopping consumer")
				return
			}
			c.logger().WithError(err).Error("Error reading message")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff()):
			}
			continue
		}

		var event domain.PlateEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger().WithError(err).WithField("offset", message.Offset).Warn("Error unmarshaling message")
			continue
		}

		c.ProcessPlate(ctx, event)
	}
}

func (c *Consumer) ProcessPlate(ctx context.Context, event domain.PlateEvent) {
	if event.Type != domain.PlateRecommendedEvent {
		return
	}
	log := c.logger().WithFields(logrus.Fields{
		"recommendation_id": event.RecommendationID,
		"meal_type":         event.MealType,
	})

	recorded, err := c.Store.RecordPlate(ctx, event)
	if err != nil {
		log.WithError(err).Error("Error recording plate")
		return
	}
	if !recorded {
		log.Debug("plate already counted")
		return
	}
	log.WithField("items", len(event.Items)).Debug("plate recorded")
}

func (c *Consumer) backoff() time.Duration {
	if c.Backoff <= 0 {
		return defaultReadBackoff
	}
	return c.Backoff
}

func (c *Consumer) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
