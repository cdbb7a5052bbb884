package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portion-vision/logging"
	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/engine"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

var profileKeyGroups = [][]string{
	engine.WeightKeys,
	engine.HeightKeys,
	engine.AgeKeys,
	engine.SexKeys,
	engine.ActivityKeys,
	engine.GoalKeys,
	engine.DietKeys,
}

type RecommendationService struct {
	recommender *engine.Recommender
	profiles    ProfileRepository
	menus       MenuServiceInterface
	repository  RecommendationRepository
	publisher   PlatePublisher
	qr          QRGenerator
	now         func() time.Time
}

// NewRecommendationService builds the plate workflow around the engine. Every
// collaborator except the recommender may be nil; the engine result is still
// returned when storage or publishing is unavailable.
func NewRecommendationService(
	recommender *engine.Recommender,
	profiles ProfileRepository,
	menus MenuServiceInterface,
	repository RecommendationRepository,
	publisher PlatePublisher,
	qr QRGenerator,
) *RecommendationService {
	if qr == nil {
		qr = DefaultQRGenerator{}
	}
	return &RecommendationService{
		recommender: recommender,
		profiles:    profiles,
		menus:       menus,
		repository:  repository,
		publisher:   publisher,
		qr:          qr,
		now:         time.Now,
	}
}

func (s *RecommendationService) Recommend(ctx context.Context, req domain.RecommendRequest) (*domain.RecommendationResult, error) {
	log := logging.FromContext(ctx)

	profile, err := s.resolveProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	items := s.resolveMenu(ctx, req.MenuItems)

	result := s.recommender.Recommend(profile, items, engine.MealType(req.MealType))
	result.ID = uuid.NewString()
	result.CreatedAt = s.now().UTC()

	if s.repository != nil {
		if err := s.repository.SaveRecommendation(ctx, req.ProfileID, &result); err != nil {
			log.WithError(err).WithField("recommendation_id", result.ID).Warn("failed to store recommendation")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPlate(ctx, PlateEvent(result)); err != nil {
			log.WithError(err).WithField("recommendation_id", result.ID).Warn("failed to publish plate event")
		}
	}

	log.WithFields(logrus.Fields{
		"recommendation_id": result.ID,
		"meal_type":         result.MealType,
		"menu_items":        len(items),
		"plate_calories":    result.Summary.TotalPlateCalories,
	}).Info("plate recommended")

	return &result, nil
}

func (s *RecommendationService) Get(ctx context.Context, id string) (*domain.RecommendationResult, error) {
	if s.repository == nil {
		return nil, ErrRecommendationNotFound
	}
	rec, err := s.repository.GetRecommendation(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecommendationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation: %w", err)
	}
	return rec, nil
}

func (s *RecommendationService) History(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if s.repository == nil {
		return []domain.RecommendationResult{}, nil
	}
	return s.repository.ListRecommendations(ctx, profileID, limit)
}

func (s *RecommendationService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.qr.Generate(id)
}

// resolveProfile starts from the stored profile, when one is named, and lets
// fields sent with the request override it.
func (s *RecommendationService) resolveProfile(ctx context.Context, req domain.RecommendRequest) (domain.UserProfile, error) {
	if req.ProfileID == "" || s.profiles == nil {
		return engine.NormalizeProfile(engine.ProfileObject(req.Profile)), nil
	}

	stored, err := s.profiles.GetProfile(ctx, req.ProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return engine.NormalizeProfile(MergeProfile(engine.ProfileFields(stored.Profile), engine.ProfileObject(req.Profile))), nil
}

// MergeProfile overlays override on base. A field given under any alias in
// override replaces every alias of that field in base.
func MergeProfile(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for _, group := range profileKeyGroups {
		if !hasAnyKey(override, group) {
			continue
		}
		for _, key := range group {
			delete(merged, key)
		}
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func hasAnyKey(m map[string]any, keys []string) bool {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return true
		}
	}
	return false
}

func (s *RecommendationService) resolveMenu(ctx context.Context, raw any) []string {
	if raw != nil || s.menus == nil {
		return engine.MenuItems(raw)
	}

	menu, err := s.menus.Today(ctx)
	if err != nil {
		if !errors.Is(err, ErrMenuNotFound) {
			logging.FromContext(ctx).WithError(err).Warn("could not load today's menu")
		}
		return []string{}
	}
	return menu.Items
}

// PlateEvent flattens a result into the message published for stats.
func PlateEvent(result domain.RecommendationResult) domain.PlateEvent {
	items := make([]domain.PlateEventItem, 0, len(result.RecommendedPlate))
	for _, entry := range result.RecommendedPlate {
		items = append(items, domain.PlateEventItem{
			Item:     entry.Item,
			Role:     entry.Role,
			Quantity: entry.RecommendedQuantity,
			Calories: entry.EstimatedCalories,
		})
	}
	return domain.PlateEvent{
		Type:             domain.PlateRecommendedEvent,
		RecommendationID: result.ID,
		MealType:         result.MealType,
		Items:            items,
		TotalCalories:    result.Summary.TotalPlateCalories,
		Timestamp:        result.CreatedAt,
	}
}
