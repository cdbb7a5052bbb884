package service

import (
	"context"
	"io"

	"portion-vision/plate-svc/internal/domain"
)

type RecommendationServiceInterface interface {
	Recommend(ctx context.Context, req domain.RecommendRequest) (*domain.RecommendationResult, error)
	Get(ctx context.Context, id string) (*domain.RecommendationResult, error)
	History(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type ProfileServiceInterface interface {
	Save(ctx context.Context, id string, raw map[string]any) (*domain.ProfileView, error)
	Get(ctx context.Context, id string) (*domain.ProfileView, error)
	Estimate(raw map[string]any) domain.ProfileInsights
}

type MenuServiceInterface interface {
	Today(ctx context.Context) (*domain.Menu, error)
	SetToday(ctx context.Context, items []string, source string) (*domain.Menu, error)
	ImportImage(ctx context.Context, filename string, image []byte) (*domain.Menu, error)
}

type FoodServiceInterface interface {
	List() []domain.FoodRecord
	Search(query string) ([]domain.FoodRecord, error)
	Classify(name string) domain.ClassifiedItem
}

type ProfileRepository interface {
	SaveProfile(ctx context.Context, profile *domain.StoredProfile) error
	GetProfile(ctx context.Context, id string) (*domain.StoredProfile, error)
}

type MenuRepository interface {
	SaveMenu(ctx context.Context, menu *domain.Menu) error
	GetMenu(ctx context.Context, date string) (*domain.Menu, error)
}

type RecommendationRepository interface {
	SaveRecommendation(ctx context.Context, profileID string, rec *domain.RecommendationResult) error
	GetRecommendation(ctx context.Context, id string) (*domain.RecommendationResult, error)
	ListRecommendations(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, date string) (*domain.Menu, error)
	SetMenu(ctx context.Context, menu *domain.Menu) error
}

type PlatePublisher interface {
	PublishPlate(ctx context.Context, event domain.PlateEvent) error
}

type MenuExtractor interface {
	Extract(ctx context.Context, filename string, image io.Reader) ([]string, error)
}

type FoodCatalog interface {
	Lookup(name string) (domain.FoodRecord, bool)
	Search(query string) []domain.FoodRecord
	All() []domain.FoodRecord
}

type QRGenerator interface {
	Generate(id string) ([]byte, error)
	Link(id string) string
}

var (
	_ RecommendationServiceInterface = (*RecommendationService)(nil)
	_ ProfileServiceInterface        = (*ProfileService)(nil)
	_ MenuServiceInterface           = (*MenuService)(nil)
	_ FoodServiceInterface           = (*FoodService)(nil)
	_ QRGenerator                    = DefaultQRGenerator{}
)
