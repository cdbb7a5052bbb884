package tests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/engine"
	"portion-vision/plate-svc/internal/mocks"
	"portion-vision/plate-svc/internal/ocr"
	"portion-vision/plate-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	pngImage = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	march2   = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
)

func notFound(what string) error {
	return fmt.Errorf("get %s: %w", what, sql.ErrNoRows)
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want service.ValidationError
	}{
		{
			name: "valid",
			raw:  map[string]any{"name": "Asha", "age": "29", "height": 162, "weight": 58.5},
		},
		{
			name: "all missing",
			raw:  map[string]any{},
			want: service.ValidationError{
				"name":   "Name is required",
				"age":    "Age is required",
				"height": "Height is required",
				"weight": "Weight is required",
			},
		},
		{
			name: "out of range",
			raw:  map[string]any{"name": "A", "age": 9, "height_cm": 251, "weight_kg": 29},
			want: service.ValidationError{
				"name":   "Name must be at least 2 characters",
				"age":    "Age must be between 10 and 120",
				"height": "Height must be between 100-250 cm",
				"weight": "Weight must be between 30-300 kg",
			},
		},
		{
			name: "bounds are inclusive",
			raw:  map[string]any{"name": "Jo", "age": 120, "heightCm": 100, "weightKg": 300},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.ValidateProfile(testCase.raw))
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := service.ValidationError{"weight": "Weight is required", "age": "Age is required"}
	assert.Equal(t, "Age is required. Weight is required", err.Error())
}

func TestProfileService_Save(t *testing.T) {
	repository := mocks.NewProfileRepository(t)
	svc := service.NewProfileService(repository)

	repository.On("SaveProfile", mock.Anything, mock.MatchedBy(func(p *domain.StoredProfile) bool {
		return p.ID == "asha" && p.Name == "Asha" && p.Profile.Sex == "female"
	})).Return(nil).Once()

	view, err := svc.Save(context.Background(), " asha ", map[string]any{
		"name": "Asha", "age": 30, "height": 175, "weight": 70, "gender": "Female", "goal": "Muscle Gain",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha", view.ID)
	assert.Equal(t, "muscle gain", view.Profile.Goal)
	assert.Equal(t, 22.86, view.Insights.BMI)
	assert.Equal(t, 112, view.Insights.DailyProteinGrams)
}

func TestProfileService_SaveRejectsInvalid(t *testing.T) {
	repository := mocks.NewProfileRepository(t)
	svc := service.NewProfileService(repository)

	_, err := svc.Save(context.Background(), "asha", map[string]any{"name": "Asha"})

	var verr service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr, "age")
	assert.NotContains(t, verr, "name")

	_, err = svc.Save(context.Background(), "  ", map[string]any{})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr, "id")

	repository.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything)
}

func TestProfileService_Get(t *testing.T) {
	repository := mocks.NewProfileRepository(t)
	svc := service.NewProfileService(repository)
	ctx := context.Background()

	stored := &domain.StoredProfile{ID: "ravi", Name: "Ravi", Profile: engine.DefaultProfile()}
	repository.On("GetProfile", ctx, "ravi").Return(stored, nil).Once()
	repository.On("GetProfile", ctx, "ghost").Return(nil, notFound("profile")).Once()
	repository.On("GetProfile", ctx, "broken").Return(nil, errors.New("connection reset")).Once()

	view, err := svc.Get(ctx, "ravi")
	require.NoError(t, err)
	assert.Equal(t, 2546, view.Insights.DailyCalories)

	_, err = svc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)

	_, err = svc.Get(ctx, "broken")
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, service.ErrProfileNotFound)
}

func TestProfileService_Estimate(t *testing.T) {
	svc := service.NewProfileService(nil)
	got := svc.Estimate(map[string]any{"weight": "70", "height": "170", "age": "25", "goal": "lose weight"})
	assert.Equal(t, 2146, got.DailyCalories)
}

func TestMenuService_Today(t *testing.T) {
	menu := &domain.Menu{Date: "2026-03-02", Items: []string{"Rice", "Dal"}, Source: service.SourceManual}

	tests := []struct {
		name         string
		prepareMocks func(repo *mocks.MenuRepository, cache *mocks.MenuCache)
		want         *domain.Menu
		wantErr      error
	}{
		{
			name: "cache hit",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, "2026-03-02").Return(menu, nil).Once()
			},
			want: menu,
		},
		{
			name: "cache miss reads through",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, "2026-03-02").Return(nil, nil).Once()
				repo.On("GetMenu", mock.Anything, "2026-03-02").Return(menu, nil).Once()
				cache.On("SetMenu", mock.Anything, menu).Return(nil).Once()
			},
			want: menu,
		},
		{
			name: "cache down still serves",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, "2026-03-02").Return(nil, errors.New("redis down")).Once()
				repo.On("GetMenu", mock.Anything, "2026-03-02").Return(menu, nil).Once()
				cache.On("SetMenu", mock.Anything, menu).Return(errors.New("redis down")).Once()
			},
			want: menu,
		},
		{
			name: "nothing saved",
			prepareMocks: func(repo *mocks.MenuRepository, cache *mocks.MenuCache) {
				cache.On("GetMenu", mock.Anything, "2026-03-02").Return(nil, nil).Once()
				repo.On("GetMenu", mock.Anything, "2026-03-02").Return(nil, notFound("menu")).Once()
			},
			wantErr: service.ErrMenuNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			cache := mocks.NewMenuCache(t)
			testCase.prepareMocks(repo, cache)

			svc := service.NewMenuService(repo, cache, nil).WithClock(march2)
			got, err := svc.Today(context.Background())

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestMenuService_SetToday(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	svc := service.NewMenuService(repo, nil, nil).WithClock(march2)

	repo.On("SaveMenu", mock.Anything, &domain.Menu{Date: "2026-03-02", Items: []string{"Rice", "Dal"}, Source: service.SourceManual}).
		Return(nil).Once()

	menu, err := svc.SetToday(context.Background(), []string{" Rice ", "", "Dal"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice", "Dal"}, menu.Items)

	_, err = svc.SetToday(context.Background(), []string{"  "}, "")
	var verr service.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestMenuService_ImportImage(t *testing.T) {
	t.Run("invalid image never reaches ocr", func(t *testing.T) {
		extractor := mocks.NewMenuExtractor(t)
		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil, extractor)

		_, err := svc.ImportImage(context.Background(), "menu.gif", []byte("GIF89a....."))
		assert.ErrorIs(t, err, ocr.ErrInvalidImage)
		extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ocr failure", func(t *testing.T) {
		extractor := mocks.NewMenuExtractor(t)
		extractor.On("Extract", mock.Anything, "menu.png", mock.Anything).Return(nil, ocr.ErrOCRUnavailable).Once()

		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil, extractor)
		_, err := svc.ImportImage(context.Background(), "menu.png", pngImage)
		assert.ErrorIs(t, err, ocr.ErrOCRUnavailable)
	})

	t.Run("no extractor configured", func(t *testing.T) {
		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil, nil)
		_, err := svc.ImportImage(context.Background(), "menu.png", pngImage)
		assert.ErrorIs(t, err, ocr.ErrOCRUnavailable)
	})

	t.Run("nothing recognised is not stored", func(t *testing.T) {
		extractor := mocks.NewMenuExtractor(t)
		extractor.On("Extract", mock.Anything, "menu.png", mock.Anything).Return([]string{}, nil).Once()

		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil, extractor).WithClock(march2)
		menu, err := svc.ImportImage(context.Background(), "menu.png", pngImage)
		require.NoError(t, err)
		assert.Empty(t, menu.Items)
	})

	t.Run("stores extracted items", func(t *testing.T) {
		extractor := mocks.NewMenuExtractor(t)
		repo := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)

		extractor.On("Extract", mock.Anything, "menu.png", mock.Anything).Return([]string{"Veg Pulao", "Raita"}, nil).Once()
		repo.On("SaveMenu", mock.Anything, mock.MatchedBy(func(m *domain.Menu) bool {
			return m.Source == service.SourceOCR && m.Date == "2026-03-02" && len(m.Items) == 2
		})).Return(nil).Once()
		cache.On("SetMenu", mock.Anything, mock.AnythingOfType("*domain.Menu")).Return(nil).Once()

		svc := service.NewMenuService(repo, cache, extractor).WithClock(march2)
		menu, err := svc.ImportImage(context.Background(), "menu.png", pngImage)
		require.NoError(t, err)
		assert.Equal(t, []string{"Veg Pulao", "Raita"}, menu.Items)
	})
}

func TestFoodService(t *testing.T) {
	base := fixtureBase()
	svc := service.NewFoodService(base, engine.NewClassifier(base))

	assert.Len(t, svc.List(), base.Len())

	_, err := svc.Search("  ")
	assert.ErrorIs(t, err, service.ErrEmptyQuery)

	found, err := svc.Search("dal")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dal Tadka", found[0].Name)

	assert.Equal(t, domain.RoleProtein, svc.Classify("dal tadka").Role)
	assert.Equal(t, domain.RoleMixed, svc.Classify("Mystery Biryani").Role)
}

func TestRecommendationService_Recommend(t *testing.T) {
	recommender := engine.NewRecommender(engine.NewClassifier(nil))
	stored := &domain.StoredProfile{ID: "asha", Name: "Asha", Profile: engine.DefaultProfile()}
	stored.Profile.Goal = "muscle gain"

	t.Run("stored profile with request override", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		repository := mocks.NewRecommendationRepository(t)
		publisher := mocks.NewPlatePublisher(t)
		svc := service.NewRecommendationService(recommender, profiles, nil, repository, publisher, nil)

		profiles.On("GetProfile", mock.Anything, "asha").Return(stored, nil).Once()
		repository.On("SaveRecommendation", mock.Anything, "asha", mock.AnythingOfType("*domain.RecommendationResult")).
			Return(errors.New("db down")).Once()
		publisher.On("PublishPlate", mock.Anything, mock.MatchedBy(func(e domain.PlateEvent) bool {
			return e.Type == domain.PlateRecommendedEvent && e.MealType == "lunch" &&
				len(e.Items) == 1 && e.Items[0].Item == "Chicken Biryani" && e.TotalCalories == 600
		})).Return(nil).Once()

		result, err := svc.Recommend(context.Background(), domain.RecommendRequest{
			ProfileID: "asha",
			Profile:   map[string]any{"goalType": "maintain"},
			MenuItems: []any{"Chicken Biryani"},
			MealType:  "lunch",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.ID)
		assert.False(t, result.CreatedAt.IsZero())
		assert.Equal(t, 2546, result.Summary.DailyCalories)
		assert.Equal(t, 600, result.Summary.TotalPlateCalories)
	})

	t.Run("stored profile alone", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		svc := service.NewRecommendationService(recommender, profiles, nil, nil, nil, nil)

		profiles.On("GetProfile", mock.Anything, "asha").Return(stored, nil).Once()

		result, err := svc.Recommend(context.Background(), domain.RecommendRequest{ProfileID: "asha", MenuItems: []any{}})
		require.NoError(t, err)
		assert.Equal(t, 2846, result.Summary.DailyCalories)
		assert.Empty(t, result.RecommendedPlate)
	})

	t.Run("unknown profile", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		svc := service.NewRecommendationService(recommender, profiles, nil, nil, nil, nil)

		profiles.On("GetProfile", mock.Anything, "ghost").Return(nil, notFound("profile")).Once()

		_, err := svc.Recommend(context.Background(), domain.RecommendRequest{ProfileID: "ghost"})
		assert.ErrorIs(t, err, service.ErrProfileNotFound)
	})

	t.Run("absent menu uses today's menu", func(t *testing.T) {
		menus := mocks.NewMenuService(t)
		svc := service.NewRecommendationService(recommender, nil, menus, nil, nil, nil)

		menus.On("Today", mock.Anything).Return(&domain.Menu{Items: []string{"Rice", "Dal"}}, nil).Once()

		result, err := svc.Recommend(context.Background(), domain.RecommendRequest{MealType: "dinner"})
		require.NoError(t, err)
		assert.Len(t, result.RecommendedPlate, 2)
	})

	t.Run("non-object profile and non-string meal type fall back to defaults", func(t *testing.T) {
		svc := service.NewRecommendationService(recommender, nil, nil, nil, nil, nil)

		var req domain.RecommendRequest
		require.NoError(t, json.Unmarshal([]byte(`{"profile":"x","mealType":3,"menuItems":["Chicken Biryani"]}`), &req))

		result, err := svc.Recommend(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "lunch", result.MealType)
		assert.Equal(t, 2546, result.Summary.DailyCalories)
		assert.Equal(t, 891, result.Summary.TargetMealCalories)
		require.Len(t, result.RecommendedPlate, 1)
	})

	t.Run("no menu today gives an empty plate", func(t *testing.T) {
		menus := mocks.NewMenuService(t)
		svc := service.NewRecommendationService(recommender, nil, menus, nil, nil, nil)

		menus.On("Today", mock.Anything).Return(nil, service.ErrMenuNotFound).Once()

		result, err := svc.Recommend(context.Background(), domain.RecommendRequest{})
		require.NoError(t, err)
		assert.Empty(t, result.RecommendedPlate)
		assert.Equal(t, "lunch", result.MealType)
	})

	t.Run("non array menu is empty", func(t *testing.T) {
		menus := mocks.NewMenuService(t)
		svc := service.NewRecommendationService(recommender, nil, menus, nil, nil, nil)

		result, err := svc.Recommend(context.Background(), domain.RecommendRequest{MenuItems: "Rice, Dal"})
		require.NoError(t, err)
		assert.Empty(t, result.RecommendedPlate)
		menus.AssertNotCalled(t, "Today", mock.Anything)
	})
}

func TestMergeProfile(t *testing.T) {
	base := map[string]any{"weight_kg": 70.0, "goal": "gain", "sex": "male"}
	override := map[string]any{"weight": 82, "goalType": "lose"}

	merged := service.MergeProfile(base, override)

	assert.Equal(t, map[string]any{"weight": 82, "goalType": "lose", "sex": "male"}, merged)
	assert.Equal(t, 70.0, base["weight_kg"])
}

func TestRecommendationService_Lookup(t *testing.T) {
	recommender := engine.NewRecommender(engine.NewClassifier(nil))
	repository := mocks.NewRecommendationRepository(t)
	qr := service.DefaultQRGenerator{BaseURL: "https://plates.example.com/"}
	svc := service.NewRecommendationService(recommender, nil, nil, repository, nil, qr)
	ctx := context.Background()

	rec := &domain.RecommendationResult{ID: "r-1", MealType: "lunch"}
	repository.On("GetRecommendation", ctx, "r-1").Return(rec, nil).Twice()
	repository.On("GetRecommendation", ctx, "r-2").Return(nil, notFound("recommendation")).Twice()
	repository.On("ListRecommendations", ctx, "asha", service.MaxHistoryLimit).Return([]domain.RecommendationResult{*rec}, nil).Once()
	repository.On("ListRecommendations", ctx, "asha", service.DefaultHistoryLimit).Return([]domain.RecommendationResult{}, nil).Once()

	got, err := svc.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = svc.Get(ctx, "r-2")
	assert.ErrorIs(t, err, service.ErrRecommendationNotFound)

	png, err := svc.QRCode(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = svc.QRCode(ctx, "r-2")
	assert.ErrorIs(t, err, service.ErrRecommendationNotFound)

	history, err := svc.History(ctx, "asha", 500)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = svc.History(ctx, "asha", 0)
	require.NoError(t, err)

	assert.Equal(t, "https://plates.example.com/plate.html?id=r-1", qr.Link("r-1"))
}
