package mocks

import (
	"context"

	"portion-vision/plate-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// RecommendationService is a mock type for the RecommendationServiceInterface type
type RecommendationService struct {
	mock.Mock
}

func (_m *RecommendationService) Recommend(ctx context.Context, req domain.RecommendRequest) (*domain.RecommendationResult, error) {
	ret := _m.Called(ctx, req)

	var r0 *domain.RecommendationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RecommendationResult)
	}
	return r0, ret.Error(1)
}

func (_m *RecommendationService) Get(ctx context.Context, id string) (*domain.RecommendationResult, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.RecommendationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RecommendationResult)
	}
	return r0, ret.Error(1)
}

func (_m *RecommendationService) History(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error) {
	ret := _m.Called(ctx, profileID, limit)

	var r0 []domain.RecommendationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RecommendationResult)
	}
	return r0, ret.Error(1)
}

func (_m *RecommendationService) QRCode(ctx context.Context, id string) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewRecommendationService(t testingT) *RecommendationService {
	m := &RecommendationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ProfileService is a mock type for the ProfileServiceInterface type
type ProfileService struct {
	mock.Mock
}

func (_m *ProfileService) Save(ctx context.Context, id string, raw map[string]any) (*domain.ProfileView, error) {
	ret := _m.Called(ctx, id, raw)

	var r0 *domain.ProfileView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ProfileView)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileService) Get(ctx context.Context, id string) (*domain.ProfileView, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.ProfileView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ProfileView)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileService) Estimate(raw map[string]any) domain.ProfileInsights {
	ret := _m.Called(raw)
	return ret.Get(0).(domain.ProfileInsights)
}

func NewProfileService(t testingT) *ProfileService {
	m := &ProfileService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MenuService is a mock type for the MenuServiceInterface type
type MenuService struct {
	mock.Mock
}

func (_m *MenuService) Today(ctx context.Context) (*domain.Menu, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Menu)
	}
	return r0, ret.Error(1)
}

func (_m *MenuService) SetToday(ctx context.Context, items []string, source string) (*domain.Menu, error) {
	ret := _m.Called(ctx, items, source)

	var r0 *domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Menu)
	}
	return r0, ret.Error(1)
}

func (_m *MenuService) ImportImage(ctx context.Context, filename string, image []byte) (*domain.Menu, error) {
	ret := _m.Called(ctx, filename, image)

	var r0 *domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Menu)
	}
	return r0, ret.Error(1)
}

func NewMenuService(t testingT) *MenuService {
	m := &MenuService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
