package mocks

import (
	"context"
	"io"

	"portion-vision/plate-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// ProfileRepository is a mock type for the ProfileRepository type
type ProfileRepository struct {
	mock.Mock
}

func (_m *ProfileRepository) SaveProfile(ctx context.Context, profile *domain.StoredProfile) error {
	ret := _m.Called(ctx, profile)
	return ret.Error(0)
}

func (_m *ProfileRepository) GetProfile(ctx context.Context, id string) (*domain.StoredProfile, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.StoredProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.StoredProfile)
	}
	return r0, ret.Error(1)
}

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MenuRepository is a mock type for the MenuRepository type
type MenuRepository struct {
	mock.Mock
}

func (_m *MenuRepository) SaveMenu(ctx context.Context, menu *domain.Menu) error {
	ret := _m.Called(ctx, menu)
	return ret.Error(0)
}

func (_m *MenuRepository) GetMenu(ctx context.Context, date string) (*domain.Menu, error) {
	ret := _m.Called(ctx, date)

	var r0 *domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Menu)
	}
	return r0, ret.Error(1)
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RecommendationRepository is a mock type for the RecommendationRepository type
type RecommendationRepository struct {
	mock.Mock
}

func (_m *RecommendationRepository) SaveRecommendation(ctx context.Context, profileID string, rec *domain.RecommendationResult) error {
	ret := _m.Called(ctx, profileID, rec)
	return ret.Error(0)
}

func (_m *RecommendationRepository) GetRecommendation(ctx context.Context, id string) (*domain.RecommendationResult, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.RecommendationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RecommendationResult)
	}
	return r0, ret.Error(1)
}

func (_m *RecommendationRepository) ListRecommendations(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error) {
	ret := _m.Called(ctx, profileID, limit)

	var r0 []domain.RecommendationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RecommendationResult)
	}
	return r0, ret.Error(1)
}

func NewRecommendationRepository(t testingT) *RecommendationRepository {
	m := &RecommendationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MenuCache is a mock type for the MenuCache type
type MenuCache struct {
	mock.Mock
}

func (_m *MenuCache) GetMenu(ctx context.Context, date string) (*domain.Menu, error) {
	ret := _m.Called(ctx, date)

	var r0 *domain.Menu
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Menu)
	}
	return r0, ret.Error(1)
}

func (_m *MenuCache) SetMenu(ctx context.Context, menu *domain.Menu) error {
	ret := _m.Called(ctx, menu)
	return ret.Error(0)
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PlatePublisher is a mock type for the PlatePublisher type
type PlatePublisher struct {
	mock.Mock
}

func (_m *PlatePublisher) PublishPlate(ctx context.Context, event domain.PlateEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewPlatePublisher(t testingT) *PlatePublisher {
	m := &PlatePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MenuExtractor is a mock type for the MenuExtractor type
type MenuExtractor struct {
	mock.Mock
}

func (_m *MenuExtractor) Extract(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	ret := _m.Called(ctx, filename, image)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

func NewMenuExtractor(t testingT) *MenuExtractor {
	m := &MenuExtractor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
