package mocks

import (
	"context"

	"portion-vision/stats-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// StoreInterface is a mock type for the StoreInterface type
type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) RecordPlate(ctx context.Context, event domain.PlateEvent) (bool, error) {
	ret := _m.Called(ctx, event)
	return ret.Bool(0), ret.Error(1)
}

func (_m *StoreInterface) TopItems(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error) {
	ret := _m.Called(ctx, meal, limit)

	var r0 []domain.ItemCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemCount)
	}
	return r0, ret.Error(1)
}

func (_m *StoreInterface) Calories(ctx context.Context, meal string) (domain.CalorieStats, error) {
	ret := _m.Called(ctx, meal)
	return ret.Get(0).(domain.CalorieStats), ret.Error(1)
}

func (_m *StoreInterface) Daily(ctx context.Context, date string) (domain.DailyStats, error) {
	ret := _m.Called(ctx, date)
	return ret.Get(0).(domain.DailyStats), ret.Error(1)
}

func NewStoreInterface(t testingT) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// StatsInterface is a mock type for the StatsInterface type
type StatsInterface struct {
	mock.Mock
}

func (_m *StatsInterface) Popular(ctx context.Context, meal string, limit int) ([]domain.ItemCount, error) {
	ret := _m.Called(ctx, meal, limit)

	var r0 []domain.ItemCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemCount)
	}
	return r0, ret.Error(1)
}

func (_m *StatsInterface) Calories(ctx context.Context, meal string) (domain.CalorieStats, error) {
	ret := _m.Called(ctx, meal)
	return ret.Get(0).(domain.CalorieStats), ret.Error(1)
}

func (_m *StatsInterface) Daily(ctx context.Context, date string) (domain.DailyStats, error) {
	ret := _m.Called(ctx, date)
	return ret.Get(0).(domain.DailyStats), ret.Error(1)
}

func NewStatsInterface(t testingT) *StatsInterface {
	m := &StatsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
