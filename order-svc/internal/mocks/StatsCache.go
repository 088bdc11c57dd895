package mocks

import (
	"context"
	"time"

	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StatsCache is a mock type for the StatsCache type
type StatsCache struct {
	mock.Mock
}

// DailyStats provides a mock function with given fields: ctx, day
func (_m *StatsCache) DailyStats(ctx context.Context, day time.Time) (*domain.DailyStats, error) {
	ret := _m.Called(ctx, day)

	if len(ret) == 0 {
		panic("no return value specified for DailyStats")
	}

	var r0 *domain.DailyStats
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) (*domain.DailyStats, error)); ok {
		return rf(ctx, day)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) *domain.DailyStats); ok {
		r0 = rf(ctx, day)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.DailyStats)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, day)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TopProducts provides a mock function with given fields: ctx, day, limit
func (_m *StatsCache) TopProducts(ctx context.Context, day time.Time, limit int) ([]domain.ProductScore, error) {
	ret := _m.Called(ctx, day, limit)

	if len(ret) == 0 {
		panic("no return value specified for TopProducts")
	}

	var r0 []domain.ProductScore
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, int) ([]domain.ProductScore, error)); ok {
		return rf(ctx, day, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, int) []domain.ProductScore); ok {
		r0 = rf(ctx, day, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.ProductScore)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time, int) error); ok {
		r1 = rf(ctx, day, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewStatsCache creates a new instance of StatsCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStatsCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsCache {
	mock := &StatsCache{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
