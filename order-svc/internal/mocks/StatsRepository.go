package mocks

import (
	"context"
	"time"

	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StatsRepository is a mock type for the StatsRepository type
type StatsRepository struct {
	mock.Mock
}

// CountOrders provides a mock function with given fields: ctx, status
func (_m *StatsRepository) CountOrders(ctx context.Context, status *domain.OrderStatus) (int, error) {
	ret := _m.Called(ctx, status)

	if len(ret) == 0 {
		panic("no return value specified for CountOrders")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.OrderStatus) (int, error)); ok {
		return rf(ctx, status)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *domain.OrderStatus) int); ok {
		r0 = rf(ctx, status)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(context.Context, *domain.OrderStatus) error); ok {
		r1 = rf(ctx, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CountProducts provides a mock function with given fields: ctx
func (_m *StatsRepository) CountProducts(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for CountProducts")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (int, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) int); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DailyOrderStats provides a mock function with given fields: ctx, from, to
func (_m *StatsRepository) DailyOrderStats(ctx context.Context, from time.Time, to time.Time) (domain.DailyStats, error) {
	ret := _m.Called(ctx, from, to)

	if len(ret) == 0 {
		panic("no return value specified for DailyOrderStats")
	}

	var r0 domain.DailyStats
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, time.Time) (domain.DailyStats, error)); ok {
		return rf(ctx, from, to)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, time.Time) domain.DailyStats); ok {
		r0 = rf(ctx, from, to)
	} else {
		r0 = ret.Get(0).(domain.DailyStats)
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time, time.Time) error); ok {
		r1 = rf(ctx, from, to)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TopProducts provides a mock function with given fields: ctx, from, to, limit
func (_m *StatsRepository) TopProducts(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.ProductScore, error) {
	ret := _m.Called(ctx, from, to, limit)

	if len(ret) == 0 {
		panic("no return value specified for TopProducts")
	}

	var r0 []domain.ProductScore
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, time.Time, int) ([]domain.ProductScore, error)); ok {
		return rf(ctx, from, to, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, time.Time, int) []domain.ProductScore); ok {
		r0 = rf(ctx, from, to, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.ProductScore)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time, time.Time, int) error); ok {
		r1 = rf(ctx, from, to, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewStatsRepository creates a new instance of StatsRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStatsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsRepository {
	mock := &StatsRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
