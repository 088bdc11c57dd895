package mocks

import (
	"context"
	"time"

	mock "github.com/stretchr/testify/mock"
)

// OrderNumberGenerator is a mock type for the OrderNumberGenerator type
type OrderNumberGenerator struct {
	mock.Mock
}

// Next provides a mock function with given fields: ctx, at
func (_m *OrderNumberGenerator) Next(ctx context.Context, at time.Time) (string, error) {
	ret := _m.Called(ctx, at)

	if len(ret) == 0 {
		panic("no return value specified for Next")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) (string, error)); ok {
		return rf(ctx, at)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) string); ok {
		r0 = rf(ctx, at)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, at)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewOrderNumberGenerator creates a new instance of OrderNumberGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewOrderNumberGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderNumberGenerator {
	mock := &OrderNumberGenerator{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
