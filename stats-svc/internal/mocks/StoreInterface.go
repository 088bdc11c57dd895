package mocks

import (
	"context"
	"time"

	"qrmenu/events"

	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
)

// StoreInterface is a mock type for the StoreInterface type
type StoreInterface struct {
	mock.Mock
}

// AdjustOrder provides a mock function with given fields: ctx, day, items, total, sign
func (_m *StoreInterface) AdjustOrder(ctx context.Context, day time.Time, items []events.Item, total decimal.Decimal, sign int64) error {
	ret := _m.Called(ctx, day, items, total, sign)

	if len(ret) == 0 {
		panic("no return value specified for AdjustOrder")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, []events.Item, decimal.Decimal, int64) error); ok {
		r0 = rf(ctx, day, items, total, sign)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IncrementDaily provides a mock function with given fields: ctx, day, orderType, total
func (_m *StoreInterface) IncrementDaily(ctx context.Context, day time.Time, orderType string, total decimal.Decimal) error {
	ret := _m.Called(ctx, day, orderType, total)

	if len(ret) == 0 {
		panic("no return value specified for IncrementDaily")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, string, decimal.Decimal) error); ok {
		r0 = rf(ctx, day, orderType, total)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IncrementProducts provides a mock function with given fields: ctx, day, items
func (_m *StoreInterface) IncrementProducts(ctx context.Context, day time.Time, items []events.Item) error {
	ret := _m.Called(ctx, day, items)

	if len(ret) == 0 {
		panic("no return value specified for IncrementProducts")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time, []events.Item) error); ok {
		r0 = rf(ctx, day, items)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewStoreInterface creates a new instance of StoreInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	mock := &StoreInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
