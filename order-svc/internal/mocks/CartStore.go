package mocks

import (
	"context"

	"qrmenu/order-svc/internal/cart"

	mock "github.com/stretchr/testify/mock"
)

// CartStore is a mock type for the CartStore type
type CartStore struct {
	mock.Mock
}

// LoadCart provides a mock function with given fields: ctx, sessionID
func (_m *CartStore) LoadCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	ret := _m.Called(ctx, sessionID)

	if len(ret) == 0 {
		panic("no return value specified for LoadCart")
	}

	var r0 *cart.Cart
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*cart.Cart, error)); ok {
		return rf(ctx, sessionID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *cart.Cart); ok {
		r0 = rf(ctx, sessionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*cart.Cart)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sessionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SaveCart provides a mock function with given fields: ctx, sessionID, c
func (_m *CartStore) SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	ret := _m.Called(ctx, sessionID, c)

	if len(ret) == 0 {
		panic("no return value specified for SaveCart")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, *cart.Cart) error); ok {
		r0 = rf(ctx, sessionID, c)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DeleteCart provides a mock function with given fields: ctx, sessionID
func (_m *CartStore) DeleteCart(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteCart")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, sessionID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewCartStore creates a new instance of CartStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCartStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartStore {
	mock := &CartStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
