package mocks

import (
	"context"
	"time"

	mock "github.com/stretchr/testify/mock"
)

// RevocationStore is a mock type for the RevocationStore type
type RevocationStore struct {
	mock.Mock
}

// Revoke provides a mock function with given fields: ctx, sessionID, ttl
func (_m *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	ret := _m.Called(ctx, sessionID, ttl)

	if len(ret) == 0 {
		panic("no return value specified for Revoke")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Duration) error); ok {
		r0 = rf(ctx, sessionID, ttl)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IsRevoked provides a mock function with given fields: ctx, sessionID
func (_m *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	ret := _m.Called(ctx, sessionID)

	if len(ret) == 0 {
		panic("no return value specified for IsRevoked")
	}

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (bool, error)); ok {
		return rf(ctx, sessionID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, sessionID)
	} else {
		r0 = ret.Get(0).(bool)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sessionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewRevocationStore creates a new instance of RevocationStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRevocationStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *RevocationStore {
	mock := &RevocationStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
