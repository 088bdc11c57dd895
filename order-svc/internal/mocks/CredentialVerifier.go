package mocks

import (
	"context"

	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// CredentialVerifier is a mock type for the CredentialVerifier type
type CredentialVerifier struct {
	mock.Mock
}

// Verify provides a mock function with given fields: ctx, login, password
func (_m *CredentialVerifier) Verify(ctx context.Context, login string, password string) (*domain.AdminUser, error) {
	ret := _m.Called(ctx, login, password)

	if len(ret) == 0 {
		panic("no return value specified for Verify")
	}

	var r0 *domain.AdminUser
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*domain.AdminUser, error)); ok {
		return rf(ctx, login, password)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *domain.AdminUser); ok {
		r0 = rf(ctx, login, password)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.AdminUser)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, login, password)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewCredentialVerifier creates a new instance of CredentialVerifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCredentialVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *CredentialVerifier {
	mock := &CredentialVerifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
