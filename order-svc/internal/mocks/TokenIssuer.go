package mocks

import (
	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// TokenIssuer is a mock type for the TokenIssuer type
type TokenIssuer struct {
	mock.Mock
}

// Issue provides a mock function with given fields: session
func (_m *TokenIssuer) Issue(session domain.Session) (string, error) {
	ret := _m.Called(session)

	if len(ret) == 0 {
		panic("no return value specified for Issue")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(domain.Session) (string, error)); ok {
		return rf(session)
	}
	if rf, ok := ret.Get(0).(func(domain.Session) string); ok {
		r0 = rf(session)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(domain.Session) error); ok {
		r1 = rf(session)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Parse provides a mock function with given fields: token
func (_m *TokenIssuer) Parse(token string) (*domain.Session, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for Parse")
	}

	var r0 *domain.Session
	var r1 error
	if rf, ok := ret.Get(0).(func(string) (*domain.Session, error)); ok {
		return rf(token)
	}
	if rf, ok := ret.Get(0).(func(string) *domain.Session); ok {
		r0 = rf(token)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Session)
		}
	}

	if rf, ok := ret.Get(1).(func(string) error); ok {
		r1 = rf(token)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewTokenIssuer creates a new instance of TokenIssuer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTokenIssuer(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenIssuer {
	mock := &TokenIssuer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
