package mocks

import (
	"context"

	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// WaiterCallRepository is a mock type for the WaiterCallRepository type
type WaiterCallRepository struct {
	mock.Mock
}

// CreateWaiterCall provides a mock function with given fields: ctx, call
func (_m *WaiterCallRepository) CreateWaiterCall(ctx context.Context, call *domain.WaiterCall) error {
	ret := _m.Called(ctx, call)

	if len(ret) == 0 {
		panic("no return value specified for CreateWaiterCall")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaiterCall) error); ok {
		r0 = rf(ctx, call)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetWaiterCall provides a mock function with given fields: ctx, id
func (_m *WaiterCallRepository) GetWaiterCall(ctx context.Context, id int) (*domain.WaiterCall, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetWaiterCall")
	}

	var r0 *domain.WaiterCall
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.WaiterCall, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.WaiterCall); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.WaiterCall)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListWaiterCalls provides a mock function with given fields: ctx, status
func (_m *WaiterCallRepository) ListWaiterCalls(ctx context.Context, status *domain.WaiterCallStatus) ([]domain.WaiterCall, error) {
	ret := _m.Called(ctx, status)

	if len(ret) == 0 {
		panic("no return value specified for ListWaiterCalls")
	}

	var r0 []domain.WaiterCall
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaiterCallStatus) ([]domain.WaiterCall, error)); ok {
		return rf(ctx, status)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaiterCallStatus) []domain.WaiterCall); ok {
		r0 = rf(ctx, status)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.WaiterCall)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, *domain.WaiterCallStatus) error); ok {
		r1 = rf(ctx, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateWaiterCallStatus provides a mock function with given fields: ctx, call, from
func (_m *WaiterCallRepository) UpdateWaiterCallStatus(ctx context.Context, call *domain.WaiterCall, from domain.WaiterCallStatus) (int64, error) {
	ret := _m.Called(ctx, call, from)

	if len(ret) == 0 {
		panic("no return value specified for UpdateWaiterCallStatus")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaiterCall, domain.WaiterCallStatus) (int64, error)); ok {
		return rf(ctx, call, from)
	}
	if rf, ok := ret.Get(0).(func(context.Context, *domain.WaiterCall, domain.WaiterCallStatus) int64); ok {
		r0 = rf(ctx, call, from)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, *domain.WaiterCall, domain.WaiterCallStatus) error); ok {
		r1 = rf(ctx, call, from)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewWaiterCallRepository creates a new instance of WaiterCallRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewWaiterCallRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *WaiterCallRepository {
	mock := &WaiterCallRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
