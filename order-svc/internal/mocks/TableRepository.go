package mocks

import (
	"context"

	"qrmenu/order-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// TableRepository is a mock type for the TableRepository type
type TableRepository struct {
	mock.Mock
}

// CreateTable provides a mock function with given fields: ctx, table
func (_m *TableRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	ret := _m.Called(ctx, table)

	if len(ret) == 0 {
		panic("no return value specified for CreateTable")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Table) error); ok {
		r0 = rf(ctx, table)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetTable provides a mock function with given fields: ctx, id
func (_m *TableRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetTable")
	}

	var r0 *domain.Table
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (*domain.Table, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) *domain.Table); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Table)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetTableByQRCode provides a mock function with given fields: ctx, qrCode
func (_m *TableRepository) GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	ret := _m.Called(ctx, qrCode)

	if len(ret) == 0 {
		panic("no return value specified for GetTableByQRCode")
	}

	var r0 *domain.Table
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.Table, error)); ok {
		return rf(ctx, qrCode)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.Table); ok {
		r0 = rf(ctx, qrCode)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Table)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, qrCode)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListTables provides a mock function with given fields: ctx
func (_m *TableRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListTables")
	}

	var r0 []domain.Table
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.Table, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Table); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.Table)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateTable provides a mock function with given fields: ctx, table
func (_m *TableRepository) UpdateTable(ctx context.Context, table *domain.Table) error {
	ret := _m.Called(ctx, table)

	if len(ret) == 0 {
		panic("no return value specified for UpdateTable")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Table) error); ok {
		r0 = rf(ctx, table)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DeleteTable provides a mock function with given fields: ctx, id
func (_m *TableRepository) DeleteTable(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for DeleteTable")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (int64, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) int64); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewTableRepository creates a new instance of TableRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTableRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *TableRepository {
	mock := &TableRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
