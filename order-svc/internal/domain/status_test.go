package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderCompleted, true},
		{OrderPending, OrderCancelled, true},
		{OrderReady, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderPreparing, OrderCompleted, false},
		{OrderReady, OrderPreparing, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderPending, OrderPending, false},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.from)+"->"+string(testCase.to), func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.from.CanTransitionTo(testCase.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderReady.IsTerminal())
	assert.False(t, OrderStatus("served").Valid())
}

func TestWaiterCallStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, WaiterCallPending.CanTransitionTo(WaiterCallAcknowledged))
	assert.True(t, WaiterCallPending.CanTransitionTo(WaiterCallCompleted))
	assert.True(t, WaiterCallAcknowledged.CanTransitionTo(WaiterCallCompleted))
	assert.False(t, WaiterCallCompleted.CanTransitionTo(WaiterCallPending))
	assert.False(t, WaiterCallAcknowledged.CanTransitionTo(WaiterCallAcknowledged))
	assert.False(t, WaiterCallPending.CanTransitionTo("done"))
}

func TestQRToken(t *testing.T) {
	assert.Equal(t, "QR_TABLE_007", QRToken(7))
	assert.Equal(t, "QR_TABLE_003", QRToken(3))
	assert.Equal(t, "QR_TABLE_120", QRToken(120))
	assert.Equal(t, QRToken(7), QRToken(7))
	assert.Equal(t, "Masa 7", DefaultTableName(7))
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrEmptyCart, ErrInvalidInput))
	assert.True(t, errors.Is(ErrInvalidTransition, ErrConflict))
	assert.True(t, errors.Is(ErrOrderCreationFailed, ErrPersistence))
	assert.True(t, errors.Is(NotFound("table"), ErrNotFound))
	assert.True(t, errors.Is(InvalidInput("bad %s", "x"), ErrInvalidInput))
}
