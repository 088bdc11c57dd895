package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"qrmenu/events"
	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/mocks"
	"qrmenu/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var nopLogger = zap.NewNop().Sugar()

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ofType(t events.Type) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == t })
}

func tantuniItems() []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: 1, ProductName: "Acılı Tantuni", ProductPrice: money("90.00"), Quantity: 2},
		{ProductID: 2, ProductName: "Ayran", ProductPrice: money("15.00"), Quantity: 1},
	}
}

func TestOrderService_Create(t *testing.T) {
	expected := money("195.00")
	wrong := money("180.00")

	tests := []struct {
		name      string
		input     service.CreateOrderInput
		setupMock func(*mocks.OrderRepository, *mocks.OrderNumberGenerator, *mocks.Publisher)
		wantErr   error
	}{
		{
			name:  "valid order",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeTakeaway, Items: tantuniItems(), ExpectedTotal: &expected},
			setupMock: func(repo *mocks.OrderRepository, numbers *mocks.OrderNumberGenerator, pub *mocks.Publisher) {
				numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-001", nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).ID = 42
				}).Return(nil).Once()
				pub.On("Publish", mock.Anything, ofType(events.OrderCreated)).Return(nil).Once()
			},
		},
		{
			name:      "empty items",
			input:     service.CreateOrderInput{OrderType: domain.OrderTypeTakeaway},
			setupMock: func(*mocks.OrderRepository, *mocks.OrderNumberGenerator, *mocks.Publisher) {},
			wantErr:   domain.ErrEmptyCart,
		},
		{
			name:      "unknown order type",
			input:     service.CreateOrderInput{OrderType: "delivery", Items: tantuniItems()},
			setupMock: func(*mocks.OrderRepository, *mocks.OrderNumberGenerator, *mocks.Publisher) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name: "zero quantity",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeTakeaway, Items: []domain.OrderItem{
				{ProductName: "Ayran", ProductPrice: money("15.00"), Quantity: 0},
			}},
			setupMock: func(*mocks.OrderRepository, *mocks.OrderNumberGenerator, *mocks.Publisher) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "client total does not match",
			input:     service.CreateOrderInput{OrderType: domain.OrderTypeTakeaway, Items: tantuniItems(), ExpectedTotal: &wrong},
			setupMock: func(*mocks.OrderRepository, *mocks.OrderNumberGenerator, *mocks.Publisher) {},
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:  "number collision is retried",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeDineIn, Items: tantuniItems()},
			setupMock: func(repo *mocks.OrderRepository, numbers *mocks.OrderNumberGenerator, pub *mocks.Publisher) {
				numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-001", nil).Once()
				numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-002", nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
				pub.On("Publish", mock.Anything, ofType(events.OrderCreated)).Return(nil).Once()
			},
		},
		{
			name:  "collisions exhaust retries",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeDineIn, Items: tantuniItems()},
			setupMock: func(repo *mocks.OrderRepository, numbers *mocks.OrderNumberGenerator, pub *mocks.Publisher) {
				numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-001", nil).Times(3)
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(domain.ErrConflict).Times(3)
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:  "sequence unavailable",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeDineIn, Items: tantuniItems()},
			setupMock: func(repo *mocks.OrderRepository, numbers *mocks.OrderNumberGenerator, pub *mocks.Publisher) {
				numbers.On("Next", mock.Anything, mock.Anything).Return("", errors.New("redis down")).Once()
			},
			wantErr: domain.ErrOrderCreationFailed,
		},
		{
			name:  "database error",
			input: service.CreateOrderInput{OrderType: domain.OrderTypeDineIn, Items: tantuniItems()},
			setupMock: func(repo *mocks.OrderRepository, numbers *mocks.OrderNumberGenerator, pub *mocks.Publisher) {
				numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-001", nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
			},
			wantErr: domain.ErrOrderCreationFailed,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			numbers := mocks.NewOrderNumberGenerator(t)
			pub := mocks.NewPublisher(t)
			testCase.setupMock(repo, numbers, pub)

			svc := service.NewOrderService(repo, numbers, pub, nopLogger)
			order, err := svc.Create(context.Background(), testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderPending, order.Status)
			assert.NotEmpty(t, order.OrderNumber)

			sum := decimal.Zero
			for _, item := range order.Items {
				assert.True(t, item.Subtotal.Equal(item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
				sum = sum.Add(item.Subtotal)
			}
			assert.True(t, order.TotalAmount.Equal(sum), "total %s != items %s", order.TotalAmount, sum)
			assert.True(t, order.TotalAmount.Equal(money("195.00")))
		})
	}
}

func TestOrderService_Create_CurrencyPrecision(t *testing.T) {
	floatSum := money("122.80000000000001")

	tests := []struct {
		name      string
		items     []domain.OrderItem
		expected  *decimal.Decimal
		wantTotal string
	}{
		{
			name: "client total with float drift",
			items: []domain.OrderItem{
				{ProductName: "Kaşarlı Tantuni", ProductPrice: money("92.5"), Quantity: 1},
				{ProductName: "Şalgam", ProductPrice: money("17.9"), Quantity: 1},
				{ProductName: "Ayran", ProductPrice: money("12.4"), Quantity: 1},
			},
			expected:  &floatSum,
			wantTotal: "122.80",
		},
		{
			name: "sub-cent prices are rounded per item",
			items: []domain.OrderItem{
				{ProductName: "Su", ProductPrice: money("0.005"), Quantity: 1},
				{ProductName: "Ekmek", ProductPrice: money("0.005"), Quantity: 1},
			},
			wantTotal: "0.02",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			numbers := mocks.NewOrderNumberGenerator(t)
			numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-010", nil).Once()
			repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()

			order, err := service.NewOrderService(repo, numbers, nil, nopLogger).Create(context.Background(), service.CreateOrderInput{
				OrderType:     domain.OrderTypeTakeaway,
				Items:         testCase.items,
				ExpectedTotal: testCase.expected,
			})

			require.NoError(t, err)
			assert.True(t, order.TotalAmount.Equal(money(testCase.wantTotal)), "total %s", order.TotalAmount)
			sum := decimal.Zero
			for _, item := range order.Items {
				assert.True(t, item.Subtotal.Equal(item.Subtotal.Round(2)), "subtotal %s", item.Subtotal)
				sum = sum.Add(item.Subtotal)
			}
			assert.True(t, order.TotalAmount.Equal(sum))
		})
	}
}

func TestOrderService_Create_PublishesAfterClientLeft(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	numbers := mocks.NewOrderNumberGenerator(t)
	pub := mocks.NewPublisher(t)

	ctx, cancel := context.WithCancel(context.Background())
	numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-011", nil).Once()
	repo.On("CreateOrder", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		cancel()
	}).Return(nil).Once()
	pub.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), ofType(events.OrderCreated)).Return(nil).Once()

	_, err := service.NewOrderService(repo, numbers, pub, nopLogger).Create(ctx, service.CreateOrderInput{
		OrderType: domain.OrderTypeTakeaway,
		Items:     tantuniItems(),
	})

	require.NoError(t, err)
}

func TestOrderService_Create_PublishFailureKeepsOrder(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	numbers := mocks.NewOrderNumberGenerator(t)
	pub := mocks.NewPublisher(t)

	numbers.On("Next", mock.Anything, mock.Anything).Return("ORD-20261016-007", nil).Once()
	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()

	order, err := service.NewOrderService(repo, numbers, pub, nopLogger).Create(context.Background(), service.CreateOrderInput{
		OrderType: domain.OrderTypeTakeaway,
		Items:     tantuniItems(),
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-20261016-007", order.OrderNumber)
}

func TestOrderService_SetStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    domain.OrderStatus
		next       domain.OrderStatus
		override   bool
		affected   int64
		wantUpdate bool
		wantErr    error
	}{
		{name: "pending to preparing", current: domain.OrderPending, next: domain.OrderPreparing, affected: 1, wantUpdate: true},
		{name: "ready to completed", current: domain.OrderReady, next: domain.OrderCompleted, affected: 1, wantUpdate: true},
		{name: "cancel pending", current: domain.OrderPending, next: domain.OrderCancelled, affected: 1, wantUpdate: true},
		{name: "skip without override", current: domain.OrderPreparing, next: domain.OrderCompleted, wantErr: domain.ErrInvalidTransition},
		{name: "reverse without override", current: domain.OrderReady, next: domain.OrderPending, wantErr: domain.ErrInvalidTransition},
		{name: "leave terminal without override", current: domain.OrderCompleted, next: domain.OrderPreparing, wantErr: domain.ErrInvalidTransition},
		{name: "skip with override", current: domain.OrderPreparing, next: domain.OrderCompleted, override: true, affected: 1, wantUpdate: true},
		{name: "same status is a no-op", current: domain.OrderReady, next: domain.OrderReady},
		{name: "concurrent change", current: domain.OrderPending, next: domain.OrderPreparing, affected: 0, wantUpdate: true, wantErr: domain.ErrConflict},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			pub := mocks.NewPublisher(t)

			repo.On("GetOrder", mock.Anything, 5).Return(&domain.Order{ID: 5, OrderNumber: "ORD-20261016-005", Status: testCase.current}, nil).Once()
			if testCase.wantUpdate {
				repo.On("UpdateOrderStatus", mock.Anything, 5, testCase.current, testCase.next).Return(testCase.affected, nil).Once()
			}
			if testCase.wantUpdate && testCase.wantErr == nil {
				pub.On("Publish", mock.Anything, ofType(events.OrderStatusChanged)).Return(nil).Once()
			}

			svc := service.NewOrderService(repo, mocks.NewOrderNumberGenerator(t), pub, nopLogger)
			order, err := svc.SetStatus(context.Background(), 5, testCase.next, testCase.override)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.next, order.Status)
		})
	}
}

func TestOrderService_SetStatus_CancellationEventCarriesItems(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	pub := mocks.NewPublisher(t)
	placed := time.Date(2026, 10, 15, 22, 30, 0, 0, time.UTC)

	repo.On("GetOrder", mock.Anything, 5).Return(&domain.Order{
		ID:          5,
		OrderNumber: "ORD-20261016-005",
		OrderType:   domain.OrderTypeDineIn,
		Status:      domain.OrderPreparing,
		TotalAmount: money("195.00"),
		CreatedAt:   placed,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "Acılı Tantuni", Quantity: 2},
			{ProductID: 2, ProductName: "Ayran", Quantity: 1},
		},
	}, nil).Once()
	repo.On("UpdateOrderStatus", mock.Anything, 5, domain.OrderPreparing, domain.OrderCancelled).Return(int64(1), nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderStatusChanged &&
			e.Status == "cancelled" && e.PreviousStatus == "preparing" &&
			e.OrderedAt.Equal(placed) && len(e.Items) == 2 && e.Items[0].Quantity == 2 &&
			e.TotalAmount != nil && e.TotalAmount.Equal(money("195"))
	})).Return(nil).Once()

	svc := service.NewOrderService(repo, mocks.NewOrderNumberGenerator(t), pub, nopLogger)
	_, err := svc.SetStatus(context.Background(), 5, domain.OrderCancelled, false)

	require.NoError(t, err)
}

func TestOrderService_SetStatus_UnknownStatus(t *testing.T) {
	svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewOrderNumberGenerator(t), nil, nopLogger)

	_, err := svc.SetStatus(context.Background(), 5, "shipped", true)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_List(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(repo, mocks.NewOrderNumberGenerator(t), nil, nopLogger)

	repo.On("ListOrders", mock.Anything, mock.MatchedBy(func(f domain.OrderFilter) bool {
		return f.Limit == 100 && f.Status != nil && *f.Status == domain.OrderReady
	})).Return([]domain.Order{{ID: 1, Status: domain.OrderReady}}, nil).Once()

	ready := domain.OrderReady
	orders, err := svc.List(context.Background(), domain.OrderFilter{Status: &ready, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	bogus := domain.OrderStatus("lost")
	_, err = svc.List(context.Background(), domain.OrderFilter{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTableService_Create(t *testing.T) {
	inactive := false

	tests := []struct {
		name      string
		input     service.TableInput
		mockError error
		want      *domain.Table
		wantErr   error
	}{
		{
			name:  "defaults",
			input: service.TableInput{TableNumber: 7},
			want: &domain.Table{
				TableNumber: 7,
				TableName:   "Masa 7",
				QRCode:      "QR_TABLE_007",
				Capacity:    domain.DefaultTableCapacity,
				Location:    domain.DefaultTableLocation,
				IsActive:    true,
			},
		},
		{
			name:  "explicit values",
			input: service.TableInput{TableNumber: 12, TableName: " Teras 1 ", Capacity: 6, Location: "Teras", IsActive: &inactive},
			want: &domain.Table{
				TableNumber: 12,
				TableName:   "Teras 1",
				QRCode:      "QR_TABLE_012",
				Capacity:    6,
				Location:    "Teras",
				IsActive:    false,
			},
		},
		{
			name:    "number below one",
			input:   service.TableInput{TableNumber: 0},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:      "duplicate number",
			input:     service.TableInput{TableNumber: 3},
			mockError: domain.ErrConflict,
			wantErr:   domain.ErrConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewTableRepository(t)
			if testCase.input.TableNumber >= 1 {
				repo.On("CreateTable", mock.Anything, mock.AnythingOfType("*domain.Table")).Return(testCase.mockError).Once()
			}

			table, err := service.NewTableService(repo, nopLogger).Create(context.Background(), testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, table)
		})
	}
}

func TestTableService_Update(t *testing.T) {
	existing := func() *domain.Table {
		return &domain.Table{ID: 3, TableNumber: 3, TableName: "Masa 3", QRCode: "QR_TABLE_003", Capacity: 4, IsActive: true}
	}
	renumber := 9
	same := 3
	zero := 0
	blank := "  "
	off := false

	t.Run("renumbering is rejected", func(t *testing.T) {
		repo := mocks.NewTableRepository(t)
		repo.On("GetTable", mock.Anything, 3).Return(existing(), nil).Once()

		_, err := service.NewTableService(repo, nopLogger).Update(context.Background(), 3, service.TablePatch{TableNumber: &renumber})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("capacity below one", func(t *testing.T) {
		repo := mocks.NewTableRepository(t)
		repo.On("GetTable", mock.Anything, 3).Return(existing(), nil).Once()

		_, err := service.NewTableService(repo, nopLogger).Update(context.Background(), 3, service.TablePatch{Capacity: &zero})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("partial update keeps qr code", func(t *testing.T) {
		repo := mocks.NewTableRepository(t)
		repo.On("GetTable", mock.Anything, 3).Return(existing(), nil).Once()
		repo.On("UpdateTable", mock.Anything, mock.AnythingOfType("*domain.Table")).Return(nil).Once()

		table, err := service.NewTableService(repo, nopLogger).Update(context.Background(), 3, service.TablePatch{
			TableNumber: &same,
			TableName:   &blank,
			IsActive:    &off,
		})
		require.NoError(t, err)
		assert.Equal(t, "QR_TABLE_003", table.QRCode)
		assert.Equal(t, "Masa 3", table.TableName)
		assert.Equal(t, 4, table.Capacity)
		assert.False(t, table.IsActive)
	})
}

func TestTableService_DeleteAndResolve(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	svc := service.NewTableService(repo, nopLogger)

	repo.On("DeleteTable", mock.Anything, 99).Return(int64(0), nil).Once()
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), domain.ErrNotFound)

	repo.On("GetTableByQRCode", mock.Anything, "QR_TABLE_004").Return(&domain.Table{ID: 4, TableNumber: 4, IsActive: false}, nil).Once()
	_, err := svc.ResolveByQR(context.Background(), "QR_TABLE_004")
	assert.ErrorIs(t, err, domain.ErrTableInactive)

	repo.On("GetTableByQRCode", mock.Anything, "QR_TABLE_003").Return(&domain.Table{ID: 3, TableNumber: 3, IsActive: true}, nil).Once()
	table, err := svc.ResolveByQR(context.Background(), " QR_TABLE_003 ")
	require.NoError(t, err)
	assert.Equal(t, 3, table.TableNumber)

	_, err = svc.ResolveByQR(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWaiterCallService_Create(t *testing.T) {
	now := time.Date(2026, 10, 16, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     service.WaiterCallInput
		table     *domain.Table
		tableErr  error
		wantErr   error
		wantStore bool
	}{
		{
			name:      "success",
			input:     service.WaiterCallInput{TableID: 3, TableNumber: 3, Note: " hesap lütfen "},
			table:     &domain.Table{ID: 3, TableNumber: 3, IsActive: true},
			wantStore: true,
		},
		{
			name:    "missing table id",
			input:   service.WaiterCallInput{},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:     "unknown table",
			input:    service.WaiterCallInput{TableID: 40},
			tableErr: domain.NotFound("table"),
			wantErr:  domain.ErrNotFound,
		},
		{
			name:    "inactive table",
			input:   service.WaiterCallInput{TableID: 4},
			table:   &domain.Table{ID: 4, TableNumber: 4, IsActive: false},
			wantErr: domain.ErrTableInactive,
		},
		{
			name:    "table number mismatch",
			input:   service.WaiterCallInput{TableID: 3, TableNumber: 5},
			table:   &domain.Table{ID: 3, TableNumber: 3, IsActive: true},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			calls := mocks.NewWaiterCallRepository(t)
			tables := mocks.NewTableRepository(t)
			pub := mocks.NewPublisher(t)

			if testCase.input.TableID > 0 {
				tables.On("GetTable", mock.Anything, testCase.input.TableID).Return(testCase.table, testCase.tableErr).Once()
			}
			if testCase.wantStore {
				calls.On("CreateWaiterCall", mock.Anything, mock.AnythingOfType("*domain.WaiterCall")).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.WaiterCall).ID = 11
				}).Return(nil).Once()
				pub.On("Publish", mock.Anything, ofType(events.WaiterCallCreated)).Return(nil).Once()
			}

			svc := service.NewWaiterCallService(calls, tables, pub, nopLogger).WithClock(func() time.Time { return now })
			call, err := svc.Create(context.Background(), testCase.input)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 11, call.ID)
			assert.Equal(t, domain.WaiterCallPending, call.Status)
			assert.Equal(t, "hesap lütfen", call.Note)
			assert.Equal(t, now, call.CreatedAt)
		})
	}
}

func TestWaiterCallService_Transition(t *testing.T) {
	created := time.Date(2026, 10, 16, 19, 0, 0, 0, time.UTC)

	t.Run("timestamps never go backwards", func(t *testing.T) {
		calls := mocks.NewWaiterCallRepository(t)
		pub := mocks.NewPublisher(t)
		call := &domain.WaiterCall{ID: 11, TableID: 3, TableNumber: 3, Status: domain.WaiterCallPending, CreatedAt: created}

		calls.On("GetWaiterCall", mock.Anything, 11).Return(call, nil).Twice()
		calls.On("UpdateWaiterCallStatus", mock.Anything, call, domain.WaiterCallPending).Return(int64(1), nil).Once()
		calls.On("UpdateWaiterCallStatus", mock.Anything, call, domain.WaiterCallAcknowledged).Return(int64(1), nil).Once()
		pub.On("Publish", mock.Anything, ofType(events.WaiterCallUpdated)).Return(nil).Twice()

		// The server clock lags the row's creation time.
		clock := created.Add(-time.Minute)
		svc := service.NewWaiterCallService(calls, mocks.NewTableRepository(t), pub, nopLogger).
			WithClock(func() time.Time { return clock })

		acked, err := svc.Transition(context.Background(), 11, domain.WaiterCallAcknowledged)
		require.NoError(t, err)
		require.NotNil(t, acked.AcknowledgedAt)
		assert.False(t, acked.AcknowledgedAt.Before(acked.CreatedAt))

		clock = created.Add(5 * time.Minute)
		done, err := svc.Transition(context.Background(), 11, domain.WaiterCallCompleted)
		require.NoError(t, err)
		require.NotNil(t, done.CompletedAt)
		assert.False(t, done.CompletedAt.Before(*done.AcknowledgedAt))
		assert.Equal(t, domain.WaiterCallCompleted, done.Status)
	})

	t.Run("acknowledging may be skipped", func(t *testing.T) {
		calls := mocks.NewWaiterCallRepository(t)
		pub := mocks.NewPublisher(t)
		call := &domain.WaiterCall{ID: 12, Status: domain.WaiterCallPending, CreatedAt: created}

		calls.On("GetWaiterCall", mock.Anything, 12).Return(call, nil).Once()
		calls.On("UpdateWaiterCallStatus", mock.Anything, call, domain.WaiterCallPending).Return(int64(1), nil).Once()
		pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		svc := service.NewWaiterCallService(calls, mocks.NewTableRepository(t), pub, nopLogger).
			WithClock(func() time.Time { return created.Add(time.Minute) })
		done, err := svc.Transition(context.Background(), 12, domain.WaiterCallCompleted)

		require.NoError(t, err)
		assert.Nil(t, done.AcknowledgedAt)
		require.NotNil(t, done.CompletedAt)
		assert.False(t, done.CompletedAt.Before(created))
	})

	tests := []struct {
		name       string
		current    domain.WaiterCallStatus
		next       domain.WaiterCallStatus
		wantUpdate bool
		wantErr    error
	}{
		{name: "backwards", current: domain.WaiterCallAcknowledged, next: domain.WaiterCallPending, wantErr: domain.ErrInvalidTransition},
		{name: "completed is final", current: domain.WaiterCallCompleted, next: domain.WaiterCallAcknowledged, wantErr: domain.ErrInvalidTransition},
		{name: "lost race", current: domain.WaiterCallPending, next: domain.WaiterCallAcknowledged, wantUpdate: true, wantErr: domain.ErrConflict},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			calls := mocks.NewWaiterCallRepository(t)
			calls.On("GetWaiterCall", mock.Anything, 13).Return(&domain.WaiterCall{ID: 13, Status: testCase.current, CreatedAt: created}, nil).Once()
			if testCase.wantUpdate {
				calls.On("UpdateWaiterCallStatus", mock.Anything, mock.Anything, testCase.current).Return(int64(0), nil).Once()
			}

			svc := service.NewWaiterCallService(calls, mocks.NewTableRepository(t), mocks.NewPublisher(t), nopLogger)
			_, err := svc.Transition(context.Background(), 13, testCase.next)
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestCatalogService_Menu(t *testing.T) {
	repo := mocks.NewCatalogRepository(t)
	repo.On("ListCategories", mock.Anything).Return([]domain.Category{
		{ID: 1, Name: "Tantuni", DisplayOrder: 1},
		{ID: 2, Name: "Tatlılar", DisplayOrder: 2},
		{ID: 3, Name: "İçecekler", DisplayOrder: 3},
	}, nil).Once()
	repo.On("ListAvailableProducts", mock.Anything).Return([]domain.Product{
		{ID: 1, CategoryID: 1, Name: "Klasik Tantuni", Price: money("85.00"), IsAvailable: true},
		{ID: 2, CategoryID: 3, Name: "Ayran", Price: money("15.00"), IsAvailable: true},
		{ID: 3, CategoryID: 1, Name: "Acılı Tantuni", Price: money("90.00"), IsAvailable: true},
	}, nil).Once()

	menu, err := service.NewCatalogService(repo).Menu(context.Background())

	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Tantuni", menu[0].Name)
	assert.Len(t, menu[0].Products, 2)
	assert.Equal(t, "İçecekler", menu[1].Name)
}

func TestCatalogService_Customizations_UnknownProduct(t *testing.T) {
	repo := mocks.NewCatalogRepository(t)
	repo.On("GetProduct", mock.Anything, 404).Return(nil, domain.NotFound("product")).Once()

	_, err := service.NewCatalogService(repo).Customizations(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func isNilStatus(s *domain.OrderStatus) bool { return s == nil }

func isPending(s *domain.OrderStatus) bool { return s != nil && *s == domain.OrderPending }

func TestStatsService_Summary(t *testing.T) {
	trt := time.FixedZone("TRT", 3*60*60)
	day := time.Date(2026, 10, 16, 14, 0, 0, 0, trt)
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, trt)
	to := from.AddDate(0, 0, 1)

	sqlDaily := func(repo *mocks.StatsRepository) {
		repo.On("DailyOrderStats", mock.Anything, from, to).Return(domain.DailyStats{
			TodayDineIn: 3, TodayTakeaway: 1, TodayTotal: 4, TodayRevenue: money("480.00"),
		}, nil).Once()
	}

	tests := []struct {
		name        string
		setupCache  func(*mocks.StatsCache, *mocks.StatsRepository)
		wantTop     string
		wantToday   int
		wantRevenue string
	}{
		{
			name: "popularity from redis",
			setupCache: func(cache *mocks.StatsCache, repo *mocks.StatsRepository) {
				cache.On("DailyStats", mock.Anything, from).Return(nil, nil).Once()
				sqlDaily(repo)
				cache.On("TopProducts", mock.Anything, from, 5).Return([]domain.ProductScore{{ProductName: "Ayran", Quantity: 12}}, nil).Once()
			},
			wantTop:     "Ayran",
			wantToday:   4,
			wantRevenue: "480.00",
		},
		{
			name: "daily counts from redis",
			setupCache: func(cache *mocks.StatsCache, repo *mocks.StatsRepository) {
				cache.On("DailyStats", mock.Anything, from).Return(&domain.DailyStats{
					TodayDineIn: 5, TodayTakeaway: 1, TodayTotal: 6, TodayRevenue: money("575.50"),
				}, nil).Once()
				cache.On("TopProducts", mock.Anything, from, 5).Return([]domain.ProductScore{{ProductName: "Ayran", Quantity: 12}}, nil).Once()
			},
			wantTop:     "Ayran",
			wantToday:   6,
			wantRevenue: "575.50",
		},
		{
			name: "redis error falls back to sql",
			setupCache: func(cache *mocks.StatsCache, repo *mocks.StatsRepository) {
				cache.On("DailyStats", mock.Anything, from).Return(nil, errors.New("redis down")).Once()
				sqlDaily(repo)
				cache.On("TopProducts", mock.Anything, from, 5).Return(nil, errors.New("redis down")).Once()
				repo.On("TopProducts", mock.Anything, from, to, 5).Return([]domain.ProductScore{{ProductName: "Klasik Tantuni", Quantity: 4}}, nil).Once()
			},
			wantTop:     "Klasik Tantuni",
			wantToday:   4,
			wantRevenue: "480.00",
		},
		{
			name: "empty set falls back to sql",
			setupCache: func(cache *mocks.StatsCache, repo *mocks.StatsRepository) {
				cache.On("DailyStats", mock.Anything, from).Return(nil, nil).Once()
				sqlDaily(repo)
				cache.On("TopProducts", mock.Anything, from, 5).Return([]domain.ProductScore{}, nil).Once()
				repo.On("TopProducts", mock.Anything, from, to, 5).Return([]domain.ProductScore{{ProductName: "Acılı Tantuni", Quantity: 2}}, nil).Once()
			},
			wantTop:     "Acılı Tantuni",
			wantToday:   4,
			wantRevenue: "480.00",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewStatsRepository(t)
			orders := mocks.NewOrderRepository(t)
			cache := mocks.NewStatsCache(t)

			repo.On("CountOrders", mock.Anything, mock.MatchedBy(isNilStatus)).Return(120, nil).Once()
			repo.On("CountOrders", mock.Anything, mock.MatchedBy(isPending)).Return(2, nil).Once()
			repo.On("CountProducts", mock.Anything).Return(18, nil).Once()
			orders.On("ListOrders", mock.Anything, domain.OrderFilter{Limit: 10}).Return(nil, nil).Once()
			testCase.setupCache(cache, repo)

			resp, err := service.NewStatsService(repo, orders, cache, trt, nopLogger).Summary(context.Background(), day)

			require.NoError(t, err)
			assert.Equal(t, 120, resp.Stats.TotalOrders)
			assert.Equal(t, 2, resp.Stats.PendingOrders)
			assert.Equal(t, 18, resp.Stats.TotalProducts)
			assert.Equal(t, testCase.wantToday, resp.Stats.TodayTotal)
			assert.Equal(t, testCase.wantRevenue, resp.Stats.TodayRevenue.StringFixed(2))
			assert.NotNil(t, resp.RecentOrders)
			require.Len(t, resp.TopProducts, 1)
			assert.Equal(t, testCase.wantTop, resp.TopProducts[0].ProductName)
		})
	}
}

func TestDayWindow(t *testing.T) {
	trt := time.FixedZone("TRT", 3*60*60)
	// 22:30 UTC on the 15th is already the 16th in TRT.
	from, to := service.DayWindow(time.Date(2026, 10, 15, 22, 30, 0, 0, time.UTC), trt)

	assert.Equal(t, "2026-10-16T00:00:00+03:00", from.Format(time.RFC3339))
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}
