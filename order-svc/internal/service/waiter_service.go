package service

import (
	"context"
	"strings"
	"time"

	"qrmenu/events"
	"qrmenu/order-svc/internal/domain"

	"go.uber.org/zap"
)

type WaiterCallInput struct {
	TableID     int
	TableNumber int
	Note        string
}

type WaiterCallService struct {
	calls     WaiterCallRepository
	tables    TableRepository
	publisher events.Publisher
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewWaiterCallService(calls WaiterCallRepository, tables TableRepository, publisher events.Publisher, logger *zap.SugaredLogger) *WaiterCallService {
	return &WaiterCallService{
		calls:     calls,
		tables:    tables,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *WaiterCallService) WithClock(now func() time.Time) *WaiterCallService {
	s.now = now
	return s
}

func (s *WaiterCallService) Create(ctx context.Context, input WaiterCallInput) (*domain.WaiterCall, error) {
	if input.TableID <= 0 {
		return nil, domain.InvalidInput("table id is required")
	}
	table, err := s.tables.GetTable(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if !table.IsActive {
		return nil, domain.ErrTableInactive
	}
	if input.TableNumber != 0 && input.TableNumber != table.TableNumber {
		return nil, domain.InvalidInput("table number %d does not belong to table %d", input.TableNumber, table.ID)
	}

	call := &domain.WaiterCall{
		TableID:     table.ID,
		TableNumber: table.TableNumber,
		Status:      domain.WaiterCallPending,
		Note:        strings.TrimSpace(input.Note),
		CreatedAt:   s.now(),
	}
	if err := s.calls.CreateWaiterCall(ctx, call); err != nil {
		return nil, err
	}

	s.logger.Infow("waiter called", "waiter_call_id", call.ID, "table_number", call.TableNumber)
	publish(ctx, s.publisher, s.logger, waiterCallEvent(events.WaiterCallCreated, call, call.CreatedAt))
	return call, nil
}

// List returns pending calls first, newest first within each status.
func (s *WaiterCallService) List(ctx context.Context, status *domain.WaiterCallStatus) ([]domain.WaiterCall, error) {
	if status != nil && !status.Valid() {
		return nil, domain.InvalidInput("unknown waiter call status %q", *status)
	}
	return s.calls.ListWaiterCalls(ctx, status)
}

// Transition moves a call forward and stamps the time the new status was
// entered. Stamps never precede the previous one, even if clocks disagree.
func (s *WaiterCallService) Transition(ctx context.Context, id int, status domain.WaiterCallStatus) (*domain.WaiterCall, error) {
	if !status.Valid() {
		return nil, domain.InvalidInput("unknown waiter call status %q", status)
	}
	call, err := s.calls.GetWaiterCall(ctx, id)
	if err != nil {
		return nil, err
	}
	if call.Status == status {
		return call, nil
	}
	if !call.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	from := call.Status
	now := s.now()
	switch status {
	case domain.WaiterCallAcknowledged:
		stamp := notBefore(now, call.CreatedAt)
		call.AcknowledgedAt = &stamp
	case domain.WaiterCallCompleted:
		floor := call.CreatedAt
		if call.AcknowledgedAt != nil {
			floor = *call.AcknowledgedAt
		}
		stamp := notBefore(now, floor)
		call.CompletedAt = &stamp
	}
	call.Status = status

	affected, err := s.calls.UpdateWaiterCallStatus(ctx, call, from)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrConflict
	}

	publish(ctx, s.publisher, s.logger, waiterCallEvent(events.WaiterCallUpdated, call, now))
	return call, nil
}

func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

func waiterCallEvent(t events.Type, call *domain.WaiterCall, at time.Time) events.Event {
	return events.Event{
		Type:         t,
		WaiterCallID: call.ID,
		TableNumber:  call.TableNumber,
		Status:       string(call.Status),
		Timestamp:    at,
	}
}
