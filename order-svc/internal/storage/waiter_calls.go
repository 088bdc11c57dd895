package storage

import (
	"context"
	"database/sql"
	"time"

	"qrmenu/order-svc/internal/domain"
)

const waiterCallColumns = "id, table_id, table_number, status, COALESCE(note, ''), created_at, acknowledged_at, completed_at"

func scanWaiterCall(row rowScanner) (domain.WaiterCall, error) {
	var (
		call         domain.WaiterCall
		acknowledged sql.NullTime
		completed    sql.NullTime
	)
	err := row.Scan(&call.ID, &call.TableID, &call.TableNumber, &call.Status, &call.Note, &call.CreatedAt, &acknowledged, &completed)
	if err != nil {
		return call, err
	}
	call.AcknowledgedAt = nullTime(acknowledged)
	call.CompletedAt = nullTime(completed)
	return call, nil
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func (r *PostgresRepository) CreateWaiterCall(ctx context.Context, call *domain.WaiterCall) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO waiter_calls (table_id, table_number, status, note, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id`,
		call.TableID, call.TableNumber, call.Status, call.Note, call.CreatedAt).
		Scan(&call.ID)
	return mapError(err, "waiter call")
}

func (r *PostgresRepository) GetWaiterCall(ctx context.Context, id int) (*domain.WaiterCall, error) {
	call, err := scanWaiterCall(r.DB.QueryRowContext(ctx, "SELECT "+waiterCallColumns+" FROM waiter_calls WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err, "waiter call")
	}
	return &call, nil
}

// ListWaiterCalls puts pending calls first, then newest first.
func (r *PostgresRepository) ListWaiterCalls(ctx context.Context, status *domain.WaiterCallStatus) ([]domain.WaiterCall, error) {
	query := "SELECT " + waiterCallColumns + " FROM waiter_calls"
	var args []any
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY (status = 'pending') DESC, created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "waiter calls")
	}
	defer rows.Close()

	calls := []domain.WaiterCall{}
	for rows.Next() {
		call, err := scanWaiterCall(rows)
		if err != nil {
			return nil, mapError(err, "waiter calls")
		}
		calls = append(calls, call)
	}
	return calls, mapError(rows.Err(), "waiter calls")
}

func (r *PostgresRepository) UpdateWaiterCallStatus(ctx context.Context, call *domain.WaiterCall, from domain.WaiterCallStatus) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE waiter_calls
		SET status = $1, acknowledged_at = $2, completed_at = $3
		WHERE id = $4 AND status = $5`,
		call.Status, call.AcknowledgedAt, call.CompletedAt, call.ID, from)
	if err != nil {
		return 0, mapError(err, "waiter call")
	}
	n, err := result.RowsAffected()
	return n, mapError(err, "waiter call")
}
