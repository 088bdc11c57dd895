package storage

import (
	"context"

	"qrmenu/order-svc/internal/domain"
)

const tableColumns = "id, table_number, table_name, qr_code, capacity, location, is_active, created_at, updated_at"

func scanTable(row rowScanner) (domain.Table, error) {
	var t domain.Table
	err := row.Scan(&t.ID, &t.TableNumber, &t.TableName, &t.QRCode, &t.Capacity, &t.Location, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tables (table_number, table_name, qr_code, capacity, location, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		table.TableNumber, table.TableName, table.QRCode, table.Capacity, table.Location, table.IsActive).
		Scan(&table.ID, &table.CreatedAt, &table.UpdatedAt)
	return mapError(err, "table")
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, "SELECT "+tableColumns+" FROM tables WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err, "table")
	}
	return &t, nil
}

func (r *PostgresRepository) GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, "SELECT "+tableColumns+" FROM tables WHERE qr_code = $1", qrCode))
	if err != nil {
		return nil, mapError(err, "table")
	}
	return &t, nil
}

func (r *PostgresRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+tableColumns+" FROM tables ORDER BY table_number")
	if err != nil {
		return nil, mapError(err, "tables")
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, mapError(err, "tables")
		}
		tables = append(tables, t)
	}
	return tables, mapError(rows.Err(), "tables")
}

// UpdateTable never touches table_number or qr_code.
func (r *PostgresRepository) UpdateTable(ctx context.Context, table *domain.Table) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE tables
		SET table_name = $1, capacity = $2, location = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		table.TableName, table.Capacity, table.Location, table.IsActive, table.ID).
		Scan(&table.UpdatedAt)
	return mapError(err, "table")
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM tables WHERE id = $1", id)
	if err != nil {
		return 0, mapError(err, "table")
	}
	n, err := result.RowsAffected()
	return n, mapError(err, "table")
}
