package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qrmenu/order-svc/internal/domain"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// mapError turns driver errors into domain error kinds. what names the entity
// for the message.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(what)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing record", domain.ErrInvalidInput, what)
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, what, err)
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			display_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			category_id INT REFERENCES categories(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			display_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS product_customizations (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('single', 'multiple')),
			is_required BOOLEAN NOT NULL DEFAULT FALSE,
			display_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS customization_options (
			id SERIAL PRIMARY KEY,
			customization_id INT NOT NULL REFERENCES product_customizations(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			price_adjustment NUMERIC(10,2) NOT NULL DEFAULT 0,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			display_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tables (
			id SERIAL PRIMARY KEY,
			table_number INT NOT NULL UNIQUE,
			table_name TEXT NOT NULL,
			qr_code TEXT NOT NULL UNIQUE,
			capacity INT NOT NULL DEFAULT 4,
			location TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			order_type TEXT NOT NULL CHECK (order_type IN ('dine-in', 'takeaway')),
			table_id INT REFERENCES tables(id) ON DELETE SET NULL,
			table_number INT,
			total_amount NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			customer_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INT REFERENCES products(id) ON DELETE SET NULL,
			product_name TEXT NOT NULL,
			product_price NUMERIC(10,2) NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			subtotal NUMERIC(10,2) NOT NULL,
			customizations TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS waiter_calls (
			id SERIAL PRIMARY KEY,
			table_id INT NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
			table_number INT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			acknowledged_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			full_name TEXT,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)",
		"CREATE INDEX IF NOT EXISTS idx_waiter_calls_status ON waiter_calls (status)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// EnsureAdmin seeds the first admin account when none exists.
func (r *PostgresRepository) EnsureAdmin(ctx context.Context, username, email, passwordHash string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO admin_users (username, email, full_name, password_hash)
		SELECT $1, $2, 'Admin', $3
		WHERE NOT EXISTS (SELECT 1 FROM admin_users)`,
		username, email, passwordHash)
	if err != nil {
		return false, mapError(err, "admin user")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, mapError(err, "admin user")
	}
	return n > 0, nil
}
