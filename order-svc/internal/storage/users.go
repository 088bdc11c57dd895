package storage

import (
	"context"

	"qrmenu/order-svc/internal/domain"
)

const userColumns = "id, username, email, COALESCE(full_name, ''), password_hash, created_at"

func scanUser(row rowScanner) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

// GetUserByLogin accepts either the username or the email address.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, login string) (*domain.AdminUser, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM admin_users WHERE username = $1 OR LOWER(email) = LOWER($1) LIMIT 1", login))
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.AdminUser, error) {
	return scanUser(r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM admin_users WHERE id = $1", id))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE admin_users SET password_hash = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return mapError(err, "user")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return mapError(err, "user")
	}
	if n == 0 {
		return domain.NotFound("user")
	}
	return nil
}
