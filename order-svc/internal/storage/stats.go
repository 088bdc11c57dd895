package storage

import (
	"context"
	"time"

	"qrmenu/order-svc/internal/domain"
)

func (r *PostgresRepository) CountOrders(ctx context.Context, status *domain.OrderStatus) (int, error) {
	var count int
	var err error
	if status == nil {
		err = r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE status = $1", *status).Scan(&count)
	}
	return count, mapError(err, "orders")
}

func (r *PostgresRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, mapError(err, "products")
}

// DailyOrderStats fills the per-day fields of DailyStats for [from, to).
// Cancelled orders do not count towards revenue.
func (r *PostgresRepository) DailyOrderStats(ctx context.Context, from, to time.Time) (domain.DailyStats, error) {
	var stats domain.DailyStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE order_type = 'dine-in'),
			COUNT(*) FILTER (WHERE order_type = 'takeaway'),
			COUNT(*),
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`, from, to).
		Scan(&stats.TodayDineIn, &stats.TodayTakeaway, &stats.TodayTotal, &stats.TodayRevenue)
	return stats, mapError(err, "daily stats")
}

func (r *PostgresRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductScore, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.product_name, SUM(oi.quantity) AS qty
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
		GROUP BY oi.product_name
		ORDER BY qty DESC, oi.product_name
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, mapError(err, "top products")
	}
	defer rows.Close()

	scores := []domain.ProductScore{}
	for rows.Next() {
		var s domain.ProductScore
		if err := rows.Scan(&s.ProductName, &s.Quantity); err != nil {
			return nil, mapError(err, "top products")
		}
		scores = append(scores, s)
	}
	return scores, mapError(rows.Err(), "top products")
}
