package storage

import (
	"context"
	"database/sql"
	"strconv"

	"qrmenu/order-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, order_number, order_type, table_id, table_number, total_amount, status,
	COALESCE(customer_notes, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order       domain.Order
		tableID     sql.NullInt64
		tableNumber sql.NullInt64
	)
	err := row.Scan(&order.ID, &order.OrderNumber, &order.OrderType, &tableID, &tableNumber,
		&order.TotalAmount, &order.Status, &order.CustomerNotes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return order, err
	}
	order.TableID = nullInt(tableID)
	order.TableNumber = nullInt(tableNumber)
	return order, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// CreateOrder writes the order and its items in one transaction. On any
// failure nothing is kept.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "order")
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, order_type, table_id, table_number, total_amount, status, customer_notes)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at
	`, order.OrderNumber, order.OrderType, order.TableID, order.TableNumber, order.TotalAmount, order.Status, order.CustomerNotes).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return mapError(err, "order "+order.OrderNumber)
	}

	for i := range order.Items {
		item := &order.Items[i]
		var productID *int
		if item.ProductID > 0 {
			productID = &item.ProductID
		}
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, subtotal, customizations)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
			RETURNING id
		`, order.ID, productID, item.ProductName, item.ProductPrice, item.Quantity, item.Subtotal, item.Customizations).
			Scan(&item.ID); err != nil {
			return mapError(err, "order item "+strconv.Itoa(i+1))
		}
		item.OrderID = order.ID
	}

	return mapError(tx.Commit(), "order")
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err, "order")
	}
	if err := r.attachItems(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_number = $1", number))
	if err != nil {
		return nil, mapError(err, "order")
	}
	if err := r.attachItems(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the newest orders first, each with its items.
func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders"
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "orders")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, mapError(err, "orders")
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "orders")
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		o.Items = []domain.OrderItem{}
		byID[o.ID] = o
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, COALESCE(product_id, 0), product_name, product_price, quantity, subtotal, COALESCE(customizations, '')
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, pq.Array(ids))
	if err != nil {
		return mapError(err, "order items")
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductPrice,
			&item.Quantity, &item.Subtotal, &item.Customizations); err != nil {
			return mapError(err, "order items")
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return mapError(rows.Err(), "order items")
}

// UpdateOrderStatus only applies when the order still has status from. The
// affected row count tells the caller whether someone else got there first.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from)
	if err != nil {
		return 0, mapError(err, "order")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, mapError(err, "order")
	}
	return n, nil
}
