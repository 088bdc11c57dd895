package storage

import (
	"context"
	"database/sql"

	"qrmenu/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const productColumns = `id, COALESCE(category_id, 0), name, COALESCE(description, ''), price,
	COALESCE(image_url, ''), is_available, display_order, created_at`

// nullableOption receives the LEFT JOIN side of a group without options.
type nullableOption struct {
	ID              sql.NullInt64
	Label           sql.NullString
	PriceAdjustment decimal.NullDecimal
	IsDefault       sql.NullBool
	DisplayOrder    sql.NullInt64
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsAvailable, &p.DisplayOrder, &p.CreatedAt)
	return p, err
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, display_order FROM categories ORDER BY display_order, id")
	if err != nil {
		return nil, mapError(err, "categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, mapError(err, "categories")
		}
		categories = append(categories, c)
	}
	return categories, mapError(rows.Err(), "categories")
}

func (r *PostgresRepository) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+productColumns+" FROM products WHERE is_available ORDER BY display_order, id")
	if err != nil {
		return nil, mapError(err, "products")
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "products")
		}
		products = append(products, p)
	}
	return products, mapError(rows.Err(), "products")
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id))
	if err != nil {
		return nil, mapError(err, "product")
	}
	return &p, nil
}

// ListCustomizations loads the groups of a product with their options, both in
// display order.
func (r *PostgresRepository) ListCustomizations(ctx context.Context, productID int) ([]domain.CustomizationGroup, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT g.id, g.product_id, g.name, g.type, g.is_required, g.display_order,
			o.id, o.label, o.price_adjustment, o.is_default, o.display_order
		FROM product_customizations g
		LEFT JOIN customization_options o ON o.customization_id = g.id
		WHERE g.product_id = $1
		ORDER BY g.display_order, g.id, o.display_order, o.id`, productID)
	if err != nil {
		return nil, mapError(err, "customizations")
	}
	defer rows.Close()

	groups := []domain.CustomizationGroup{}
	index := map[int]int{}
	for rows.Next() {
		var (
			g   domain.CustomizationGroup
			opt nullableOption
		)
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Name, &g.Mode, &g.IsRequired, &g.DisplayOrder,
			&opt.ID, &opt.Label, &opt.PriceAdjustment, &opt.IsDefault, &opt.DisplayOrder); err != nil {
			return nil, mapError(err, "customizations")
		}
		i, ok := index[g.ID]
		if !ok {
			g.Options = []domain.CustomizationOption{}
			groups = append(groups, g)
			i = len(groups) - 1
			index[g.ID] = i
		}
		if opt.ID.Valid {
			groups[i].Options = append(groups[i].Options, domain.CustomizationOption{
				ID:              int(opt.ID.Int64),
				GroupID:         g.ID,
				Label:           opt.Label.String,
				PriceAdjustment: opt.PriceAdjustment.Decimal,
				IsDefault:       opt.IsDefault.Bool,
				DisplayOrder:    int(opt.DisplayOrder.Int64),
			})
		}
	}
	return groups, mapError(rows.Err(), "customizations")
}
