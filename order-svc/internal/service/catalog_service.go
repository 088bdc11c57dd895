package service

import (
	"context"

	"qrmenu/order-svc/internal/domain"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Menu groups the available products under their categories. Categories with
// nothing available are left out.
func (s *CatalogService) Menu(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListAvailableProducts(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int][]domain.Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	menu := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if len(byCategory[c.ID]) == 0 {
			continue
		}
		c.Products = byCategory[c.ID]
		menu = append(menu, c)
	}
	return menu, nil
}

func (s *CatalogService) Product(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) Customizations(ctx context.Context, productID int) ([]domain.CustomizationGroup, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListCustomizations(ctx, productID)
}
