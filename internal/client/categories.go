package client

import (
	"context"
	"fmt"
	"net/http"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"
)

type categoryRepository struct {
	client *restClient
}

func (r *categoryRepository) List(ctx context.Context, filter *repository.Filter) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  "categories",
		query:  filterQuery(filter, map[string]string{"select": "*", "order": "id.asc"}),
	}, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) SetProductCount(ctx context.Context, name string, count int) error {
	_, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  "categories",
		query:  map[string]string{"name": "eq." + name},
		body:   map[string]int{"product_count": count},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to set product count for %s: %w", name, err)
	}
	return nil
}
