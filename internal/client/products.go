package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const productSelect = "id,name,description,price,images,category,tags,is_active,featured,rating,reviews,stripe_id,created_at,updated_at"

// productRow is the write payload; timestamps are owned by the datastore.
type productRow struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	IsActive    bool            `json:"is_active"`
	Featured    bool            `json:"featured"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	StripeID    *string         `json:"stripe_id"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toProductRow(p *domain.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Category:    p.Category,
		Tags:        p.Tags,
		IsActive:    p.IsActive,
		Featured:    p.Featured,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		StripeID:    p.StripeID,
	}
}

type productRepository struct {
	client *restClient
}

func (r *productRepository) List(ctx context.Context, filter *repository.Filter) ([]domain.Product, error) {
	var rows []domain.Product
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  "products",
		query:  filterQuery(filter, map[string]string{"select": productSelect, "order": "created_at.desc"}),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, p.WithDefaults())
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domain.ProductDetail, error) {
	query := eqID(id)
	query["select"] = productSelect + ",features,specifications,seller"

	var rows []domain.ProductDetail
	if _, err := r.client.do(ctx, request{method: http.MethodGet, table: "products", query: query}, &rows); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	d := rows[0].WithDefaults()
	return &d, nil
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var rows []domain.Product
	_, err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  "products",
		prefer: "return=representation",
		body:   toProductRow(p),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to insert product: empty response")
	}

	saved := rows[0].WithDefaults()
	return &saved, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	row := toProductRow(p)
	row.ID = ""
	now := time.Now().UTC()
	row.UpdatedAt = &now

	var rows []domain.Product
	_, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  "products",
		query:  eqID(p.ID),
		prefer: "return=representation",
		body:   row,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}

	saved := rows[0].WithDefaults()
	return &saved, nil
}

func (r *productRepository) SetActive(ctx context.Context, id string, active bool) error {
	var rows []struct {
		ID string `json:"id"`
	}
	_, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  "products",
		query:  eqID(id),
		prefer: "return=representation",
		body:   map[string]any{"is_active": active, "updated_at": time.Now().UTC()},
	}, &rows)
	if err != nil {
		return fmt.Errorf("failed to update status of product %s: %w", id, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	var rows []struct {
		ID string `json:"id"`
	}
	_, err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  "products",
		query:  eqID(id),
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) CountActive(ctx context.Context, category string) (int, error) {
	count, err := r.client.count(ctx, "products", map[string]string{
		"category":  "eq." + category,
		"is_active": "eq.true",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count products in %s: %w", category, err)
	}
	return count, nil
}
