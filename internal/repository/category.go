package repository

import (
	"context"
	"fmt"

	"marketplace/storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

func (r *categoryRepository) List(ctx context.Context, filter *Filter) ([]domain.Category, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	query := `SELECT id, name, description, image_url, product_count, featured FROM categories`
	var args []any
	if filter != nil {
		query += fmt.Sprintf(` WHERE %s = $1`, filter.Column)
		args = append(args, filter.Value)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.ProductCount, &c.Featured); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) SetProductCount(ctx context.Context, name string, count int) error {
	_, err := r.db.Exec(ctx, `UPDATE categories SET product_count = $2 WHERE name = $1`, name, count)
	if err != nil {
		return fmt.Errorf("failed to set product count for %s: %w", name, err)
	}
	return nil
}
