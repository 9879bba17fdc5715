package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, description, price, images, category, tags, is_active, featured,
	rating, reviews, stripe_id, created_at, updated_at`

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r *productRepository) List(ctx context.Context, filter *Filter) ([]domain.Product, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter != nil {
		query += fmt.Sprintf(` WHERE %s = $1`, filter.Column)
		args = append(args, filter.Value)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p.WithDefaults())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domain.ProductDetail, error) {
	query := `SELECT ` + productColumns + `, features, specifications, seller FROM products WHERE id = $1`

	var d domain.ProductDetail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Price, &d.Images, &d.Category, &d.Tags,
		&d.IsActive, &d.Featured, &d.Rating, &d.Reviews, &d.StripeID, &d.CreatedAt, &d.UpdatedAt,
		&d.Features, &d.Specifications, &d.Seller,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	d = d.WithDefaults()
	return &d, nil
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
	INSERT INTO products (id, name, description, price, images, category, tags, is_active, featured, rating, reviews, stripe_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + productColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Images, p.Category, p.Tags,
		p.IsActive, p.Featured, p.Rating, p.Reviews, p.StripeID,
	)
	saved, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &saved, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
	UPDATE products
	SET name = $2, description = $3, price = $4, images = $5, category = $6, tags = $7,
		is_active = $8, featured = $9, updated_at = now()
	WHERE id = $1
	RETURNING ` + productColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Images, p.Category, p.Tags, p.IsActive, p.Featured,
	)
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}

	return &saved, nil
}

func (r *productRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update status of product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *productRepository) CountActive(ctx context.Context, category string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE category = $1 AND is_active`, category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products in %s: %w", category, err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Images, &p.Category, &p.Tags,
		&p.IsActive, &p.Featured, &p.Rating, &p.Reviews, &p.StripeID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
