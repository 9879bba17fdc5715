package repository

import (
	"context"
	"fmt"

	"marketplace/storefront/internal/domain"
)

// Filter is the single equality predicate a list query may carry.
type Filter struct {
	Column string
	Value  any
}

var filterColumns = map[string]bool{
	"id":        true,
	"category":  true,
	"is_active": true,
	"featured":  true,
}

func ActiveOnly() *Filter {
	return &Filter{Column: "is_active", Value: true}
}

func InCategory(category string) *Filter {
	return &Filter{Column: "category", Value: category}
}

func (f *Filter) validate() error {
	if f == nil {
		return nil
	}
	if !filterColumns[f.Column] {
		return fmt.Errorf("unsupported filter column %q", f.Column)
	}
	return nil
}

type ProductRepository interface {
	List(ctx context.Context, filter *Filter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.ProductDetail, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context, category string) (int, error)
}

type CategoryRepository interface {
	List(ctx context.Context, filter *Filter) ([]domain.Category, error)
	SetProductCount(ctx context.Context, name string, count int) error
}

type SiteConfigRepository interface {
	Get(ctx context.Context, id string) (*domain.SiteConfig, error)
	Insert(ctx context.Context, cfg *domain.SiteConfig) (*domain.SiteConfig, error)
	Update(ctx context.Context, cfg *domain.SiteConfig) error
}

type StatsRepository interface {
	Dashboard(ctx context.Context, recentLimit int) (*domain.DashboardStats, error)
}

// Store groups the repositories a data source driver provides.
type Store struct {
	Products   ProductRepository
	Categories CategoryRepository
	SiteConfig SiteConfigRepository
	Stats      StatsRepository
}
