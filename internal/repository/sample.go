package repository

import (
	"context"
	"fmt"
	"time"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/sample"
)

// NewSampleStore returns a read-only Store backed by the sample data set.
// Every write is rejected with domain.ErrReadOnly.
func NewSampleStore() *Store {
	return &Store{
		Products:   sampleProducts{},
		Categories: sampleCategories{},
		SiteConfig: sampleSiteConfig{},
		Stats:      sampleStats{},
	}
}

func matchesFilter(filter *Filter, values map[string]any) bool {
	if filter == nil {
		return true
	}
	return values[filter.Column] == filter.Value
}

type sampleProducts struct{}

func (sampleProducts) List(ctx context.Context, filter *Filter) ([]domain.Product, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for _, p := range sample.Products() {
		if matchesFilter(filter, map[string]any{
			"id": p.ID, "category": p.Category, "is_active": p.IsActive, "featured": p.Featured,
		}) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (sampleProducts) Get(ctx context.Context, id string) (*domain.ProductDetail, error) {
	d, ok := sample.ProductDetail(id)
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (sampleProducts) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return nil, domain.ErrReadOnly
}

func (sampleProducts) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return nil, domain.ErrReadOnly
}

func (sampleProducts) SetActive(ctx context.Context, id string, active bool) error {
	return domain.ErrReadOnly
}

func (sampleProducts) Delete(ctx context.Context, id string) error {
	return domain.ErrReadOnly
}

func (sampleProducts) CountActive(ctx context.Context, category string) (int, error) {
	count := 0
	for _, p := range sample.Products() {
		if p.IsActive && p.Category == category {
			count++
		}
	}
	return count, nil
}

type sampleCategories struct{}

func (sampleCategories) List(ctx context.Context, filter *Filter) ([]domain.Category, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0)
	for _, c := range sample.Categories() {
		if matchesFilter(filter, map[string]any{"id": c.ID, "featured": c.Featured}) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (sampleCategories) SetProductCount(ctx context.Context, name string, count int) error {
	return domain.ErrReadOnly
}

type sampleSiteConfig struct{}

func (sampleSiteConfig) Get(ctx context.Context, id string) (*domain.SiteConfig, error) {
	if id != domain.DefaultSiteConfigID {
		return nil, fmt.Errorf("site config %s: %w", id, domain.ErrNotFound)
	}
	cfg := domain.DefaultSiteConfig()
	return &cfg, nil
}

func (sampleSiteConfig) Insert(ctx context.Context, cfg *domain.SiteConfig) (*domain.SiteConfig, error) {
	return nil, domain.ErrReadOnly
}

func (sampleSiteConfig) Update(ctx context.Context, cfg *domain.SiteConfig) error {
	return domain.ErrReadOnly
}

type sampleStats struct{}

func (sampleStats) Dashboard(ctx context.Context, recentLimit int) (*domain.DashboardStats, error) {
	stats := sample.Stats(time.Now())
	if len(stats.RecentOrders) > recentLimit {
		stats.RecentOrders = stats.RecentOrders[:recentLimit]
	}
	return &stats, nil
}
