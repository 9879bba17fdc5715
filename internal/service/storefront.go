package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"

	"marketplace/storefront/internal/catalog"
	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"
	"marketplace/storefront/internal/sample"
)

const (
	featuredGridSize = 8
	popularSize      = 4
)

type ProductQuery struct {
	Search   string
	Category string
	Sort     string
}

type ProductListing struct {
	Items      []domain.Product `json:"items"`
	Shown      int              `json:"shown"`
	Total      int              `json:"total"`
	Sort       string           `json:"sort"`
	Categories []string         `json:"categories"`
	// Sample is set when the data source failed and the built-in set was served.
	Sample bool `json:"sample,omitempty"`
}

type CategoryQuery struct {
	Search       string
	FeaturedOnly bool
}

type CategoryListing struct {
	Items         []domain.Category `json:"items"`
	Shown         int               `json:"shown"`
	Total         int               `json:"total"`
	FeaturedCount int               `json:"featured_count"`
	ProductTotal  int               `json:"product_total"`
	Popular       []domain.Category `json:"popular"`
	Sample        bool              `json:"sample,omitempty"`
}

type HomePage struct {
	Featured   []domain.Product  `json:"featured"`
	Categories []domain.Category `json:"categories"`
	Sample     bool              `json:"sample,omitempty"`
}

// Storefront serves the public catalog views. Reads never fail because of the
// data source: on error the built-in sample set goes through the same filters.
type Storefront struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewStorefront(store *repository.Store) *Storefront {
	return &Storefront{
		products:   store.Products,
		categories: store.Categories,
	}
}

func (s *Storefront) loadProducts(ctx context.Context) ([]domain.Product, bool) {
	products, err := s.products.List(ctx, repository.ActiveOnly())
	if err != nil {
		log.Warnf("⚠️ Failed to load products, serving sample set: %v", err)
		return sample.Products(), true
	}
	return products, false
}

func (s *Storefront) loadCategories(ctx context.Context) ([]domain.Category, bool) {
	categories, err := s.categories.List(ctx, nil)
	if err != nil {
		log.Warnf("⚠️ Failed to load categories, serving sample set: %v", err)
		return sample.Categories(), true
	}
	return categories, false
}

func (s *Storefront) ListProducts(ctx context.Context, q ProductQuery) *ProductListing {
	products, fallback := s.loadProducts(ctx)
	key := catalog.ParseSortKey(q.Sort)

	items := catalog.Products(products, catalog.Predicates{
		SearchTerm: q.Search,
		Category:   q.Category,
		ActiveOnly: true,
	}, key)

	return &ProductListing{
		Items:      items,
		Shown:      len(items),
		Total:      len(products),
		Sort:       key.String(),
		Categories: append([]string{catalog.AllCategories}, sample.StorefrontCategories...),
		Sample:     fallback,
	}
}

func (s *Storefront) ListCategories(ctx context.Context, q CategoryQuery) *CategoryListing {
	categories, fallback := s.loadCategories(ctx)

	items := catalog.Categories(categories, catalog.Predicates{
		SearchTerm:   q.Search,
		FeaturedOnly: q.FeaturedOnly,
	}, catalog.SortProductCountDesc)

	listing := &CategoryListing{
		Items:   items,
		Shown:   len(items),
		Total:   len(categories),
		Popular: []domain.Category{},
		Sample:  fallback,
	}
	for _, c := range categories {
		listing.ProductTotal += c.ProductCount
		if !c.Featured {
			continue
		}
		listing.FeaturedCount++
		if len(listing.Popular) < popularSize && c.Valid() {
			listing.Popular = append(listing.Popular, c)
		}
	}
	return listing
}

// GetProduct returns an active product. Inactive records are reported as
// missing so they never leak to the storefront.
func (s *Storefront) GetProduct(ctx context.Context, id string) (*domain.ProductDetail, error) {
	detail, err := s.products.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, err
	case err != nil:
		log.Warnf("⚠️ Failed to load product %s, trying sample set: %v", id, err)
		fallback, ok := sample.ProductDetail(id)
		if !ok {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return &fallback, nil
	}

	if !detail.IsActive {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	d := detail.WithDefaults()
	return &d, nil
}

// FeaturedGrid returns up to eight active products in source order.
func (s *Storefront) FeaturedGrid(ctx context.Context) ([]domain.Product, bool) {
	products, fallback := s.loadProducts(ctx)
	items := catalog.Products(products, catalog.Predicates{ActiveOnly: true}, catalog.SortNone)
	if len(items) > featuredGridSize {
		items = items[:featuredGridSize]
	}
	return items, fallback
}

// Home loads the featured grid and the featured categories in parallel.
func (s *Storefront) Home(ctx context.Context) *HomePage {
	page := &HomePage{}
	var productsFallback, categoriesFallback bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page.Featured, productsFallback = s.FeaturedGrid(gctx)
		return nil
	})
	g.Go(func() error {
		listing := s.ListCategories(gctx, CategoryQuery{FeaturedOnly: true})
		page.Categories, categoriesFallback = listing.Items, listing.Sample
		return nil
	})
	_ = g.Wait()

	page.Sample = productsFallback || categoriesFallback
	return page
}
