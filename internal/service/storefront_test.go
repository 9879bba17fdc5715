package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"
)

func newTestStorefront(products *fakeProducts, categories *fakeCategories) *Storefront {
	return NewStorefront(&repository.Store{Products: products, Categories: categories})
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	zinc := detail("1", "Zinc Cup", "Home", true)
	zinc.Price = decimal.NewFromInt(5)
	apple := detail("2", "Apple Soap", "Beauty", true)
	apple.Price = decimal.NewFromInt(12)
	hidden := detail("3", "Hidden Soap", "Beauty", false)

	s := newTestStorefront(&fakeProducts{records: []domain.ProductDetail{zinc, apple, hidden}}, &fakeCategories{})

	listing := s.ListProducts(context.Background(), ProductQuery{})
	require.Len(t, listing.Items, 2)
	assert.Equal(t, "Apple Soap", listing.Items[0].Name)
	assert.Equal(t, 2, listing.Shown)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, "name", listing.Sort)
	assert.False(t, listing.Sample)
	assert.Equal(t, "All Categories", listing.Categories[0])

	listing = s.ListProducts(context.Background(), ProductQuery{Sort: "price-low"})
	assert.Equal(t, "Zinc Cup", listing.Items[0].Name)

	listing = s.ListProducts(context.Background(), ProductQuery{Search: "soap", Category: "Beauty"})
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "2", listing.Items[0].ID)

	listing = s.ListProducts(context.Background(), ProductQuery{Search: "nothing"})
	assert.Empty(t, listing.Items)
	assert.NotNil(t, listing.Items)
	assert.Equal(t, 0, listing.Shown)
}

func TestListProductsFallsBackToSample(t *testing.T) {
	s := newTestStorefront(&fakeProducts{err: errDown}, &fakeCategories{})

	listing := s.ListProducts(context.Background(), ProductQuery{Category: "Food & Beverages"})
	assert.True(t, listing.Sample)
	assert.Equal(t, 8, listing.Total)
	require.Len(t, listing.Items, 2)
	assert.Equal(t, "Artisan Coffee Blend", listing.Items[0].Name)
	assert.Equal(t, "Organic Honey", listing.Items[1].Name)
}

func TestListCategories(t *testing.T) {
	categories := &fakeCategories{records: []domain.Category{
		{ID: "1", Name: "Books", ProductCount: 10, Featured: true},
		{ID: "2", Name: "Art", ProductCount: 30},
		{ID: "3", Name: "Home", ProductCount: 20, Featured: true},
		{ID: "4", Name: "Food", ProductCount: 5, Featured: true},
		{ID: "5", Name: "Tech", ProductCount: 1, Featured: true},
		{ID: "6", Name: "Toys", ProductCount: 2, Featured: true},
	}}
	s := newTestStorefront(&fakeProducts{}, categories)

	listing := s.ListCategories(context.Background(), CategoryQuery{})
	require.Len(t, listing.Items, 6)
	assert.Equal(t, "Art", listing.Items[0].Name)
	assert.Equal(t, "Home", listing.Items[1].Name)
	assert.Equal(t, 5, listing.FeaturedCount)
	assert.Equal(t, 68, listing.ProductTotal)
	require.Len(t, listing.Popular, 4)
	assert.Equal(t, []string{"Books", "Home", "Food", "Tech"}, []string{
		listing.Popular[0].Name, listing.Popular[1].Name, listing.Popular[2].Name, listing.Popular[3].Name,
	})

	listing = s.ListCategories(context.Background(), CategoryQuery{FeaturedOnly: true, Search: "o"})
	for _, c := range listing.Items {
		assert.True(t, c.Featured)
	}
	assert.Equal(t, 4, listing.Shown)
	assert.Equal(t, 6, listing.Total)
}

func TestListCategoriesFallsBackToSample(t *testing.T) {
	s := newTestStorefront(&fakeProducts{}, &fakeCategories{err: errDown})

	listing := s.ListCategories(context.Background(), CategoryQuery{})
	assert.True(t, listing.Sample)
	require.Len(t, listing.Items, 8)
	assert.Equal(t, "Home & Garden", listing.Items[0].Name)
	assert.Equal(t, 156, listing.Items[0].ProductCount)
}

func TestGetProduct(t *testing.T) {
	products := &fakeProducts{records: []domain.ProductDetail{
		detail("1", "Cup", "Home", true),
		detail("2", "Retired", "Home", false),
	}}
	s := newTestStorefront(products, &fakeCategories{})

	d, err := s.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Cup", d.Name)
	assert.NotNil(t, d.Features)

	_, err = s.GetProduct(context.Background(), "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetProduct(context.Background(), "3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	products.err = errDown
	d, err = s.GetProduct(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Artisan Coffee Blend", d.Name)

	_, err = s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHome(t *testing.T) {
	var records []domain.ProductDetail
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		records = append(records, detail(id, "Item "+id, "Home", true))
	}
	categories := &fakeCategories{records: []domain.Category{
		{ID: "1", Name: "Home", ProductCount: 10, Featured: true},
		{ID: "2", Name: "Art", ProductCount: 30},
	}}
	s := newTestStorefront(&fakeProducts{records: records}, categories)

	page := s.Home(context.Background())
	require.Len(t, page.Featured, 8)
	assert.Equal(t, "a", page.Featured[0].ID)
	require.Len(t, page.Categories, 1)
	assert.Equal(t, "Home", page.Categories[0].Name)
	assert.False(t, page.Sample)
}
