package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"
	"marketplace/storefront/internal/state"
)

type adminFixture struct {
	admin      *Admin
	products   *fakeProducts
	siteConfig *fakeSiteConfig
	stats      *fakeStats
	queue      *fakeQueue
	inFlight   state.InFlight
}

func newAdminFixture(records ...domain.ProductDetail) *adminFixture {
	f := &adminFixture{
		products:   &fakeProducts{records: records},
		siteConfig: &fakeSiteConfig{},
		stats:      &fakeStats{},
		queue:      &fakeQueue{},
		inFlight:   state.NewMemoryInFlight(time.Minute),
	}
	store := &repository.Store{
		Products:   f.products,
		Categories: &fakeCategories{},
		SiteConfig: f.siteConfig,
		Stats:      f.stats,
	}
	f.admin = NewAdmin(store, f.queue, f.inFlight)
	f.admin.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestDashboard(t *testing.T) {
	f := newAdminFixture()
	f.stats.stats = &domain.DashboardStats{TotalProducts: 3, TotalRevenue: decimal.NewFromInt(10)}

	stats := f.admin.Dashboard(context.Background())
	assert.Equal(t, 3, stats.TotalProducts)
	assert.False(t, stats.Sample)

	f.stats.err = errDown
	stats = f.admin.Dashboard(context.Background())
	assert.True(t, stats.Sample)
	assert.Equal(t, 25, stats.TotalUsers)
	assert.Len(t, stats.RecentOrders, 3)
}

func TestAdminListProducts(t *testing.T) {
	older := detail("1", "Older", "Home", true)
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := detail("2", "Newer", "Art", false)
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	third := detail("3", "Third", "Home", true)
	third.CreatedAt = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newAdminFixture(older, newer, third)

	listing, err := f.admin.ListProducts(context.Background(), AdminProductQuery{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 3)
	assert.Equal(t, "2", listing.Items[0].ID, "inactive records stay visible")
	assert.Equal(t, "3", listing.Items[1].ID)
	assert.Equal(t, []string{"Home", "Art"}, listing.Categories)

	listing, err = f.admin.ListProducts(context.Background(), AdminProductQuery{Category: "Home"})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Shown)
	assert.Equal(t, 3, listing.Total)

	f.products.err = errDown
	_, err = f.admin.ListProducts(context.Background(), AdminProductQuery{})
	assert.ErrorIs(t, err, errDown)
}

func TestCreateProduct(t *testing.T) {
	f := newAdminFixture()

	_, err := f.admin.CreateProduct(context.Background(), domain.ProductInput{Category: "Home"})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	created, err := f.admin.CreateProduct(context.Background(), domain.ProductInput{
		Name:        " Mug ",
		Description: "<p>Hand <b>thrown</b></p>",
		Price:       decimal.RequireFromString("19.99"),
		Category:    "Home",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mug", created.Name)
	assert.Equal(t, "Hand thrown", created.Description)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, []string{"Home"}, f.queue.recountCategories())
}

func TestUpdateProductRecountsBothCategories(t *testing.T) {
	f := newAdminFixture(detail("1", "Mug", "Home", true))

	updated, err := f.admin.UpdateProduct(context.Background(), "1", domain.ProductInput{
		Name:     "Mug",
		Category: "Kitchen",
		Price:    decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", updated.Category)
	assert.True(t, updated.IsActive)
	assert.ElementsMatch(t, []string{"Kitchen", "Home"}, f.queue.recountCategories())

	_, err = f.admin.UpdateProduct(context.Background(), "404", domain.ProductInput{Name: "x", Category: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newAdminFixture(detail("1", "Mug", "Home", true))

	require.NoError(t, f.admin.DeleteProduct(context.Background(), "1"))
	assert.Empty(t, f.products.records)
	assert.Equal(t, []string{"Home"}, f.queue.recountCategories())

	assert.ErrorIs(t, f.admin.DeleteProduct(context.Background(), "1"), domain.ErrNotFound)
}

func TestToggleActive(t *testing.T) {
	f := newAdminFixture(detail("1", "Mug", "Home", true))
	ctx := context.Background()

	p, err := f.admin.ToggleActive(ctx, "1")
	require.NoError(t, err)
	assert.False(t, p.IsActive)
	assert.False(t, f.products.records[0].IsActive)

	p, err = f.admin.ToggleActive(ctx, "1")
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Len(t, f.queue.recountCategories(), 2)
}

func TestToggleActiveInFlight(t *testing.T) {
	f := newAdminFixture(detail("1", "Mug", "Home", true))
	ctx := context.Background()

	ok, err := f.inFlight.Acquire(ctx, "1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.admin.ToggleActive(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrToggleInFlight)
	assert.True(t, f.products.records[0].IsActive)

	require.NoError(t, f.inFlight.Release(ctx, "1"))
	_, err = f.admin.ToggleActive(ctx, "1")
	assert.NoError(t, err)
}

func TestToggleActiveReleasesMarkerOnFailure(t *testing.T) {
	f := newAdminFixture(detail("1", "Mug", "Home", true))
	ctx := context.Background()

	f.products.err = errDown
	_, err := f.admin.ToggleActive(ctx, "1")
	assert.ErrorIs(t, err, errDown)

	ok, err := f.inFlight.Acquire(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSettingsCreatesDefault(t *testing.T) {
	f := newAdminFixture()

	cfg, err := f.admin.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Entrepreneur Marketplace", cfg.SiteName)
	assert.Equal(t, 1, f.siteConfig.inserts)

	_, err = f.admin.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.siteConfig.inserts)

	f.siteConfig.err = errDown
	_, err = f.admin.Settings(context.Background())
	assert.ErrorIs(t, err, errDown)
}

func TestSaveSettings(t *testing.T) {
	f := newAdminFixture()
	cfg := domain.DefaultSiteConfig()
	f.siteConfig.cfg = &cfg

	changed := cfg
	changed.SiteName = "Maker Market"
	saved, err := f.admin.SaveSettings(context.Background(), changed)
	require.NoError(t, err)
	assert.Equal(t, "Maker Market", saved.SiteName)
	assert.Equal(t, "Maker Market", f.siteConfig.cfg.SiteName)

	changed.PrimaryColor = "blue"
	_, err = f.admin.SaveSettings(context.Background(), changed)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	changed.PrimaryColor = "#fff"
	changed.FontFamily = "Comic Sans"
	_, err = f.admin.SaveSettings(context.Background(), changed)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestApplyPreset(t *testing.T) {
	f := newAdminFixture()

	cfg, err := f.admin.ApplyPreset(context.Background(), "green & teal")
	require.NoError(t, err)
	assert.Equal(t, "#10b981", cfg.PrimaryColor)
	assert.Equal(t, "#14b8a6", cfg.AccentColor)
	assert.Equal(t, "#10b981", f.siteConfig.cfg.PrimaryColor)

	_, err = f.admin.ApplyPreset(context.Background(), "Neon")
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestSettingsOptions(t *testing.T) {
	f := newAdminFixture()
	opts := f.admin.SettingsOptions()
	assert.Len(t, opts.Fonts, 8)
	assert.Len(t, opts.Presets, 5)

	opts.Fonts[0] = "changed"
	assert.Equal(t, "Inter", domain.FontOptions[0])
}

func TestMutationsWithoutQueue(t *testing.T) {
	f := newAdminFixture()
	f.admin.queue = nil

	_, err := f.admin.CreateProduct(context.Background(), domain.ProductInput{Name: "Mug", Category: "Home"})
	assert.NoError(t, err)
}
