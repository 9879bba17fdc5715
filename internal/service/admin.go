package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"marketplace/storefront/internal/catalog"
	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/domain/task"
	"marketplace/storefront/internal/queue"
	"marketplace/storefront/internal/repository"
	"marketplace/storefront/internal/sample"
	"marketplace/storefront/internal/state"
)

type AdminProductQuery struct {
	Search   string
	Category string
}

type AdminProductListing struct {
	Items []domain.Product `json:"items"`
	Shown int              `json:"shown"`
	Total int              `json:"total"`
	// Categories holds the distinct categories of the loaded records in
	// first-seen order.
	Categories []string `json:"categories"`
}

type SettingsOptions struct {
	Fonts   []string             `json:"fonts"`
	Presets []domain.ColorPreset `json:"presets"`
}

type Admin struct {
	store    *repository.Store
	queue    queue.Queue
	inFlight state.InFlight
	now      func() time.Time
}

// NewAdmin wires the admin operations. queue may be nil, in which case
// product mutations do not schedule category recounts.
func NewAdmin(store *repository.Store, queue queue.Queue, inFlight state.InFlight) *Admin {
	return &Admin{
		store:    store,
		queue:    queue,
		inFlight: inFlight,
		now:      time.Now,
	}
}

func (a *Admin) Dashboard(ctx context.Context) *domain.DashboardStats {
	stats, err := a.store.Stats.Dashboard(ctx, domain.RecentOrdersLimit)
	if err != nil {
		log.Warnf("⚠️ Failed to load dashboard stats, serving sample numbers: %v", err)
		fallback := sample.Stats(a.now())
		return &fallback
	}
	return stats
}

func (a *Admin) ListProducts(ctx context.Context, q AdminProductQuery) (*AdminProductListing, error) {
	products, err := a.store.Products.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items := catalog.Products(products, catalog.Predicates{
		SearchTerm: q.Search,
		Category:   q.Category,
	}, catalog.SortNewest)

	categories := []string{}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}

	return &AdminProductListing{
		Items:      items,
		Shown:      len(items),
		Total:      len(products),
		Categories: categories,
	}, nil
}

func (a *Admin) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := a.now().UTC()
	product := in.Apply(domain.Product{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})

	created, err := a.store.Products.Insert(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Infof("🆕 Created product %s (%s)", created.ID, created.Name)
	a.scheduleRecount(ctx, created.Category, created.ID, "create")
	return created, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := a.store.Products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	previousCategory := existing.Category
	product := in.Apply(existing.Product)
	product.UpdatedAt = a.now().UTC()

	updated, err := a.store.Products.Update(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	log.Infof("✏️ Updated product %s", id)
	a.scheduleRecount(ctx, updated.Category, id, "update")
	if previousCategory != updated.Category {
		a.scheduleRecount(ctx, previousCategory, id, "update")
	}
	return updated, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	existing, err := a.store.Products.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load product %s: %w", id, err)
	}

	if err := a.store.Products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	log.Infof("🗑️ Deleted product %s", id)
	a.scheduleRecount(ctx, existing.Category, id, "delete")
	return nil
}

// ToggleActive flips is_active. A second toggle on the same product while the
// first is still running gets ErrToggleInFlight. Nothing is rolled back when
// the write fails.
func (a *Admin) ToggleActive(ctx context.Context, id string) (*domain.Product, error) {
	acquired, err := a.inFlight.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark product %s in flight: %w", id, err)
	}
	if !acquired {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrToggleInFlight)
	}
	defer func() {
		if err := a.inFlight.Release(context.WithoutCancel(ctx), id); err != nil {
			log.Errorf("❌ Failed to release in-flight marker for %s: %v", id, err)
		}
	}()

	existing, err := a.store.Products.Get(ctx, id)
	if err != nil {
		log.Errorf("❌ Failed to load product %s for toggle: %v", id, err)
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	active := !existing.IsActive
	if err := a.store.Products.SetActive(ctx, id, active); err != nil {
		log.Errorf("❌ Failed to set product %s active=%t: %v", id, active, err)
		return nil, fmt.Errorf("failed to update product %s status: %w", id, err)
	}

	product := existing.Product
	product.IsActive = active
	log.Infof("🔁 Product %s active=%t", id, active)
	a.scheduleRecount(ctx, product.Category, id, "toggle")
	return &product, nil
}

// Settings returns the site configuration, creating the default record on
// first access.
func (a *Admin) Settings(ctx context.Context) (*domain.SiteConfig, error) {
	cfg, err := a.store.SiteConfig.Get(ctx, domain.DefaultSiteConfigID)
	if err == nil {
		c := cfg.WithDefaults()
		return &c, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	defaults := domain.DefaultSiteConfig()
	created, err := a.store.SiteConfig.Insert(ctx, &defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	log.Info("⚙️ Created default site configuration")
	return created, nil
}

func (a *Admin) SaveSettings(ctx context.Context, cfg domain.SiteConfig) (*domain.SiteConfig, error) {
	cfg = cfg.WithDefaults()
	cfg.ID = domain.DefaultSiteConfigID
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UpdatedAt = a.now().UTC()

	err := a.store.SiteConfig.Update(ctx, &cfg)
	if errors.Is(err, domain.ErrNotFound) {
		created, insertErr := a.store.SiteConfig.Insert(ctx, &cfg)
		if insertErr != nil {
			return nil, fmt.Errorf("failed to create settings: %w", insertErr)
		}
		return created, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	log.Info("⚙️ Saved site configuration")
	return &cfg, nil
}

func (a *Admin) ApplyPreset(ctx context.Context, name string) (*domain.SiteConfig, error) {
	preset, ok := domain.FindColorPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown colour preset %q", domain.ErrInvalidSettings, name)
	}

	cfg, err := a.Settings(ctx)
	if err != nil {
		return nil, err
	}

	cfg.PrimaryColor = preset.Primary
	cfg.AccentColor = preset.Accent
	return a.SaveSettings(ctx, *cfg)
}

func (a *Admin) SettingsOptions() SettingsOptions {
	return SettingsOptions{
		Fonts:   FontOptions(),
		Presets: ColorPresets(),
	}
}

func FontOptions() []string {
	return append([]string(nil), domain.FontOptions...)
}

func ColorPresets() []domain.ColorPreset {
	return append([]domain.ColorPreset(nil), domain.ColorPresets...)
}

// scheduleRecount publishes a recount for category. Publishing failures are
// logged only: the product write already succeeded.
func (a *Admin) scheduleRecount(ctx context.Context, category, productID, reason string) {
	if a.queue == nil || category == "" {
		return
	}

	_, err := a.queue.AddTask(ctx, &task.CategoryRecountTask{
		Category:  category,
		ProductID: productID,
		Reason:    reason,
	})
	if err != nil {
		log.Errorf("❌ Failed to schedule recount for %s: %v", category, err)
	}
}
