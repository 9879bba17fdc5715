package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/domain/task"
	"marketplace/storefront/internal/repository"
)

var errDown = errors.New("connection refused")

type fakeProducts struct {
	mu      sync.Mutex
	records []domain.ProductDetail
	err     error
	// countErrs fails the next n CountActive calls.
	countErrs int
}

func (f *fakeProducts) List(ctx context.Context, filter *repository.Filter) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Product{}
	for _, d := range f.records {
		if filter != nil && filter.Column == "is_active" && d.IsActive != filter.Value {
			continue
		}
		out = append(out, d.Product)
	}
	return out, nil
}

func (f *fakeProducts) Get(ctx context.Context, id string) (*domain.ProductDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.records {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProducts) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.records = append(f.records, domain.ProductDetail{Product: *product})
	p := *product
	return &p, nil
}

func (f *fakeProducts) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].ID == product.ID {
			f.records[i].Product = *product
			p := *product
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProducts) SetActive(ctx context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].IsActive = active
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	n := len(f.records)
	f.records = slices.DeleteFunc(f.records, func(d domain.ProductDetail) bool { return d.ID == id })
	if len(f.records) == n {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeProducts) CountActive(ctx context.Context, category string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErrs > 0 {
		f.countErrs--
		return 0, errDown
	}
	n := 0
	for _, d := range f.records {
		if d.IsActive && d.Category == category {
			n++
		}
	}
	return n, nil
}

type fakeCategories struct {
	records []domain.Category
	err     error
}

func (f *fakeCategories) List(ctx context.Context, filter *repository.Filter) ([]domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.records), nil
}

func (f *fakeCategories) SetProductCount(ctx context.Context, name string, count int) error {
	for i := range f.records {
		if f.records[i].Name == name {
			f.records[i].ProductCount = count
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSiteConfig struct {
	cfg     *domain.SiteConfig
	inserts int
	err     error
}

func (f *fakeSiteConfig) Get(ctx context.Context, id string) (*domain.SiteConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg == nil {
		return nil, domain.ErrNotFound
	}
	c := *f.cfg
	return &c, nil
}

func (f *fakeSiteConfig) Insert(ctx context.Context, cfg *domain.SiteConfig) (*domain.SiteConfig, error) {
	f.inserts++
	c := *cfg
	f.cfg = &c
	return cfg, nil
}

func (f *fakeSiteConfig) Update(ctx context.Context, cfg *domain.SiteConfig) error {
	if f.cfg == nil {
		return domain.ErrNotFound
	}
	c := *cfg
	f.cfg = &c
	return nil
}

type fakeStats struct {
	stats *domain.DashboardStats
	err   error
}

func (f *fakeStats) Dashboard(ctx context.Context, recentLimit int) (*domain.DashboardStats, error) {
	return f.stats, f.err
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []task.Task
	acked []string
}

func (q *fakeQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
	return "1-0", nil
}

func (q *fakeQueue) GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error) {
	return nil, nil
}

func (q *fakeQueue) AckTask(ctx context.Context, stream, group, msgID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, stream+"/"+msgID)
	return nil
}

func (q *fakeQueue) CreateGroup(ctx context.Context, stream, group string) error {
	return nil
}

func (q *fakeQueue) AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

func (q *fakeQueue) EnsureStreamsExist(ctx context.Context) error {
	return nil
}

func (q *fakeQueue) StreamName(taskType string) string {
	return "test:" + taskType
}

func (q *fakeQueue) recountCategories() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []string
	for _, t := range q.tasks {
		if rt, ok := t.(*task.CategoryRecountTask); ok {
			out = append(out, rt.Category)
		}
	}
	return out
}

// message builds a stream entry the way the Redis queue stores it.
func message(t task.Task) *redis.XMessage {
	data, err := t.TaskValue()
	if err != nil {
		panic(err)
	}
	return &redis.XMessage{
		ID: "1-0",
		Values: map[string]any{
			"task_type": t.TaskType(),
			"task_data": string(data),
		},
	}
}

func detail(id, name, category string, active bool) domain.ProductDetail {
	return domain.ProductDetail{Product: domain.Product{
		ID:       id,
		Name:     name,
		Category: category,
		IsActive: active,
	}}
}
