package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/storefront/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type orderRow struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Users     *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"users"`
}

type statsRepository struct {
	client *restClient
}

func (r *statsRepository) Dashboard(ctx context.Context, recentLimit int) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	var orders []orderRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalProducts, err = r.client.count(gctx, "products", nil)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = r.client.count(gctx, "users", nil)
		return err
	})
	g.Go(func() error {
		_, err := r.client.do(gctx, request{
			method: http.MethodGet,
			table:  "orders",
			query: map[string]string{
				"select": "id,total,created_at,users(name,email)",
				"order":  "created_at.desc",
			},
		}, &orders)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	stats.TotalOrders = len(orders)
	stats.TotalRevenue = decimal.Zero
	stats.RecentOrders = make([]domain.Order, 0, recentLimit)
	for i, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		if i >= recentLimit {
			continue
		}
		order := domain.Order{ID: o.ID, Total: o.Total, CreatedAt: o.CreatedAt}
		if o.Users != nil {
			order.BuyerName = o.Users.Name
			order.BuyerEmail = o.Users.Email
		}
		stats.RecentOrders = append(stats.RecentOrders, order)
	}

	return stats, nil
}
