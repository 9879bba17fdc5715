package repository

import (
	"context"
	"fmt"

	"marketplace/storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &statsRepository{
		db: db,
	}
}

func (r *statsRepository) Dashboard(ctx context.Context, recentLimit int) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	err := r.db.QueryRow(ctx, `
	SELECT
		(SELECT count(*) FROM products),
		(SELECT count(*) FROM users),
		(SELECT count(*) FROM orders),
		(SELECT coalesce(sum(total), 0) FROM orders)`,
	).Scan(&stats.TotalProducts, &stats.TotalUsers, &stats.TotalOrders, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `
	SELECT o.id, o.total, o.created_at, coalesce(u.name, ''), coalesce(u.email, '')
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	ORDER BY o.created_at DESC
	LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	defer rows.Close()

	stats.RecentOrders = make([]domain.Order, 0, recentLimit)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Total, &o.CreatedAt, &o.BuyerName, &o.BuyerEmail); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		stats.RecentOrders = append(stats.RecentOrders, o)
	}

	return stats, rows.Err()
}
