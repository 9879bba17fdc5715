package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         string          `json:"id"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	BuyerName  string          `json:"buyer_name"`
	BuyerEmail string          `json:"buyer_email"`
}

type DashboardStats struct {
	TotalProducts int             `json:"total_products"`
	TotalUsers    int             `json:"total_users"`
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentOrders  []Order         `json:"recent_orders"`
	// Sample is set when the numbers come from the fallback data set.
	Sample bool `json:"sample"`
}

const RecentOrdersLimit = 5
