// Package sample holds the built-in data set served when no data source is
// configured or when a storefront read fails.
package sample

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/storefront/internal/domain"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func image(id string) []string {
	return []string{"https://images.unsplash.com/" + id + "?w=400&h=400&fit=crop"}
}

var details = []domain.ProductDetail{
	{
		Product: domain.Product{
			ID:          "1",
			Name:        "Organic Honey",
			Description: "Pure organic honey from local farms. Raw, unprocessed, and full of natural goodness.",
			Price:       decimal.RequireFromString("25.99"),
			Images:      image("photo-1587049352846-4a222e784d38"),
			Category:    "Food & Beverages",
			Rating:      4.8,
			Reviews:     127,
			Featured:    true,
		},
		Features: []string{"100% Raw and Unprocessed", "Sustainably Sourced", "No Added Sugars or Preservatives", "Rich in Antioxidants", "Locally Produced"},
		Specifications: map[string]string{
			"Weight": "500g", "Origin": "Local Farms", "Shelf Life": "2 Years", "Storage": "Cool, Dry Place",
		},
		Seller: &domain.Seller{Name: "Honey Haven Farm", Rating: 4.9, TotalSales: 1247},
	},
	{
		Product: domain.Product{
			ID:          "2",
			Name:        "Handcrafted Leather Wallet",
			Description: "Premium leather wallet handcrafted by skilled artisans. Perfect for everyday use.",
			Price:       decimal.RequireFromString("89.99"),
			Images:      image("photo-1553062407-98eeb64c6a62"),
			Category:    "Accessories",
			Rating:      4.6,
			Reviews:     89,
		},
		Features: []string{"Genuine Leather Construction", "8 Card Slots", "2 Bill Compartments", "Coin Pocket", "RFID Protection"},
		Specifications: map[string]string{
			"Material": "Genuine Leather", "Dimensions": "11cm x 9cm x 2cm", "Color": "Brown", "Closure": "Bifold",
		},
		Seller: &domain.Seller{Name: "Artisan Leather Co.", Rating: 4.7, TotalSales: 543},
	},
	{
		Product: domain.Product{
			ID:          "3",
			Name:        "Eco-Friendly Water Bottle",
			Description: "Sustainable stainless steel water bottle. Keeps drinks cold for 24h, hot for 12h.",
			Price:       decimal.RequireFromString("34.99"),
			Images:      image("photo-1602143407151-7111542de6e8"),
			Category:    "Home & Garden",
			Rating:      4.7,
			Reviews:     203,
			Featured:    true,
		},
		Features: []string{"Double-Wall Insulation", "BPA-Free Materials", "Leak-Proof Design", "Easy-Clean Wide Mouth", "Eco-Friendly Manufacturing"},
		Specifications: map[string]string{
			"Capacity": "750ml", "Material": "Stainless Steel", "Dimensions": "7cm x 27cm", "Weight": "450g",
		},
		Seller: &domain.Seller{Name: "Green Living Co.", Rating: 4.8, TotalSales: 892},
	},
	{
		Product: domain.Product{
			ID:          "4",
			Name:        "Artisan Coffee Blend",
			Description: "Small-batch roasted coffee beans from sustainable farms. Rich, bold flavor.",
			Price:       decimal.RequireFromString("18.99"),
			Images:      image("photo-1559056199-641a0ac8b55e"),
			Category:    "Food & Beverages",
			Rating:      4.9,
			Reviews:     156,
			Featured:    true,
		},
		Features: []string{"Single-Origin Beans", "Fair Trade Certified", "Small-Batch Roasted", "Medium-Dark Roast", "Ethically Sourced"},
		Specifications: map[string]string{
			"Weight": "340g", "Roast Level": "Medium-Dark", "Origin": "Colombia & Ethiopia", "Processing": "Washed",
		},
		Seller: &domain.Seller{Name: "Mountain Peak Roasters", Rating: 4.9, TotalSales: 2341},
	},
	{
		Product: domain.Product{
			ID:          "5",
			Name:        "Bamboo Phone Stand",
			Description: "Sustainable bamboo phone stand. Adjustable angle, perfect for video calls.",
			Price:       decimal.RequireFromString("22.99"),
			Images:      image("photo-1556742049-0cfed4f6a45d"),
			Category:    "Tech Accessories",
			Rating:      4.5,
			Reviews:     78,
		},
		Features: []string{"100% Natural Bamboo", "Adjustable Viewing Angle", "Anti-Slip Base", "Universal Compatibility", "Eco-Friendly Design"},
		Specifications: map[string]string{
			"Material": "Bamboo", "Dimensions": "12cm x 8cm x 10cm", "Weight": "180g", "Compatibility": "All Phone Sizes",
		},
		Seller: &domain.Seller{Name: "EcoTech Solutions", Rating: 4.6, TotalSales: 445},
	},
	{
		Product: domain.Product{
			ID:          "6",
			Name:        "Natural Soap Set",
			Description: "Handmade soap set with essential oils. Moisturizing and gentle on skin.",
			Price:       decimal.RequireFromString("32.99"),
			Images:      image("photo-1556909114-f6e7ad7d3136"),
			Category:    "Beauty & Personal Care",
			Rating:      4.4,
			Reviews:     92,
		},
		Features: []string{"100% Natural Ingredients", "Essential Oil Blends", "Moisturizing Formula", "Cruelty-Free", "Biodegradable Packaging"},
		Specifications: map[string]string{
			"Set Contains": "3 Bars (120g each)", "Scents": "Lavender, Eucalyptus, Rose", "Ingredients": "Organic Oils & Botanicals", "Shelf Life": "18 Months",
		},
		Seller: &domain.Seller{Name: "Pure Botanicals", Rating: 4.5, TotalSales: 678},
	},
	{
		Product: domain.Product{
			ID:          "7",
			Name:        "Minimalist Desk Lamp",
			Description: "Modern LED desk lamp with adjustable brightness. Perfect for home office.",
			Price:       decimal.RequireFromString("67.99"),
			Images:      image("photo-1507003211169-0a1dd7228f2d"),
			Category:    "Home & Garden",
			Rating:      4.6,
			Reviews:     134,
		},
		Features: []string{"LED Technology", "Adjustable Brightness", "Color Temperature Control", "Energy Efficient", "Touch Controls"},
		Specifications: map[string]string{
			"Power": "12W LED", "Color Temperature": "3000K-6500K", "Brightness": "Up to 1000 Lumens", "Dimensions": "45cm x 20cm x 8cm",
		},
		Seller: &domain.Seller{Name: "Modern Living Design", Rating: 4.7, TotalSales: 756},
	},
	{
		Product: domain.Product{
			ID:          "8",
			Name:        "Organic Cotton T-Shirt",
			Description: "Soft, comfortable t-shirt made from 100% organic cotton. Available in multiple colors.",
			Price:       decimal.RequireFromString("29.99"),
			Images:      image("photo-1521572163474-6864f9cf17ab"),
			Category:    "Clothing",
			Rating:      4.3,
			Reviews:     167,
		},
		Features: []string{"100% Organic Cotton", "Pre-Shrunk Fabric", "Classic Fit", "Machine Washable", "Multiple Colors Available"},
		Specifications: map[string]string{
			"Material": "100% Organic Cotton", "Fit": "Regular", "Care": "Machine Wash Cold", "Sizes": "XS - XXL",
		},
		Seller: &domain.Seller{Name: "Sustainable Threads", Rating: 4.4, TotalSales: 1123},
	},
}

var categories = []domain.Category{
	{ID: "1", Name: "Food & Beverages", Description: "Organic, artisanal, and gourmet food products from local producers", ImageURL: "https://images.unsplash.com/photo-1563379091339-03246963d96c?w=400&h=300&fit=crop", ProductCount: 127, Featured: true},
	{ID: "2", Name: "Accessories", Description: "Handcrafted accessories including bags, wallets, jewelry, and more", ImageURL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop", ProductCount: 89, Featured: true},
	{ID: "3", Name: "Home & Garden", Description: "Sustainable home goods, decor, and gardening supplies", ImageURL: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=300&fit=crop", ProductCount: 156, Featured: true},
	{ID: "4", Name: "Tech Accessories", Description: "Innovative tech accessories and gadgets for modern life", ImageURL: "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400&h=300&fit=crop", ProductCount: 73},
	{ID: "5", Name: "Beauty & Personal Care", Description: "Natural and organic beauty products and personal care items", ImageURL: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400&h=300&fit=crop", ProductCount: 94, Featured: true},
	{ID: "6", Name: "Clothing", Description: "Sustainable and ethically made clothing and apparel", ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=300&fit=crop", ProductCount: 112},
	{ID: "7", Name: "Art & Crafts", Description: "Unique handmade art pieces and craft supplies", ImageURL: "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=400&h=300&fit=crop", ProductCount: 67},
	{ID: "8", Name: "Books & Education", Description: "Educational materials, books, and learning resources", ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=300&fit=crop", ProductCount: 45},
}

// StorefrontCategories is the category selector offered on the product listing.
var StorefrontCategories = []string{
	"Food & Beverages",
	"Accessories",
	"Home & Garden",
	"Tech Accessories",
	"Beauty & Personal Care",
	"Clothing",
}

// Products returns a fresh copy of the sample products, all active.
func Products() []domain.Product {
	out := make([]domain.Product, len(details))
	for i, d := range details {
		out[i] = copyDetail(d, i).Product
	}
	return out
}

// ProductDetail returns the sample detail record for id.
func ProductDetail(id string) (domain.ProductDetail, bool) {
	for i, d := range details {
		if d.ID == id {
			return copyDetail(d, i), true
		}
	}
	return domain.ProductDetail{}, false
}

func Categories() []domain.Category {
	return slices.Clone(categories)
}

// Stats returns the dashboard numbers shown when the data source is
// unavailable. Order timestamps are relative to now.
func Stats(now time.Time) domain.DashboardStats {
	return domain.DashboardStats{
		TotalProducts: len(details),
		TotalUsers:    25,
		TotalOrders:   12,
		TotalRevenue:  decimal.RequireFromString("1456.70"),
		RecentOrders: []domain.Order{
			{ID: "1", Total: decimal.RequireFromString("159.99"), CreatedAt: now, BuyerName: "John Doe", BuyerEmail: "john@example.com"},
			{ID: "2", Total: decimal.RequireFromString("79.99"), CreatedAt: now.Add(-24 * time.Hour), BuyerName: "Jane Smith", BuyerEmail: "jane@example.com"},
			{ID: "3", Total: decimal.RequireFromString("49.99"), CreatedAt: now.Add(-48 * time.Hour), BuyerName: "Mike Johnson", BuyerEmail: "mike@example.com"},
		},
		Sample: true,
	}
}

func copyDetail(d domain.ProductDetail, i int) domain.ProductDetail {
	d.IsActive = true
	d.CreatedAt = epoch.Add(time.Duration(i) * time.Hour)
	d.UpdatedAt = d.CreatedAt
	d.Images = slices.Clone(d.Images)
	d.Features = slices.Clone(d.Features)
	d.Specifications = maps.Clone(d.Specifications)
	if d.Seller != nil {
		seller := *d.Seller
		d.Seller = &seller
	}
	return d.WithDefaults()
}
