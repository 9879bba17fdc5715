// Package catalog filters and orders in-memory product and category lists
// for the storefront and admin listings.
//
// Everything here is a pure function of its arguments: callers load the
// records, build a Predicates value from the request and get back an ordered
// subset of the same records. Nothing is cached between calls.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace/storefront/internal/domain"
)

// Category sentinels that disable the category predicate.
const (
	AllCategories = "All Categories"
	All           = "All"
)

// Predicates is the user-selected filter state. The zero value matches every
// well-formed record.
type Predicates struct {
	SearchTerm   string
	Category     string
	FeaturedOnly bool
	// ActiveOnly is set by storefront views; admin views leave it false so
	// inactive records stay visible.
	ActiveOnly bool
}

// Fields is the flat view of a record that predicates and sort keys read.
type Fields struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Featured     bool
	Active       bool
	Price        decimal.Decimal
	Rating       float64
	ProductCount int
	CreatedAt    time.Time
}

func (f Fields) wellFormed() bool {
	return f.ID != "" && f.Name != ""
}

func ProductFields(p domain.Product) Fields {
	return Fields{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Featured:    p.Featured,
		Active:      p.IsActive,
		Price:       p.Price,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}
}

// CategoryFields maps a category onto the engine view. Categories are always
// eligible under ActiveOnly and are their own category.
func CategoryFields(c domain.Category) Fields {
	return Fields{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Category:     c.Name,
		Featured:     c.Featured,
		Active:       true,
		ProductCount: c.ProductCount,
	}
}

// Products filters and sorts a product list.
func Products(records []domain.Product, p Predicates, key SortKey) []domain.Product {
	return FilterAndSort(records, ProductFields, p, key)
}

// Categories filters and sorts a category list.
func Categories(records []domain.Category, p Predicates, key SortKey) []domain.Category {
	return FilterAndSort(records, CategoryFields, p, key)
}
