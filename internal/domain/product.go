package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	IsActive    bool            `json:"is_active"`
	Featured    bool            `json:"featured"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	StripeID    *string         `json:"stripe_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
	UpdatedAt   time.Time       `json:"updated_at,omitzero"`
}

// Seller is the merchant block shown on the product detail view.
type Seller struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	TotalSales int     `json:"total_sales"`
}

type ProductDetail struct {
	Product
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Seller         *Seller           `json:"seller,omitempty"`
}

// Valid reports whether the record carries the fields every listing needs.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.ID) != "" && strings.TrimSpace(p.Name) != ""
}

// PrimaryImage returns the first image reference or "" when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// WithDefaults fills optional fields so callers never see nil slices.
func (p Product) WithDefaults() Product {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Reviews < 0 {
		p.Reviews = 0
	}
	return p
}

func (d ProductDetail) WithDefaults() ProductDetail {
	d.Product = d.Product.WithDefaults()
	if d.Features == nil {
		d.Features = []string{}
	}
	if d.Specifications == nil {
		d.Specifications = map[string]string{}
	}
	return d
}

// ProductInput is the admin form payload for create and update.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	IsActive    *bool           `json:"is_active,omitempty"`
	Featured    bool            `json:"featured"`
}

// Validate checks the admin form and returns an ErrInvalidProduct wrapped error.
func (in ProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalidProduct("name is required")
	case strings.TrimSpace(in.Category) == "":
		return invalidProduct("category is required")
	case in.Price.IsNegative():
		return invalidProduct("price must be >= 0")
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img) == "" {
			return invalidProduct("image references must not be empty")
		}
	}
	return nil
}

// Apply copies the form onto p, normalising the description to plain text.
func (in ProductInput) Apply(p Product) Product {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = PlainText(in.Description)
	p.Price = in.Price
	p.Images = in.Images
	p.Category = strings.TrimSpace(in.Category)
	p.Tags = in.Tags
	p.Featured = in.Featured
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p.WithDefaults()
}
