package client

import (
	"marketplace/storefront/internal/config"
	"marketplace/storefront/internal/repository"
)

// NewRESTStore returns a Store backed by the hosted REST gateway, plus a
// close func releasing the underlying HTTP client.
func NewRESTStore(cfg config.DataSourceConfig) (*repository.Store, func() error) {
	c := newRESTClient(cfg)
	return &repository.Store{
		Products:   &productRepository{client: c},
		Categories: &categoryRepository{client: c},
		SiteConfig: &siteConfigRepository{client: c},
		Stats:      &statsRepository{client: c},
	}, c.Close
}
