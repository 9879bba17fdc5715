package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/storefront/internal/domain"
)

type siteConfigRepository struct {
	client *restClient
}

func (r *siteConfigRepository) Get(ctx context.Context, id string) (*domain.SiteConfig, error) {
	query := eqID(id)
	query["select"] = "*"

	var rows []domain.SiteConfig
	if _, err := r.client.do(ctx, request{method: http.MethodGet, table: "site_config", query: query}, &rows); err != nil {
		return nil, fmt.Errorf("failed to get site config %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("site config %s: %w", id, domain.ErrNotFound)
	}

	cfg := rows[0].WithDefaults()
	return &cfg, nil
}

func (r *siteConfigRepository) Insert(ctx context.Context, cfg *domain.SiteConfig) (*domain.SiteConfig, error) {
	var rows []domain.SiteConfig
	_, err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  "site_config",
		prefer: "return=representation",
		body:   cfg,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to insert site config: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to insert site config: empty response")
	}

	saved := rows[0].WithDefaults()
	return &saved, nil
}

func (r *siteConfigRepository) Update(ctx context.Context, cfg *domain.SiteConfig) error {
	body := *cfg
	body.CreatedAt = time.Time{}
	body.UpdatedAt = time.Now().UTC()

	var rows []struct {
		ID string `json:"id"`
	}
	_, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  "site_config",
		query:  eqID(cfg.ID),
		prefer: "return=representation",
		body:   body,
	}, &rows)
	if err != nil {
		return fmt.Errorf("failed to update site config: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("site config %s: %w", cfg.ID, domain.ErrNotFound)
	}
	return nil
}
