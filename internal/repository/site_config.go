package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const siteConfigColumns = `id, site_name, description, logo, primary_color, accent_color, font_family,
	email, phone, address, social_links, meta_title, meta_description,
	allow_registration, require_approval, created_at, updated_at`

type siteConfigRepository struct {
	db *pgxpool.Pool
}

func NewSiteConfigRepository(db *pgxpool.Pool) SiteConfigRepository {
	return &siteConfigRepository{
		db: db,
	}
}

func (r *siteConfigRepository) Get(ctx context.Context, id string) (*domain.SiteConfig, error) {
	row := r.db.QueryRow(ctx, `SELECT `+siteConfigColumns+` FROM site_config WHERE id = $1`, id)
	cfg, err := scanSiteConfig(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("site config %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get site config %s: %w", id, err)
	}
	return cfg, nil
}

func (r *siteConfigRepository) Insert(ctx context.Context, c *domain.SiteConfig) (*domain.SiteConfig, error) {
	query := `
	INSERT INTO site_config (id, site_name, description, logo, primary_color, accent_color, font_family,
		email, phone, address, social_links, meta_title, meta_description, allow_registration, require_approval)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + siteConfigColumns

	row := r.db.QueryRow(ctx, query,
		c.ID, c.SiteName, c.Description, c.Logo, c.PrimaryColor, c.AccentColor, c.FontFamily,
		c.Email, c.Phone, c.Address, c.SocialLinks, c.MetaTitle, c.MetaDescription,
		c.AllowRegistration, c.RequireApproval,
	)
	saved, err := scanSiteConfig(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert site config: %w", err)
	}
	return saved, nil
}

func (r *siteConfigRepository) Update(ctx context.Context, c *domain.SiteConfig) error {
	query := `
	UPDATE site_config
	SET site_name = $2, description = $3, logo = $4, primary_color = $5, accent_color = $6, font_family = $7,
		email = $8, phone = $9, address = $10, social_links = $11, meta_title = $12, meta_description = $13,
		allow_registration = $14, require_approval = $15, updated_at = now()
	WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.SiteName, c.Description, c.Logo, c.PrimaryColor, c.AccentColor, c.FontFamily,
		c.Email, c.Phone, c.Address, c.SocialLinks, c.MetaTitle, c.MetaDescription,
		c.AllowRegistration, c.RequireApproval,
	)
	if err != nil {
		return fmt.Errorf("failed to update site config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("site config %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func scanSiteConfig(row pgx.Row) (*domain.SiteConfig, error) {
	var c domain.SiteConfig
	err := row.Scan(
		&c.ID, &c.SiteName, &c.Description, &c.Logo, &c.PrimaryColor, &c.AccentColor, &c.FontFamily,
		&c.Email, &c.Phone, &c.Address, &c.SocialLinks, &c.MetaTitle, &c.MetaDescription,
		&c.AllowRegistration, &c.RequireApproval, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c = c.WithDefaults()
	return &c, nil
}
