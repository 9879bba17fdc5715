package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

// NewPostgresStore wires every repository to the same pool.
func NewPostgresStore(db *pgxpool.Pool) *Store {
	return &Store{
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		SiteConfig: NewSiteConfigRepository(db),
		Stats:      NewStatsRepository(db),
	}
}

// Migrate creates missing tables. Existing tables are left untouched.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info("✅ Database schema is up to date")
	return nil
}
