package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"marketplace/storefront/internal/auth"
	"marketplace/storefront/internal/client"
	"marketplace/storefront/internal/config"
	"marketplace/storefront/internal/httpapi"
	"marketplace/storefront/internal/queue"
	"marketplace/storefront/internal/repository"
	"marketplace/storefront/internal/service"
	"marketplace/storefront/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Store    *repository.Store
	Queue    queue.Queue
	InFlight state.InFlight
	Auth     auth.Authenticator

	Storefront *service.Storefront
	Admin      *service.Admin
	Recounter  *service.Recounter
	Server     *httpapi.Server

	db          *pgxpool.Pool
	redis       *redis.Client
	closeClient func() error
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	if err := container.initStore(ctx); err != nil {
		container.Close()
		return nil, err
	}

	if err := container.initRedis(ctx); err != nil {
		container.Close()
		return nil, err
	}

	if cfg.Auth.JWTSecret != "" {
		authenticator, err := auth.NewJWTAuthenticator(cfg.Auth)
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
		}
		container.Auth = authenticator
	} else {
		log.Warn("⚠️ auth.jwt_secret is empty, admin routes will reject every request")
		container.Auth = auth.NewAnonymous()
	}

	container.Storefront = service.NewStorefront(container.Store)
	container.Admin = service.NewAdmin(container.Store, container.Queue, container.InFlight)
	if container.Queue != nil {
		container.Recounter = service.NewRecounter(
			container.Store,
			container.Queue,
			cfg.Redis.ConsumerGroup,
			cfg.Redis.MinIdleTime,
			cfg.Workers.MaxRetries,
		)
	}

	handler := httpapi.NewHandler(container.Storefront, container.Admin)
	router := httpapi.NewRouter(cfg.Server.Mode, handler, container.Auth)
	container.Server = httpapi.NewServer(cfg.Server, router)

	return container, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.DataSource.Driver {
	case config.DriverPostgres:
		db, err := pgxpool.New(ctx, c.Config.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to create database pool: %w", err)
		}
		c.db = db

		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("✅ Connected to PostgreSQL successfully")

		if c.Config.Database.Migrate {
			if err := repository.Migrate(ctx, db); err != nil {
				return err
			}
		}
		c.Store = repository.NewPostgresStore(db)

	case config.DriverREST:
		store, closeClient := client.NewRESTStore(c.Config.DataSource)
		c.Store = store
		c.closeClient = closeClient
		log.Infof("✅ Using REST data source at %s", c.Config.DataSource.RestURL)

	default:
		c.Store = repository.NewSampleStore()
		log.Info("📦 Using built-in sample data, writes are disabled")
	}
	return nil
}

// initRedis connects the recount queue and the shared in-flight markers.
// Without Redis, markers live in process memory and no recounts are queued.
func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.Redis.Enabled {
		c.InFlight = state.NewMemoryInFlight(c.Config.Toggle.TTL())
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.Database,
	})
	c.redis = rdb

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(rdb, c.Config.Redis)
	if err != nil {
		return err
	}
	c.Queue = redisQueue
	c.InFlight = state.NewRedisInFlight(rdb, c.Config.Toggle.TTL())
	return nil
}

// Run serves HTTP and, when Redis is enabled, runs the recount workers until
// ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	if c.Recounter != nil {
		g.Go(func() error {
			return c.Recounter.RunWorkers(ctx, c.Config.Workers.Count)
		})
	}

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Errorf("❌ Failed to close Redis client: %v", err)
		}
	}
	if c.closeClient != nil {
		if err := c.closeClient(); err != nil {
			log.Errorf("❌ Failed to close REST client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
