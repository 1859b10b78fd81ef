package backend

import (
	"context"
	"fmt"

	"github.com/Lil-Chen05/TheBench/internal/config"
	"github.com/Lil-Chen05/TheBench/internal/importer"
	"github.com/Lil-Chen05/TheBench/internal/repository"
	"github.com/Lil-Chen05/TheBench/internal/supabase"

	"github.com/rs/zerolog/log"
)

// Backend is an opened backing store
type Backend struct {
	Name  string
	Store importer.Store

	close  func()
	health func(ctx context.Context) (map[string]interface{}, error)
}

// Open connects the configured backing store
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		store, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.StoreBackend, Store: store}, nil

	case config.BackendPostgres:
		db, err := repository.NewDatabase(ctx, cfg.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info().Msg("Database connection established")
		return FromDatabase(db), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// FromDatabase wraps a connected Postgres database
func FromDatabase(db *repository.Database) *Backend {
	return &Backend{
		Name:  config.BackendPostgres,
		Store: db.Store(),
		close: db.Close,
		health: func(ctx context.Context) (map[string]interface{}, error) {
			if err := db.Health(ctx); err != nil {
				return nil, err
			}
			return db.PoolStats(), nil
		},
	}
}

// Health checks the store connection and returns backend details for the
// health endpoint. Backends without a connection to check report healthy.
func (b *Backend) Health(ctx context.Context) (map[string]interface{}, error) {
	if b.health == nil {
		return nil, nil
	}
	return b.health(ctx)
}

// Close releases the store connection
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
