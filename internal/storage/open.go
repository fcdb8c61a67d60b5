// Package storage abre el document store configurado (PostgreSQL o Redis).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/internal/infrastructure/postgres"
	"github.com/jhoicas/veon-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/jhoicas/veon-api/pkg/logger"
)

// Open conecta el driver indicado por STORE_DRIVER. Con postgres y DB_AUTO_MIGRATE
// crea el esquema antes de devolver el store.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentStore, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("esquema del document store verificado")
		}
		return postgres.NewDocumentStore(pool), nil
	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		return redisstore.New(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
}
