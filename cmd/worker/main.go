package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/veon-api/internal/application/usecase"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/infrastructure/docstore"
	"github.com/jhoicas/veon-api/internal/infrastructure/queue"
	"github.com/jhoicas/veon-api/internal/storage"
	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/jhoicas/veon-api/pkg/logger"
)

// Procesa las tareas encoladas por la API cuando SALES_COUNTER_MODE=queue.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(cfg.App)

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("document store")
	}
	defer store.Close()

	clientUC := usecase.NewClientUseCase(docstore.New[entity.Client](store, "clients"), store)

	worker, err := queue.NewWorker(queue.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Counter: clientUC,
		Logger:  log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear worker")
	}

	log.Info().Str("redis", cfg.Redis.Addr).Msg("worker iniciado")
	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("worker finalizado con error")
		return
	}
	log.Info().Msg("worker detenido")
}
