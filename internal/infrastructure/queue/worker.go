package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/pkg/logger"
)

// Worker procesa las tareas de la cola hasta que se cancela el contexto.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// WorkerConfig dependencias del worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Counter     sales.ClientCounter
	Logger      *logger.Logger
}

// NewWorker construye el worker y registra los handlers.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Counter == nil {
		return nil, errors.New("worker: counter requerido")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{QueueDefault: 1},
	})
	mux := asynq.NewServeMux()
	mux.Handle(TaskClientSalesCount, NewClientSalesCountHandler(cfg.Counter, cfg.Logger))
	return &Worker{server: srv, mux: mux, log: cfg.Logger}, nil
}

// Run procesa tareas hasta que ctx se cancela.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: no configurado")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ClientSalesCountHandler consume client:sales_count.
type ClientSalesCountHandler struct {
	counter sales.ClientCounter
	log     *logger.Logger
}

// NewClientSalesCountHandler construye el handler.
func NewClientSalesCountHandler(counter sales.ClientCounter, log *logger.Logger) *ClientSalesCountHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ClientSalesCountHandler{counter: counter, log: log}
}

// ProcessTask incrementa el contador. Payload inválido o cliente inexistente (o ajeno) no se reintentan.
func (h *ClientSalesCountHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ClientSalesCountPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.UserID == "" || payload.ClientID == "" {
		h.log.Warn().Str("type", t.Type()).Msg("payload inválido")
		return fmt.Errorf("payload inválido: %w", asynq.SkipRetry)
	}
	if err := h.counter.IncrementSalesCount(ctx, payload.UserID, payload.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.log.Warn().Str("client_id", payload.ClientID).Msg("cliente inexistente: contador omitido")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	h.log.Debug().Str("client_id", payload.ClientID).Msg("contador de ventas incrementado")
	return nil
}
