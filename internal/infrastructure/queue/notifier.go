package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/jhoicas/veon-api/pkg/logger"
)

var _ sales.ClientSalesNotifier = (*Notifier)(nil)

// enqueuer lo implementa *asynq.Client.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier encola el incremento del contador de ventas en lugar de hacerlo en la request.
type Notifier struct {
	client enqueuer
	log    *logger.Logger
}

// NewNotifier construye el notificador sobre un cliente Asynq.
func NewNotifier(client *asynq.Client, log *logger.Logger) *Notifier {
	return newNotifier(client, log)
}

func newNotifier(client enqueuer, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Notifier{client: client, log: log}
}

// SaleRecorded encola client:sales_count. Un fallo al encolar solo se registra.
func (n *Notifier) SaleRecorded(ctx context.Context, userID, clientID string) {
	task, err := NewClientSalesCountTask(userID, clientID)
	if err != nil {
		n.log.Warn().Err(err).Msg("tarea de contador de ventas inválida")
		return
	}
	info, err := n.client.EnqueueContext(context.WithoutCancel(ctx), task)
	if err != nil {
		n.log.Warn().Err(err).Str("client_id", clientID).Msg("no se pudo encolar el contador de ventas")
		return
	}
	n.log.Debug().Str("task_id", info.ID).Str("client_id", clientID).Msg("contador de ventas encolado")
}
