package sales

import (
	"context"
	"time"

	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RangeSummer lo implementan los stores que agregan en la base (PostgreSQL): cuenta los documentos
// de userID con rangeField en [from, to] y suma sumField.
type RangeSummer interface {
	SumRange(ctx context.Context, collection, userID, sumField, rangeField, from, to string) (int, decimal.Decimal, error)
}

// ClientSalesNotifier recibe el aviso de una venta ya confirmada por userID.
// No devuelve error: las fallas se registran y nunca afectan a la venta.
type ClientSalesNotifier interface {
	SaleRecorded(ctx context.Context, userID, clientID string)
}

// ClientCounter incrementa el contador de ventas de un cliente de userID.
// Un cliente de otro usuario cuenta como inexistente.
type ClientCounter interface {
	IncrementSalesCount(ctx context.Context, userID, clientID string) error
}

// counterTimeout tiempo máximo del incremento en línea.
const counterTimeout = 5 * time.Second

// InlineNotifier incrementa el contador en el mismo proceso, después del commit de la venta.
type InlineNotifier struct {
	counter ClientCounter
	log     *logger.Logger
}

// NewInlineNotifier construye el notificador en línea.
func NewInlineNotifier(counter ClientCounter, log *logger.Logger) *InlineNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &InlineNotifier{counter: counter, log: log}
}

// SaleRecorded incrementa el contador. Una cancelación de la request no lo interrumpe.
func (n *InlineNotifier) SaleRecorded(ctx context.Context, userID, clientID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), counterTimeout)
	defer cancel()
	if err := n.counter.IncrementSalesCount(ctx, userID, clientID); err != nil {
		n.log.Warn().Err(err).Str("client_id", clientID).Msg("no se pudo incrementar el contador de ventas del cliente")
	}
}

// NopNotifier descarta los avisos.
type NopNotifier struct{}

// SaleRecorded no hace nada.
func (NopNotifier) SaleRecorded(context.Context, string, string) {}
