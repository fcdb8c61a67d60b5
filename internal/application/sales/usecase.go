// Package sales implementa el flujo transaccional de ventas: verificación de stock sobre varias
// líneas, descuento atómico del stock junto con la venta, restitución al eliminarla y estadísticas.
package sales

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/application/usecase"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/jhoicas/veon-api/pkg/validation"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	collectionSales = "sales"
	fieldStock      = "stock"
	// maxConcurrentReads lecturas de productos en paralelo por request.
	maxConcurrentReads = 8
)

// SaleUseCase orquesta ventas sobre las colecciones sales y products.
type SaleUseCase struct {
	sales    repository.EntityStore[entity.Sale]
	products repository.EntityStore[entity.Product]
	batches  repository.BatchFactory
	notifier ClientSalesNotifier
	summer   RangeSummer // nil: Stats agrega en memoria
	log      *logger.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. notifier nil equivale a no notificar.
func NewSaleUseCase(
	sales repository.EntityStore[entity.Sale],
	products repository.EntityStore[entity.Product],
	batches repository.BatchFactory,
	notifier ClientSalesNotifier,
	log *logger.Logger,
) *SaleUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	uc := &SaleUseCase{
		sales:    sales,
		products: products,
		batches:  batches,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
	if summer, ok := batches.(RangeSummer); ok {
		uc.summer = summer
	}
	return uc
}

// Create registra la venta.
//
//  1. Valida campos requeridos y cada línea (quantity > 0, unitPrice >= 0).
//  2. Carga los productos referenciados y verifica stock sumando las cantidades por producto,
//     antes de preparar cualquier escritura.
//  3. Prepara en un único batch el descuento de stock de cada producto y el documento de la venta.
//  4. Commit: si otra venta consumió el stock entre la lectura y el commit, la guarda del store
//     rechaza el batch completo y se responde stock insuficiente.
//  5. Notifica al cliente (best-effort, nunca falla la venta).
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := validation.Required(in.ClientID, "Client ID"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.ClientName, "Client name"); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("Sale must have at least one item")
	}
	if err := validation.Required(in.PaymentMethod, "Payment method"); err != nil {
		return nil, err
	}
	items, err := usecase.ValidateLineItems(in.Items, "Sale")
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := validation.Required(it.ProductID, "Item product ID"); err != nil {
			return nil, err
		}
	}

	requested, order := aggregate(items)
	products, err := uc.loadProducts(ctx, userID, order)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		p := products[id]
		if p.Stock < requested[id] {
			return nil, domain.NewInsufficientStockError(p.Name, p.Stock, requested[id])
		}
	}
	for i := range items {
		p := products[items[i].ProductID]
		if items[i].ProductName == "" {
			items[i].ProductName = p.Name
		}
		if items[i].SKU == "" {
			items[i].SKU = p.SKU
		}
	}

	subtotal, total := entity.Totals(items, in.Subtotal, in.Tax, in.Discount)
	status := validation.Sanitize(in.Status)
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	date := validation.Sanitize(in.Date)
	if date == "" {
		date = uc.now().UTC().Format(time.DateOnly)
	}
	sale := &entity.Sale{
		Base:          entity.Base{UserID: userID},
		ClientID:      in.ClientID,
		ClientName:    validation.Sanitize(in.ClientName),
		Date:          date,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         total,
		PaymentMethod: validation.Sanitize(in.PaymentMethod),
		Status:        status,
		Notes:         validation.Sanitize(in.Notes),
		QuotationID:   in.QuotationID,
	}

	b := uc.batches.NewBatch()
	for _, id := range order {
		uc.products.StageIncrement(b, id, fieldStock, -requested[id])
	}
	created, err := uc.sales.StageCreate(b, sale)
	if err != nil {
		return nil, err
	}
	if err := b.Commit(ctx); err != nil {
		var guard *repository.GuardError
		if errors.As(err, &guard) {
			name := guard.ID
			if p, ok := products[guard.ID]; ok {
				name = p.Name
			}
			return nil, domain.NewInsufficientStockError(name, guard.Current, requested[guard.ID])
		}
		return nil, err
	}

	uc.notifier.SaleRecorded(ctx, userID, created.ClientID)
	return created, nil
}

// List lista las ventas del usuario con filtros opcionales por cliente y estado.
func (uc *SaleUseCase) List(ctx context.Context, userID string, f dto.SaleFilter) ([]*entity.Sale, error) {
	filter := repository.Filter{}
	if f.ClientID != "" {
		filter["clientId"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return uc.sales.FindAll(ctx, filter, userID)
}

// GetByID obtiene una venta; domain.ErrNotFound si no existe o es de otro usuario.
func (uc *SaleUseCase) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	return usecase.FindOwned(ctx, uc.sales, "Sale", id, userID)
}

// Update modifica los campos editables (date, paymentMethod, status, notes).
// Líneas y montos no cambian: el stock ya se descontó con ellos.
func (uc *SaleUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSaleRequest) (*entity.Sale, error) {
	if _, err := usecase.FindOwned(ctx, uc.sales, "Sale", id, userID); err != nil {
		return nil, err
	}
	patch := repository.Patch{}
	if in.PaymentMethod != nil {
		pm := validation.Sanitize(*in.PaymentMethod)
		if err := validation.Required(pm, "Payment method"); err != nil {
			return nil, err
		}
		patch["paymentMethod"] = pm
	}
	if in.Status != nil {
		st := validation.Sanitize(*in.Status)
		if err := validation.Required(st, "Status"); err != nil {
			return nil, err
		}
		patch["status"] = st
	}
	if in.Date != nil {
		patch["date"] = validation.Sanitize(*in.Date)
	}
	if in.Notes != nil {
		patch["notes"] = validation.Sanitize(*in.Notes)
	}
	return uc.sales.Update(ctx, id, patch)
}

// Delete elimina la venta y restituye en el mismo batch las cantidades vendidas.
// Los productos que ya no existen se omiten.
func (uc *SaleUseCase) Delete(ctx context.Context, userID, id string) error {
	sale, err := usecase.FindOwned(ctx, uc.sales, "Sale", id, userID)
	if err != nil {
		return err
	}
	restore, order := aggregate(sale.Items)
	b := uc.batches.NewBatch()
	for _, pid := range order {
		ok, err := uc.products.Exists(ctx, pid)
		if err != nil {
			return err
		}
		if !ok {
			uc.log.Warn().Str("sale_id", id).Str("product_id", pid).Msg("producto eliminado: no se restituye stock")
			continue
		}
		uc.products.StageIncrement(b, pid, fieldStock, restore[pid])
	}
	uc.sales.StageDelete(b, id)
	return b.Commit(ctx)
}

// Stats cuenta las ventas del usuario con fecha dentro de [startDate, endDate] (ambos opcionales,
// comparación lexicográfica) y calcula ingresos y promedio.
// Si el store sabe agregar (RangeSummer) el cálculo se hace en la base.
func (uc *SaleUseCase) Stats(ctx context.Context, userID, startDate, endDate string) (*dto.SalesStatsResponse, error) {
	stats := &dto.SalesStatsResponse{TotalRevenue: decimal.Zero, AverageSale: decimal.Zero}
	if uc.summer != nil {
		n, revenue, err := uc.summer.SumRange(ctx, collectionSales, userID, "total", "date", startDate, endDate)
		if err != nil {
			return nil, err
		}
		stats.TotalSales, stats.TotalRevenue = n, revenue
		if n > 0 {
			stats.AverageSale = revenue.Div(decimal.NewFromInt(int64(n)))
		}
		return stats, nil
	}

	list, err := uc.sales.FindAll(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		if startDate != "" && s.Date < startDate {
			continue
		}
		if endDate != "" && s.Date > endDate {
			continue
		}
		stats.TotalSales++
		stats.TotalRevenue = stats.TotalRevenue.Add(s.Total)
	}
	if stats.TotalSales > 0 {
		stats.AverageSale = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalSales)))
	}
	return stats, nil
}

// loadProducts lee en paralelo los productos; cualquiera ausente o ajeno es domain.ErrNotFound.
func (uc *SaleUseCase) loadProducts(ctx context.Context, userID string, ids []string) (map[string]*entity.Product, error) {
	var mu sync.Mutex
	out := make(map[string]*entity.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for _, id := range ids {
		g.Go(func() error {
			p, err := usecase.FindOwned(gctx, uc.products, "Product", id, userID)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// aggregate suma cantidades por producto, conservando el orden de primera aparición.
func aggregate(items []entity.LineItem) (map[string]int64, []string) {
	qty := make(map[string]int64, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := qty[it.ProductID]; !ok {
			order = append(order, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}
	return qty, order
}
