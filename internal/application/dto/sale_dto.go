package dto

import (
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ClientID      string            `json:"clientId"`
	ClientName    string            `json:"clientName"`
	Date          string            `json:"date"`
	Items         []entity.LineItem `json:"items"`
	Subtotal      *decimal.Decimal  `json:"subtotal"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes"`
	QuotationID   string            `json:"quotationId"`
}

// UpdateSaleRequest campos editables de una venta; líneas y montos no cambian después de creada.
type UpdateSaleRequest struct {
	Date          *string `json:"date"`
	PaymentMethod *string `json:"paymentMethod"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

// SaleFilter filtros de listado.
type SaleFilter struct {
	ClientID string `query:"clientId"`
	Status   string `query:"status"`
}

// SalesStatsQuery rango de fechas opcional (inclusive).
type SalesStatsQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// SalesStatsResponse agregados de ventas.
type SalesStatsResponse struct {
	TotalSales   int             `json:"totalSales"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	AverageSale  decimal.Decimal `json:"averageSale"`
}
