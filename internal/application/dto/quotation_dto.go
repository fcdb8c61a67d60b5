package dto

import (
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateQuotationRequest entrada para crear una cotización.
// Subtotal nil o cero: se calcula como la suma de los totales de las líneas.
type CreateQuotationRequest struct {
	ClientID   string            `json:"clientId"`
	ClientName string            `json:"clientName"`
	Date       string            `json:"date"`
	ValidUntil string            `json:"validUntil"`
	Items      []entity.LineItem `json:"items"`
	Subtotal   *decimal.Decimal  `json:"subtotal"`
	Tax        decimal.Decimal   `json:"tax"`
	Discount   decimal.Decimal   `json:"discount"`
	Notes      string            `json:"notes"`
	Terms      string            `json:"terms"`
}

// UpdateQuotationRequest actualización parcial. El estado se cambia con UpdateQuotationStatusRequest.
type UpdateQuotationRequest struct {
	ClientID   *string           `json:"clientId"`
	ClientName *string           `json:"clientName"`
	Date       *string           `json:"date"`
	ValidUntil *string           `json:"validUntil"`
	Items      []entity.LineItem `json:"items"`
	Subtotal   *decimal.Decimal  `json:"subtotal"`
	Tax        *decimal.Decimal  `json:"tax"`
	Discount   *decimal.Decimal  `json:"discount"`
	Notes      *string           `json:"notes"`
	Terms      *string           `json:"terms"`
}

// UpdateQuotationStatusRequest cambio de estado.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ConvertQuotationRequest marca la cotización como convertida en la venta SaleID.
type ConvertQuotationRequest struct {
	SaleID string `json:"saleId" validate:"required"`
}

// QuotationFilter filtros de listado.
type QuotationFilter struct {
	ClientID string `query:"clientId"`
	Status   string `query:"status"`
}
