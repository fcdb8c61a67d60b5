package entity

import "github.com/shopspring/decimal"

// SaleStatusCompleted estado por defecto de una venta.
const SaleStatusCompleted = "completed"

// Sale venta registrada. Crearla descuenta stock de los productos; eliminarla lo restituye.
type Sale struct {
	Base
	ClientID      string          `json:"clientId"`
	ClientName    string          `json:"clientName"`
	Date          string          `json:"date"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	QuotationID   string          `json:"quotationId,omitempty"`
}

// Totals calcula subtotal (si no se informa, suma de líneas) y total = subtotal + tax - discount.
func Totals(items []LineItem, subtotal *decimal.Decimal, tax, discount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	sub := SumTotals(items)
	if subtotal != nil && !subtotal.IsZero() {
		sub = *subtotal
	}
	return sub, sub.Add(tax).Sub(discount)
}
