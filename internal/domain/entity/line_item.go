package entity

import "github.com/shopspring/decimal"

func init() {
	// Montos como números JSON (no strings), igual que los envían los clientes.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItem línea de una venta o cotización. Guarda una copia de nombre, SKU y precio
// del producto al momento de la operación; ediciones posteriores del producto no la alteran.
type LineItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// SumTotals suma el total de cada línea.
func SumTotals(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}
