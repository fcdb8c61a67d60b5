package entity

import "github.com/shopspring/decimal"

// Product representa un producto del inventario.
// Invariantes: SalePrice >= Cost y Stock >= 0.
type Product struct {
	Base
	Name              string          `json:"name"`
	SKU               string          `json:"sku"` // en mayúsculas; único por usuario (no lo garantiza el store)
	ShortDescription  string          `json:"shortDescription,omitempty"`
	ProviderID        string          `json:"providerId,omitempty"`
	ProviderName      string          `json:"providerName,omitempty"`
	Unit              string          `json:"unit,omitempty"`
	UnitOfMeasurement string          `json:"unitOfMeasurement,omitempty"`
	Cost              decimal.Decimal `json:"cost"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	Stock             int64           `json:"stock"`
	ImagePath         string          `json:"imagePath,omitempty"`
}

// StockOperation tipo de ajuste de stock.
type StockOperation string

const (
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
	StockSet      StockOperation = "set"
)
