package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Stock nil equivale a 0.
type CreateProductRequest struct {
	Name              string           `json:"name"`
	SKU               string           `json:"sku"`
	ShortDescription  string           `json:"shortDescription"`
	ProviderID        string           `json:"providerId"`
	ProviderName      string           `json:"providerName"`
	Unit              string           `json:"unit"`
	UnitOfMeasurement string           `json:"unitOfMeasurement"`
	Cost              *decimal.Decimal `json:"cost"`
	SalePrice         *decimal.Decimal `json:"salePrice"`
	Stock             *int64           `json:"stock"`
	ImagePath         string           `json:"imagePath"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	SKU               *string          `json:"sku"`
	ShortDescription  *string          `json:"shortDescription"`
	ProviderID        *string          `json:"providerId"`
	ProviderName      *string          `json:"providerName"`
	Unit              *string          `json:"unit"`
	UnitOfMeasurement *string          `json:"unitOfMeasurement"`
	Cost              *decimal.Decimal `json:"cost"`
	SalePrice         *decimal.Decimal `json:"salePrice"`
	Stock             *int64           `json:"stock"`
	ImagePath         *string          `json:"imagePath"`
}

// UpdateStockRequest ajuste de stock. Operation: add | subtract | set (por defecto set).
type UpdateStockRequest struct {
	Quantity  *int64 `json:"quantity" validate:"required"`
	Operation string `json:"operation"`
}
