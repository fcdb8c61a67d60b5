package usecase

import (
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/pkg/validation"
	"github.com/shopspring/decimal"
)

// ValidateLineItems exige al menos una línea, quantity > 0 y unitPrice >= 0.
// Devuelve una copia saneada; si una línea no trae total se calcula quantity * unitPrice.
func ValidateLineItems(items []entity.LineItem, owner string) ([]entity.LineItem, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("%s must have at least one item", owner)
	}
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		if err := validation.Positive(it.Quantity, "Item quantity"); err != nil {
			return nil, err
		}
		if err := validation.NonNegative(it.UnitPrice, "Item unit price"); err != nil {
			return nil, err
		}
		it.ProductID = validation.Sanitize(it.ProductID)
		it.ProductName = validation.Sanitize(it.ProductName)
		it.SKU = validation.Upper(it.SKU)
		it.Unit = validation.Sanitize(it.Unit)
		if it.Total.IsZero() {
			it.Total = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		}
		out[i] = it
	}
	return out, nil
}
