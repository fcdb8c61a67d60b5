package usecase

import (
	"context"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/validation"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso de productos. Invariantes: SalePrice >= Cost y Stock >= 0.
type ProductUseCase struct {
	products repository.EntityStore[entity.Product]
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.EntityStore[entity.Product]) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create valida y crea el producto. SKU en mayúsculas; stock por defecto 0.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := validation.Required(in.Name, "Product name"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.SKU, "SKU"); err != nil {
		return nil, err
	}
	if in.Cost == nil {
		return nil, domain.NewValidationError("Cost is required")
	}
	if in.SalePrice == nil {
		return nil, domain.NewValidationError("Sale price is required")
	}
	if err := checkPrices(*in.Cost, *in.SalePrice); err != nil {
		return nil, err
	}
	var stock int64
	if in.Stock != nil {
		stock = *in.Stock
	}
	if err := validation.NonNegativeInt(stock, "Stock"); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Base:              entity.Base{UserID: userID},
		Name:              validation.Sanitize(in.Name),
		SKU:               validation.Upper(in.SKU),
		ShortDescription:  validation.Sanitize(in.ShortDescription),
		ProviderID:        in.ProviderID,
		ProviderName:      validation.Sanitize(in.ProviderName),
		Unit:              validation.Sanitize(in.Unit),
		UnitOfMeasurement: validation.Sanitize(in.UnitOfMeasurement),
		Cost:              *in.Cost,
		SalePrice:         *in.SalePrice,
		Stock:             stock,
		ImagePath:         validation.Sanitize(in.ImagePath),
	}
	return uc.products.Create(ctx, product)
}

// List lista los productos del usuario, opcionalmente de un proveedor.
func (uc *ProductUseCase) List(ctx context.Context, userID, providerID string) ([]*entity.Product, error) {
	var filter repository.Filter
	if providerID != "" {
		filter = repository.Filter{"providerId": providerID}
	}
	return uc.products.FindAll(ctx, filter, userID)
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe o es de otro usuario.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	return FindOwned(ctx, uc.products, "Product", id, userID)
}

// GetBySKU busca por SKU sin distinguir mayúsculas. Devuelve (nil, nil) si no hay coincidencia.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, userID, sku string) (*entity.Product, error) {
	sku = validation.Upper(sku)
	if sku == "" {
		return nil, nil
	}
	list, err := uc.products.FindAll(ctx, repository.Filter{"sku": sku}, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Update aplica una actualización parcial. El chequeo de precios usa la vista fusionada
// (valor nuevo o, si no viene, el almacenado).
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	current, err := FindOwned(ctx, uc.products, "Product", id, userID)
	if err != nil {
		return nil, err
	}
	cost, price := current.Cost, current.SalePrice
	if in.Cost != nil {
		cost = *in.Cost
	}
	if in.SalePrice != nil {
		price = *in.SalePrice
	}
	if err := checkPrices(cost, price); err != nil {
		return nil, err
	}
	patch := repository.Patch{}
	if in.Cost != nil {
		patch["cost"] = *in.Cost
	}
	if in.SalePrice != nil {
		patch["salePrice"] = *in.SalePrice
	}
	if in.Stock != nil {
		if err := validation.NonNegativeInt(*in.Stock, "Stock"); err != nil {
			return nil, err
		}
		patch["stock"] = *in.Stock
	}
	if in.Name != nil {
		if err := validation.Required(validation.Sanitize(*in.Name), "Product name"); err != nil {
			return nil, err
		}
	}
	if in.SKU != nil {
		if err := validation.Required(validation.Sanitize(*in.SKU), "SKU"); err != nil {
			return nil, err
		}
	}
	setString(patch, "name", in.Name, validation.Sanitize)
	setString(patch, "sku", in.SKU, validation.Upper)
	setString(patch, "shortDescription", in.ShortDescription, validation.Sanitize)
	setString(patch, "providerId", in.ProviderID, validation.Sanitize)
	setString(patch, "providerName", in.ProviderName, validation.Sanitize)
	setString(patch, "unit", in.Unit, validation.Sanitize)
	setString(patch, "unitOfMeasurement", in.UnitOfMeasurement, validation.Sanitize)
	setString(patch, "imagePath", in.ImagePath, validation.Sanitize)
	return uc.products.Update(ctx, id, patch)
}

// UpdateStock ajusta el stock: add suma, subtract resta sin bajar de 0, set reemplaza.
// Operación vacía equivale a set.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, userID, id string, quantity int64, op entity.StockOperation) (*entity.Product, error) {
	if err := validation.NonNegativeInt(quantity, "Quantity"); err != nil {
		return nil, err
	}
	if op == "" {
		op = entity.StockSet
	}
	current, err := FindOwned(ctx, uc.products, "Product", id, userID)
	if err != nil {
		return nil, err
	}
	var next int64
	switch op {
	case entity.StockAdd:
		next = current.Stock + quantity
	case entity.StockSubtract:
		next = max(current.Stock-quantity, 0)
	case entity.StockSet:
		next = quantity
	default:
		return nil, domain.NewValidationError("Invalid stock operation: %s", op)
	}
	if err := validation.NonNegativeInt(next, "Stock"); err != nil {
		return nil, err
	}
	return uc.products.Update(ctx, id, repository.Patch{"stock": next})
}

// Delete elimina el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := FindOwned(ctx, uc.products, "Product", id, userID); err != nil {
		return err
	}
	return uc.products.Delete(ctx, id)
}

func checkPrices(cost, salePrice decimal.Decimal) error {
	if err := validation.NonNegative(cost, "Cost"); err != nil {
		return err
	}
	if err := validation.NonNegative(salePrice, "Sale price"); err != nil {
		return err
	}
	if salePrice.LessThan(cost) {
		return domain.NewValidationError("Sale price must be greater than or equal to cost")
	}
	return nil
}
