package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/jhoicas/veon-api/pkg/validation"
)

// QuotationRenderer genera la representación en PDF de una cotización.
type QuotationRenderer interface {
	RenderQuotation(ctx context.Context, q *entity.Quotation) ([]byte, error)
}

// QuotationUseCase casos de uso de cotizaciones.
type QuotationUseCase struct {
	quotations repository.EntityStore[entity.Quotation]
	renderer   QuotationRenderer
	log        *logger.Logger
}

// NewQuotationUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewQuotationUseCase(quotations repository.EntityStore[entity.Quotation], renderer QuotationRenderer, log *logger.Logger) *QuotationUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &QuotationUseCase{quotations: quotations, renderer: renderer, log: log}
}

// Create valida y crea la cotización en estado pending.
// Subtotal por defecto: suma de las líneas. Total = subtotal + tax - discount.
func (uc *QuotationUseCase) Create(ctx context.Context, userID string, in dto.CreateQuotationRequest) (*entity.Quotation, error) {
	if err := validation.Required(in.ClientID, "Client ID"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.ClientName, "Client name"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.Date, "Date"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.ValidUntil, "Valid until"); err != nil {
		return nil, err
	}
	items, err := ValidateLineItems(in.Items, "Quotation")
	if err != nil {
		return nil, err
	}
	subtotal, total := entity.Totals(items, in.Subtotal, in.Tax, in.Discount)
	q := &entity.Quotation{
		Base:       entity.Base{UserID: userID},
		ClientID:   in.ClientID,
		ClientName: validation.Sanitize(in.ClientName),
		Date:       in.Date,
		ValidUntil: in.ValidUntil,
		Items:      items,
		Subtotal:   subtotal,
		Tax:        in.Tax,
		Discount:   in.Discount,
		Total:      total,
		Status:     entity.QuotationPending,
		Notes:      validation.Sanitize(in.Notes),
		Terms:      validation.Sanitize(in.Terms),
	}
	return uc.quotations.Create(ctx, q)
}

// List lista cotizaciones del usuario con filtros opcionales por cliente y estado.
func (uc *QuotationUseCase) List(ctx context.Context, userID string, f dto.QuotationFilter) ([]*entity.Quotation, error) {
	filter := repository.Filter{}
	if f.ClientID != "" {
		filter["clientId"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return uc.quotations.FindAll(ctx, filter, userID)
}

// GetByID obtiene una cotización; domain.ErrNotFound si no existe o es de otro usuario.
func (uc *QuotationUseCase) GetByID(ctx context.Context, userID, id string) (*entity.Quotation, error) {
	return FindOwned(ctx, uc.quotations, "Quotation", id, userID)
}

// Update aplica una actualización parcial. Si cambia algún monto o las líneas, recalcula el total.
func (uc *QuotationUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateQuotationRequest) (*entity.Quotation, error) {
	current, err := FindOwned(ctx, uc.quotations, "Quotation", id, userID)
	if err != nil {
		return nil, err
	}
	patch := repository.Patch{}
	items := current.Items
	if in.Items != nil {
		if items, err = ValidateLineItems(in.Items, "Quotation"); err != nil {
			return nil, err
		}
		patch["items"] = items
	}
	if in.Items != nil || in.Subtotal != nil || in.Tax != nil || in.Discount != nil {
		tax, discount := current.Tax, current.Discount
		if in.Tax != nil {
			tax = *in.Tax
		}
		if in.Discount != nil {
			discount = *in.Discount
		}
		subtotal := in.Subtotal
		if subtotal == nil && in.Items == nil {
			subtotal = &current.Subtotal
		}
		sub, total := entity.Totals(items, subtotal, tax, discount)
		patch["subtotal"] = sub
		patch["tax"] = tax
		patch["discount"] = discount
		patch["total"] = total
	}
	if in.ClientID != nil {
		if err := validation.Required(*in.ClientID, "Client ID"); err != nil {
			return nil, err
		}
		patch["clientId"] = *in.ClientID
	}
	setString(patch, "clientName", in.ClientName, validation.Sanitize)
	setString(patch, "date", in.Date, validation.Sanitize)
	setString(patch, "validUntil", in.ValidUntil, validation.Sanitize)
	setString(patch, "notes", in.Notes, validation.Sanitize)
	setString(patch, "terms", in.Terms, validation.Sanitize)
	return uc.quotations.Update(ctx, id, patch)
}

// UpdateStatus cambia el estado; error de validación si no es uno de los estados reconocidos.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*entity.Quotation, error) {
	if !entity.IsValidQuotationStatus(status) {
		return nil, domain.NewValidationError("Invalid status: %s", status)
	}
	if _, err := FindOwned(ctx, uc.quotations, "Quotation", id, userID); err != nil {
		return nil, err
	}
	return uc.quotations.Update(ctx, id, repository.Patch{"status": status})
}

// MarkAsConverted marca la cotización como convertida en la venta saleID.
// No impide reconvertir; si ya apuntaba a otra venta queda registrado en el log.
func (uc *QuotationUseCase) MarkAsConverted(ctx context.Context, userID, id, saleID string) (*entity.Quotation, error) {
	if err := validation.Required(saleID, "Sale ID"); err != nil {
		return nil, err
	}
	current, err := FindOwned(ctx, uc.quotations, "Quotation", id, userID)
	if err != nil {
		return nil, err
	}
	if current.ConvertedToSaleID != "" && current.ConvertedToSaleID != saleID {
		uc.log.Warn().
			Str("quotation_id", id).
			Str("previous_sale_id", current.ConvertedToSaleID).
			Str("sale_id", saleID).
			Msg("cotización convertida nuevamente")
	}
	return uc.quotations.Update(ctx, id, repository.Patch{
		"status":            entity.QuotationConverted,
		"convertedToSaleId": saleID,
	})
}

// Delete elimina la cotización.
func (uc *QuotationUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := FindOwned(ctx, uc.quotations, "Quotation", id, userID); err != nil {
		return err
	}
	return uc.quotations.Delete(ctx, id)
}

// RenderPDF genera el PDF de la cotización y un nombre de archivo sugerido.
func (uc *QuotationUseCase) RenderPDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("quotation pdf: renderer no configurado")
	}
	q, err := FindOwned(ctx, uc.quotations, "Quotation", id, userID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderQuotation(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("quotation pdf: %w", err)
	}
	return pdf, fmt.Sprintf("cotizacion-%s.pdf", q.ID), nil
}
