package usecase

import (
	"context"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/validation"
)

// ProviderUseCase casos de uso de proveedores.
type ProviderUseCase struct {
	providers repository.EntityStore[entity.Provider]
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(providers repository.EntityStore[entity.Provider]) *ProviderUseCase {
	return &ProviderUseCase{providers: providers}
}

// Create valida y crea el proveedor. El email es opcional.
func (uc *ProviderUseCase) Create(ctx context.Context, userID string, in dto.CreateProviderRequest) (*entity.Provider, error) {
	if err := validation.Required(in.Name, "Provider name"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.PhoneNumber, "Phone number"); err != nil {
		return nil, err
	}
	if in.Email != "" {
		if err := validation.CheckEmail(in.Email); err != nil {
			return nil, err
		}
	}
	if err := validation.CheckPhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	provider := &entity.Provider{
		Base:          entity.Base{UserID: userID},
		Name:          validation.Sanitize(in.Name),
		ContactPerson: validation.Sanitize(in.ContactPerson),
		PhoneNumber:   validation.Sanitize(in.PhoneNumber),
		Email:         validation.Lower(in.Email),
		Address:       validation.Sanitize(in.Address),
		Website:       validation.Sanitize(in.Website),
		Notes:         validation.Sanitize(in.Notes),
	}
	return uc.providers.Create(ctx, provider)
}

// List lista los proveedores del usuario.
func (uc *ProviderUseCase) List(ctx context.Context, userID string) ([]*entity.Provider, error) {
	return uc.providers.FindAll(ctx, nil, userID)
}

// GetByID obtiene un proveedor; domain.ErrNotFound si no existe o es de otro usuario.
func (uc *ProviderUseCase) GetByID(ctx context.Context, userID, id string) (*entity.Provider, error) {
	return FindOwned(ctx, uc.providers, "Provider", id, userID)
}

// Update aplica una actualización parcial.
func (uc *ProviderUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProviderRequest) (*entity.Provider, error) {
	if _, err := FindOwned(ctx, uc.providers, "Provider", id, userID); err != nil {
		return nil, err
	}
	if err := requireSet(in.Name, "Provider name"); err != nil {
		return nil, err
	}
	if err := requireSet(in.PhoneNumber, "Phone number"); err != nil {
		return nil, err
	}
	// email es opcional: vacío lo borra.
	if in.Email != nil && *in.Email != "" {
		if err := validation.CheckEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.PhoneNumber != nil {
		if err := validation.CheckPhone(*in.PhoneNumber); err != nil {
			return nil, err
		}
	}
	patch := repository.Patch{}
	setString(patch, "name", in.Name, validation.Sanitize)
	setString(patch, "contactPerson", in.ContactPerson, validation.Sanitize)
	setString(patch, "phoneNumber", in.PhoneNumber, validation.Sanitize)
	setString(patch, "email", in.Email, validation.Lower)
	setString(patch, "address", in.Address, validation.Sanitize)
	setString(patch, "website", in.Website, validation.Sanitize)
	setString(patch, "notes", in.Notes, validation.Sanitize)
	return uc.providers.Update(ctx, id, patch)
}

// Delete elimina el proveedor.
func (uc *ProviderUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := FindOwned(ctx, uc.providers, "Provider", id, userID); err != nil {
		return err
	}
	return uc.providers.Delete(ctx, id)
}
