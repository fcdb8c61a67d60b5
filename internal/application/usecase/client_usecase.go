package usecase

import (
	"context"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/validation"
)

// ClientUseCase casos de uso de clientes. SalesCount lo mantiene el flujo de ventas.
type ClientUseCase struct {
	clients repository.EntityStore[entity.Client]
	batches repository.BatchFactory
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clients repository.EntityStore[entity.Client], batches repository.BatchFactory) *ClientUseCase {
	return &ClientUseCase{clients: clients, batches: batches}
}

// Create valida, sanea y crea el cliente con SalesCount = 0.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.CreateClientRequest) (*entity.Client, error) {
	if err := validation.Required(in.FullName, "Full name"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.Email, "Email"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.PhoneNumber, "Phone number"); err != nil {
		return nil, err
	}
	if err := validation.Required(in.Address, "Address"); err != nil {
		return nil, err
	}
	if err := validation.CheckEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.CheckPhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	client := &entity.Client{
		Base:        entity.Base{UserID: userID},
		FullName:    validation.Sanitize(in.FullName),
		CompanyName: validation.Sanitize(in.CompanyName),
		PhoneNumber: validation.Sanitize(in.PhoneNumber),
		Email:       validation.Lower(in.Email),
		Address:     validation.Sanitize(in.Address),
		ImagePath:   validation.Sanitize(in.ImagePath),
		SalesCount:  0,
	}
	return uc.clients.Create(ctx, client)
}

// List lista los clientes del usuario.
func (uc *ClientUseCase) List(ctx context.Context, userID string) ([]*entity.Client, error) {
	return uc.clients.FindAll(ctx, nil, userID)
}

// GetByID obtiene un cliente; domain.ErrNotFound si no existe o es de otro usuario.
func (uc *ClientUseCase) GetByID(ctx context.Context, userID, id string) (*entity.Client, error) {
	return FindOwned(ctx, uc.clients, "Client", id, userID)
}

// Update aplica una actualización parcial; valida formato solo en los campos presentes.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateClientRequest) (*entity.Client, error) {
	if _, err := FindOwned(ctx, uc.clients, "Client", id, userID); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		v    *string
		name string
	}{
		{in.FullName, "Full name"},
		{in.Email, "Email"},
		{in.PhoneNumber, "Phone number"},
		{in.Address, "Address"},
	} {
		if err := requireSet(f.v, f.name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
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
	setString(patch, "fullName", in.FullName, validation.Sanitize)
	setString(patch, "companyName", in.CompanyName, validation.Sanitize)
	setString(patch, "phoneNumber", in.PhoneNumber, validation.Sanitize)
	setString(patch, "email", in.Email, validation.Lower)
	setString(patch, "address", in.Address, validation.Sanitize)
	setString(patch, "imagePath", in.ImagePath, validation.Sanitize)
	return uc.clients.Update(ctx, id, patch)
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := FindOwned(ctx, uc.clients, "Client", id, userID); err != nil {
		return err
	}
	return uc.clients.Delete(ctx, id)
}

// IncrementSalesCount suma 1 a SalesCount con un incremento atómico en el store.
// domain.ErrNotFound si el cliente no existe o es de otro usuario.
func (uc *ClientUseCase) IncrementSalesCount(ctx context.Context, userID, clientID string) error {
	if _, err := FindOwned(ctx, uc.clients, "Client", clientID, userID); err != nil {
		return err
	}
	b := uc.batches.NewBatch()
	uc.clients.StageIncrement(b, clientID, "salesCount", 1)
	return b.Commit(ctx)
}
