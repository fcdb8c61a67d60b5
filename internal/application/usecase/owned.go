package usecase

import (
	"context"

	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/pkg/validation"
)

// FindOwned carga el documento id y lo trata como inexistente si pertenece a otro usuario.
func FindOwned[T any, P interface {
	*T
	entity.Document
}](ctx context.Context, store repository.EntityStore[T], resource, id, userID string) (*T, error) {
	doc, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || !P(doc).Meta().OwnedBy(userID) {
		return nil, domain.NewNotFoundError(resource, id)
	}
	return doc, nil
}

// requireSet rechaza un campo obligatorio que llega en la actualización vacío o en blanco.
func requireSet(v *string, field string) error {
	if v == nil {
		return nil
	}
	return validation.Required(validation.Sanitize(*v), field)
}

// setString agrega el campo al patch si v no es nil, aplicando clean al valor.
func setString(p repository.Patch, field string, v *string, clean func(string) string) {
	if v == nil {
		return
	}
	p[field] = clean(*v)
}
