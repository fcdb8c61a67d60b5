package entity

import "time"

// Base campos comunes a todos los documentos persistidos.
// ID y CreatedAt se asignan una sola vez (al crear); UpdatedAt se refresca en cada actualización.
type Base struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"` // dueño del documento (multi-tenant)
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta devuelve los campos base; lo usa el repositorio genérico.
func (b *Base) Meta() *Base { return b }

// OwnedBy indica si el documento pertenece al usuario. Documentos sin dueño son visibles para todos.
func (b *Base) OwnedBy(userID string) bool {
	return b.UserID == "" || userID == "" || b.UserID == userID
}

// Document es el contrato mínimo de una entidad persistible en el document store.
type Document interface {
	Meta() *Base
}
