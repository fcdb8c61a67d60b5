package repository

import (
	"context"
)

// Filter igualdad exacta por campo. Valores nil se ignoran; la clave "userId" también
// (el tenant se pasa explícitamente).
type Filter map[string]any

// Patch campos a fusionar (superficial, gana la última escritura).
type Patch map[string]any

// EntityStore repositorio genérico de una colección (DIP).
// FindByID devuelve (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type EntityStore[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context, filter Filter, userID string) ([]*T, error)
	Update(ctx context.Context, id string, patch Patch) (*T, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, filter Filter, userID string) (int, error)

	// Operaciones para componer un Batch atómico entre colecciones.
	Collection() string
	StageCreate(b Batch, doc *T) (*T, error)
	StageDelete(b Batch, id string)
	StageIncrement(b Batch, id, field string, delta int64)
}

// BatchFactory crea batches sobre el mismo store que usan los EntityStore.
type BatchFactory interface {
	NewBatch() Batch
}
