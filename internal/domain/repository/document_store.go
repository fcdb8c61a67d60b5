package repository

import (
	"context"
	"fmt"
	"time"
)

// DocumentStore puerto hacia la base documental: colecciones de documentos JSON indexados por ID.
// Get devuelve (nil, nil) si el documento no existe.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, doc []byte) error
	Delete(ctx context.Context, collection, id string) (bool, error)
	// Query devuelve los documentos cuyos campos coinciden exactamente con where (nil = todos).
	Query(ctx context.Context, collection string, where map[string]any) ([][]byte, error)
	Count(ctx context.Context, collection string, where map[string]any) (int, error)
	NewBatch() Batch
	Close() error
}

// Batch escritura atómica de varios documentos: Commit aplica todas las operaciones o ninguna.
type Batch interface {
	Put(collection, id string, doc []byte)
	// Delete exige que el documento exista al aplicar el batch; si no, Commit falla con
	// domain.ErrNotFound y no se aplica nada.
	Delete(collection, id string)
	// Increment suma delta al campo entero field y refresca updatedAt.
	// El resultado nunca puede ser negativo: si lo fuera, Commit falla con *GuardError.
	// Si el documento no existe, Commit falla con domain.ErrNotFound.
	Increment(collection, id, field string, delta int64, at time.Time)
	Commit(ctx context.Context) error
}

// GuardError indica que un Increment dejaría el campo en negativo; no se aplicó nada del batch.
type GuardError struct {
	Collection string
	ID         string
	Field      string
	Current    int64
	Delta      int64
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s/%s: %s=%d no admite %+d", e.Collection, e.ID, e.Field, e.Current, e.Delta)
}
