// Package docstore implementa el repositorio genérico (EntityStore) sobre cualquier DocumentStore.
// Los documentos viajan como JSON; la fusión de updates es superficial y por campo.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/domain/repository"
)

// Campos que ninguna operación puede reescribir después de crear el documento.
const (
	fieldID        = "id"
	fieldUserID    = "userId"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// docPtr restringe T a entidades cuyo puntero expone los campos base.
type docPtr[T any] interface {
	*T
	entity.Document
}

// Collection repositorio de una colección. Usable con cualquier driver (postgres, redis).
type Collection[T any, P docPtr[T]] struct {
	store repository.DocumentStore
	name  string
	now   func() time.Time
	newID func() string
}

var _ repository.EntityStore[entity.Product] = (*Collection[entity.Product, *entity.Product])(nil)

// Option configura una Collection.
type Option func(*settings)

type settings struct {
	now   func() time.Time
	newID func() string
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New construye el repositorio de la colección name.
func New[T any, P docPtr[T]](store repository.DocumentStore, name string, opts ...Option) *Collection[T, P] {
	s := settings{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(&s)
	}
	return &Collection[T, P]{store: store, name: name, now: s.now, newID: s.newID}
}

// Collection nombre de la colección.
func (c *Collection[T, P]) Collection() string { return c.name }

// Create asigna ID, estampa createdAt == updatedAt y persiste. No modifica doc.
func (c *Collection[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	out, raw, err := c.prepare(doc)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, c.name, P(out).Meta().ID, raw); err != nil {
		return nil, fmt.Errorf("create %s: %w", c.name, err)
	}
	return out, nil
}

// FindByID devuelve (nil, nil) si el documento no existe.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	raw, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}
	if raw == nil {
		return nil, nil
	}
	return c.decode(raw)
}

// FindAll filtra por igualdad exacta y por userID (si no es vacío).
func (c *Collection[T, P]) FindAll(ctx context.Context, filter repository.Filter, userID string) ([]*T, error) {
	where, err := buildWhere(filter, userID)
	if err != nil {
		return nil, err
	}
	rows, err := c.store.Query(ctx, c.name, where)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	list := make([]*T, 0, len(rows))
	for _, raw := range rows {
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, doc)
	}
	return list, nil
}

// Update fusiona patch sobre el documento y refresca updatedAt.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch repository.Patch) (*T, error) {
	raw, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}
	if raw == nil {
		return nil, domain.NewNotFoundError(c.name, id)
	}
	merged, err := mergePatch(raw, patch, c.now())
	if err != nil {
		return nil, fmt.Errorf("merge %s/%s: %w", c.name, id, err)
	}
	if err := c.store.Put(ctx, c.name, id, merged); err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	}
	return c.decode(merged)
}

// Delete elimina el documento; domain.ErrNotFound si no existe.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	ok, err := c.store.Delete(ctx, c.name, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if !ok {
		return domain.NewNotFoundError(c.name, id)
	}
	return nil
}

// Exists indica si existe un documento con ese ID.
func (c *Collection[T, P]) Exists(ctx context.Context, id string) (bool, error) {
	raw, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", c.name, err)
	}
	return raw != nil, nil
}

// Count cuenta documentos con la misma semántica de filtro que FindAll.
func (c *Collection[T, P]) Count(ctx context.Context, filter repository.Filter, userID string) (int, error) {
	where, err := buildWhere(filter, userID)
	if err != nil {
		return 0, err
	}
	n, err := c.store.Count(ctx, c.name, where)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

// StageCreate prepara el documento (ID, timestamps) y lo agrega al batch. Se persiste en Commit.
func (c *Collection[T, P]) StageCreate(b repository.Batch, doc *T) (*T, error) {
	out, raw, err := c.prepare(doc)
	if err != nil {
		return nil, err
	}
	b.Put(c.name, P(out).Meta().ID, raw)
	return out, nil
}

// StageDelete agrega la eliminación al batch.
func (c *Collection[T, P]) StageDelete(b repository.Batch, id string) {
	b.Delete(c.name, id)
}

// StageIncrement agrega un incremento atómico (con guarda de no negativo) al batch.
func (c *Collection[T, P]) StageIncrement(b repository.Batch, id, field string, delta int64) {
	b.Increment(c.name, id, field, delta, c.now())
}

func (c *Collection[T, P]) prepare(doc *T) (*T, []byte, error) {
	out := new(T)
	*out = *doc
	meta := P(out).Meta()
	now := c.now().UTC()
	meta.ID = c.newID()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", c.name, err)
	}
	return out, raw, nil
}

func (c *Collection[T, P]) decode(raw []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return out, nil
}
