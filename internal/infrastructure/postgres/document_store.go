package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore document store sobre una tabla JSONB (documents) en PostgreSQL.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore construye el adaptador con el pool.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

const upsertDocument = `
	INSERT INTO documents (collection, id, user_id, data, created_at, updated_at)
	VALUES ($1, $2, $3, $4::jsonb, now(), now())
	ON CONFLICT (collection, id) DO UPDATE
	SET data = EXCLUDED.data, user_id = EXCLUDED.user_id, updated_at = now()`

// incrementField suma $4 al campo entero $3 y estampa updatedAt. La fila queda bloqueada hasta el
// Commit, así que ventas concurrentes del mismo producto se serializan y ven el stock ya descontado.
const incrementField = `
	UPDATE documents
	SET data = jsonb_set(
			jsonb_set(data, ARRAY[$3::text], to_jsonb(COALESCE((data->>$3::text)::bigint, 0) + $4::bigint)),
			'{updatedAt}', to_jsonb($5::text)),
		updated_at = now()
	WHERE collection = $1 AND id = $2
	RETURNING (data->>$3::text)::bigint`

// Get obtiene un documento; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return data, nil
}

// Put crea o reemplaza un documento.
func (s *DocumentStore) Put(ctx context.Context, collection, id string, doc []byte) error {
	if _, err := s.pool.Exec(ctx, upsertDocument, collection, id, userIDOf(doc), string(doc)); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Delete devuelve false si no había documento.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Query filtra con contención JSONB (data @> where), equivalente a igualdad en valores escalares.
func (s *DocumentStore) Query(ctx context.Context, collection string, where map[string]any) ([][]byte, error) {
	query := `SELECT data FROM documents WHERE collection = $1 ORDER BY created_at, id`
	args := []any{collection}
	if len(where) > 0 {
		filter, err := json.Marshal(where)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		query = `SELECT data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY created_at, id`
		args = append(args, string(filter))
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()
	var list [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, data)
	}
	return list, rows.Err()
}

// Count cuenta documentos con el mismo filtro que Query.
func (s *DocumentStore) Count(ctx context.Context, collection string, where map[string]any) (int, error) {
	query := `SELECT count(*) FROM documents WHERE collection = $1`
	args := []any{collection}
	if len(where) > 0 {
		filter, err := json.Marshal(where)
		if err != nil {
			return 0, fmt.Errorf("encode filter: %w", err)
		}
		query += ` AND data @> $2::jsonb`
		args = append(args, string(filter))
	}
	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// sumRange suma un campo numérico de los documentos del usuario cuyo campo de rango (string ISO)
// cae en [from, to]. Bordes vacíos no filtran; COLLATE "C" compara byte a byte.
const sumRange = `
	SELECT count(*), COALESCE(sum((data->>$3::text)::numeric), 0)
	FROM documents
	WHERE collection = $1
	  AND ($2::text = '' OR user_id = $2::text)
	  AND ($5::text = '' OR (data->>$4::text) COLLATE "C" >= $5::text)
	  AND ($6::text = '' OR (data->>$4::text) COLLATE "C" <= $6::text)`

// SumRange cuenta los documentos y suma sumField en la base, sin traerlos a memoria.
func (s *DocumentStore) SumRange(ctx context.Context, collection, userID, sumField, rangeField, from, to string) (int, decimal.Decimal, error) {
	var (
		n     int
		total decimal.Decimal
	)
	err := s.pool.QueryRow(ctx, sumRange, collection, userID, sumField, rangeField, from, to).Scan(&n, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sum %s.%s: %w", collection, sumField, err)
	}
	return n, total, nil
}

// NewBatch crea un batch que se aplica en una sola transacción.
func (s *DocumentStore) NewBatch() repository.Batch {
	return &batch{pool: s.pool}
}

// Close cierra el pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}

type batch struct {
	pool *pgxpool.Pool
	ops  []func(ctx context.Context, q Querier) error
}

func (b *batch) Put(collection, id string, doc []byte) {
	b.ops = append(b.ops, func(ctx context.Context, q Querier) error {
		if _, err := q.Exec(ctx, upsertDocument, collection, id, userIDOf(doc), string(doc)); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
		}
		return nil
	})
}

// Delete falla con domain.ErrNotFound si el documento ya no existe al aplicar el batch,
// así dos eliminaciones simultáneas no aplican dos veces lo que las acompaña.
func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, func(ctx context.Context, q Querier) error {
		cmd, err := q.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
		if err != nil {
			return fmt.Errorf("delete %s/%s: %w", collection, id, err)
		}
		if cmd.RowsAffected() != 1 {
			return domain.NewNotFoundError(collection, id)
		}
		return nil
	})
}

func (b *batch) Increment(collection, id, field string, delta int64, at time.Time) {
	b.ops = append(b.ops, func(ctx context.Context, q Querier) error {
		var next int64
		err := q.QueryRow(ctx, incrementField, collection, id, field, delta, at.UTC().Format(time.RFC3339Nano)).Scan(&next)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError(collection, id)
			}
			return fmt.Errorf("increment %s/%s.%s: %w", collection, id, field, err)
		}
		if next < 0 {
			return &repository.GuardError{Collection: collection, ID: id, Field: field, Current: next - delta, Delta: delta}
		}
		return nil
	})
}

// Commit inicia una transacción, aplica las operaciones en orden y hace Commit o Rollback.
func (b *batch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, apply := range b.ops {
		if err := apply(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
