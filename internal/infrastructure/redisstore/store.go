// Package redisstore implementa repository.DocumentStore sobre Redis: cada colección es un hash
// <prefix>:<colección> con id -> documento JSON. Los batches usan WATCH/MULTI/EXEC.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/internal/infrastructure/docstore"
	"github.com/redis/go-redis/v9"
)

var _ repository.DocumentStore = (*Store)(nil)

// maxTxRetries reintentos de un batch cuando otra escritura toca las mismas colecciones.
const maxTxRetries = 10

// Store document store sobre un cliente Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New construye el store. prefix separa las claves de la app (ej. "veon").
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "veon"
	}
	return &Store{client: client, prefix: prefix}
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *Store) key(collection string) string {
	return s.prefix + ":" + collection
}

// Get devuelve (nil, nil) si no existe.
func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	b, err := s.client.HGet(ctx, s.key(collection), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Put crea o reemplaza el documento.
func (s *Store) Put(ctx context.Context, collection, id string, doc []byte) error {
	return s.client.HSet(ctx, s.key(collection), id, doc).Err()
}

// Delete devuelve false si el documento no existía.
func (s *Store) Delete(ctx context.Context, collection, id string) (bool, error) {
	n, err := s.client.HDel(ctx, s.key(collection), id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Query recorre la colección y filtra del lado del cliente.
func (s *Store) Query(ctx context.Context, collection string, where map[string]any) ([][]byte, error) {
	vals, err := s.client.HVals(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		raw := []byte(v)
		ok, err := docstore.MatchFields(raw, where)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// Count usa HLEN cuando no hay filtro.
func (s *Store) Count(ctx context.Context, collection string, where map[string]any) (int, error) {
	if len(where) == 0 {
		n, err := s.client.HLen(ctx, s.key(collection)).Result()
		return int(n), err
	}
	rows, err := s.Query(ctx, collection, where)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// NewBatch crea un batch vacío.
func (s *Store) NewBatch() repository.Batch {
	return &batch{store: s}
}

// Close cierra el cliente.
func (s *Store) Close() error {
	return s.client.Close()
}

type opKind int

const (
	opPut opKind = iota
	opDelete
	opIncrement
)

type op struct {
	kind       opKind
	collection string
	id         string
	doc        []byte
	field      string
	delta      int64
	at         time.Time
}

type batch struct {
	store *Store
	ops   []op
}

func (b *batch) Put(collection, id string, doc []byte) {
	b.ops = append(b.ops, op{kind: opPut, collection: collection, id: id, doc: doc})
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, op{kind: opDelete, collection: collection, id: id})
}

func (b *batch) Increment(collection, id, field string, delta int64, at time.Time) {
	b.ops = append(b.ops, op{kind: opIncrement, collection: collection, id: id, field: field, delta: delta, at: at})
}

// docState estado final de un documento tocado por el batch (doc == nil => eliminar).
type docState struct {
	collection string
	id         string
	doc        []byte
	loaded     bool
}

// load lee el documento vigilado la primera vez que el batch lo toca.
func (b *batch) load(ctx context.Context, tx *redis.Tx, st *docState) error {
	if st.loaded {
		return nil
	}
	raw, err := tx.HGet(ctx, b.store.key(st.collection), st.id).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	st.doc, st.loaded = raw, true
	return nil
}

// Commit vigila las colecciones tocadas, calcula el estado final y lo escribe en MULTI/EXEC.
// Si otra escritura modifica una colección vigilada se reintenta con datos frescos.
func (b *batch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	keys := make([]string, 0, len(b.ops))
	seen := make(map[string]bool)
	for _, o := range b.ops {
		k := b.store.key(o.collection)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	txf := func(tx *redis.Tx) error {
		states := make(map[string]*docState)
		order := make([]*docState, 0, len(b.ops))
		stateOf := func(collection, id string) *docState {
			k := collection + "\x00" + id
			st, ok := states[k]
			if !ok {
				st = &docState{collection: collection, id: id}
				states[k] = st
				order = append(order, st)
			}
			return st
		}

		for _, o := range b.ops {
			st := stateOf(o.collection, o.id)
			switch o.kind {
			case opPut:
				st.doc, st.loaded = o.doc, true
			case opDelete:
				if err := b.load(ctx, tx, st); err != nil {
					return err
				}
				if st.doc == nil {
					return domain.NewNotFoundError(o.collection, o.id)
				}
				st.doc = nil
			case opIncrement:
				if err := b.load(ctx, tx, st); err != nil {
					return err
				}
				if st.doc == nil {
					return domain.NewNotFoundError(o.collection, o.id)
				}
				next, err := docstore.IncrementField(o.collection, o.id, st.doc, o.field, o.delta, o.at)
				if err != nil {
					return err
				}
				st.doc = next
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, st := range order {
				if st.doc == nil {
					pipe.HDel(ctx, b.store.key(st.collection), st.id)
					continue
				}
				pipe.HSet(ctx, b.store.key(st.collection), st.id, st.doc)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := b.store.client.Watch(ctx, txf, keys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis batch: %d intentos sin éxito: %w", maxTxRetries, redis.TxFailedErr)
}
