package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/repository"
	"github.com/jhoicas/veon-api/internal/infrastructure/postgres"
	"github.com/jhoicas/veon-api/pkg/config"
)

// newStore levanta PostgreSQL en un contenedor, aplica el esquema y devuelve el store.
// Se omite con -short o si no hay Docker disponible.
func newStore(t *testing.T) *postgres.DocumentStore {
	t.Helper()
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("veon_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, pool))
	// idempotente
	require.NoError(t, postgres.Migrate(ctx, pool))

	store := postgres.NewDocumentStore(pool)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDocumentStore_PutGetQuery(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "products", "p1", []byte(`{"id":"p1","userId":"u1","sku":"A","stock":3}`)))
	require.NoError(t, store.Put(ctx, "products", "p2", []byte(`{"id":"p2","userId":"u2","sku":"A","stock":1}`)))

	raw, err := store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","userId":"u1","sku":"A","stock":3}`, string(raw))

	missing, err := store.Get(ctx, "products", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := store.Query(ctx, "products", map[string]any{"sku": "A", "userId": "u1"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := store.Count(ctx, "products", map[string]any{"sku": "A"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	deleted, err := store.Delete(ctx, "products", "p2")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = store.Delete(ctx, "products", "p2")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDocumentStore_BatchGuardRevierteTodo(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "products", "p1", []byte(`{"id":"p1","stock":5}`)))
	require.NoError(t, store.Put(ctx, "products", "p2", []byte(`{"id":"p2","stock":1}`)))

	b := store.NewBatch()
	b.Increment("products", "p1", "stock", -2, time.Now())
	b.Increment("products", "p2", "stock", -3, time.Now())
	b.Put("sales", "s1", []byte(`{"id":"s1"}`))
	err := b.Commit(ctx)

	var guard *repository.GuardError
	require.True(t, errors.As(err, &guard), "%v", err)
	assert.Equal(t, "p2", guard.ID)
	assert.Equal(t, int64(1), guard.Current)

	raw, err := store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","stock":5}`, string(raw))
	sale, err := store.Get(ctx, "sales", "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)
}

func TestDocumentStore_BatchAplica(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "products", "p1", []byte(`{"id":"p1","stock":5}`)))

	b := store.NewBatch()
	b.Increment("products", "p1", "stock", -5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	b.Put("sales", "s1", []byte(`{"id":"s1","userId":"u1"}`))
	require.NoError(t, b.Commit(ctx))

	raw, err := store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","stock":0,"updatedAt":"2024-03-01T00:00:00Z"}`, string(raw))

	b = store.NewBatch()
	b.Increment("products", "nope", "stock", 1, time.Now())
	assert.ErrorIs(t, b.Commit(ctx), domain.ErrNotFound)
}

func TestDocumentStore_BatchDeleteInexistenteRevierte(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "products", "p1", []byte(`{"id":"p1","stock":1}`)))

	b := store.NewBatch()
	b.Increment("products", "p1", "stock", 4, time.Now())
	b.Delete("sales", "s1")
	assert.ErrorIs(t, b.Commit(ctx), domain.ErrNotFound)

	raw, err := store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","stock":1}`, string(raw))
}

func TestDocumentStore_SumRange(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "sales", "s1", []byte(`{"id":"s1","userId":"u1","date":"2024-01-10","total":"100.50"}`)))
	require.NoError(t, store.Put(ctx, "sales", "s2", []byte(`{"id":"s2","userId":"u1","date":"2024-02-10","total":"49.50"}`)))
	require.NoError(t, store.Put(ctx, "sales", "s3", []byte(`{"id":"s3","userId":"u2","date":"2024-02-10","total":"999"}`)))

	n, total, err := store.SumRange(ctx, "sales", "u1", "total", "date", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, total.Equal(decimal.NewFromInt(150)), total.String())

	n, total, err = store.SumRange(ctx, "sales", "u1", "total", "date", "2024-02-01", "2024-02-10")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, total.Equal(decimal.RequireFromString("49.50")), total.String())

	n, total, err = store.SumRange(ctx, "sales", "nadie", "total", "date", "", "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, total.IsZero())
}
