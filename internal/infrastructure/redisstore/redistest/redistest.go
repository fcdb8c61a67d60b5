// Package redistest levanta un Redis en memoria (miniredis) para tests que usan el document store.
package redistest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/veon-api/internal/infrastructure/redisstore"
	"github.com/redis/go-redis/v9"
)

// NewStore devuelve un store sobre un miniredis que se cierra al terminar el test.
func NewStore(t testing.TB) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, "test"), mr
}
