package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; permite usar el mismo código dentro y fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// userIDOf extrae el dueño del documento para la columna user_id (índice por tenant).
func userIDOf(doc []byte) *string {
	var meta struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(doc, &meta); err != nil || meta.UserID == "" {
		return nil
	}
	return &meta.UserID
}
