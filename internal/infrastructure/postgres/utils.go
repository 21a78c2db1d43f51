package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier subconjunto de pgxpool.Pool / pgx.Tx que usan los adaptadores.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// likeEscaper escapa los comodines de LIKE para buscar un prefijo literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern devuelve el patrón LIKE "prefix%" con el prefijo escapado.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
