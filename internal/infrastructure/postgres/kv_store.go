package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore implementación del puerto KeyValueStore sobre una tabla (key TEXT PK, value JSONB),
// el mismo esquema que usa la tabla kv_store de Supabase.
type KVStore struct {
	q     Querier
	table string // identificador ya saneado
}

// NewKVStore construye el adaptador sobre la tabla indicada (pool o tx).
func NewKVStore(q Querier, table string) *KVStore {
	if table == "" {
		table = "kv_store"
	}
	return &KVStore{q: q, table: pgx.Identifier{table}.Sanitize()}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT NOT NULL PRIMARY KEY, value JSONB NOT NULL)`, s.table)
	if _, err := s.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get obtiene el valor de una clave; nil, nil si no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.q.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table), key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get: %w", err)
	}
	return value, nil
}

// Set inserta o reemplaza el valor (última escritura gana).
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table)
	if _, err := s.q.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

// Delete elimina la clave; no falla si no existe.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table), key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// ListByPrefix devuelve todos los valores con el prefijo dado, ordenados por clave.
func (s *KVStore) ListByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key LIKE $1 ESCAPE '\' ORDER BY key`, s.table)
	rows, err := s.q.Query(ctx, query, prefixPattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	defer rows.Close()
	var out [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("kv scan: %w", err)
		}
		out = append(out, value)
	}
	return out, rows.Err()
}
