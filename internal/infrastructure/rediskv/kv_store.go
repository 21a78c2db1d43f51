package rediskv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-kv/internal/domain/repository"
	"github.com/jhoicas/inventario-kv/pkg/config"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const scanCount = 200

// globEscaper escapa los metacaracteres del patrón MATCH de SCAN.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// KVStore implementación del puerto KeyValueStore sobre Redis (strings JSON por clave).
type KVStore struct {
	client *redis.Client
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewKVStore construye el adaptador.
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

// Get obtiene el valor de una clave; nil, nil si no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get: %w", err)
	}
	return b, nil
}

// Set guarda el valor sin expiración.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

// Delete elimina la clave; DEL sobre una clave inexistente no es error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// ListByPrefix recorre el keyspace con SCAN MATCH "prefix*" y lee los valores con MGET.
// Las claves borradas entre el SCAN y el MGET se omiten.
func (s *KVStore) ListByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	pattern := globEscaper.Replace(prefix) + "*"
	seen := make(map[string]struct{})
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kv scan: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += scanCount {
		end := start + scanCount
		if end > len(keys) {
			end = len(keys)
		}
		vals, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, fmt.Errorf("kv mget: %w", err)
		}
		for _, v := range vals {
			if str, ok := v.(string); ok {
				out = append(out, []byte(str))
			}
		}
	}
	return out, nil
}
