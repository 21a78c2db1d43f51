package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore store clave-valor en memoria para desarrollo y tests. Seguro para uso concurrente.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVStore construye un store vacío.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor; nil, nil si no existe.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

// Set guarda una copia del valor.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = clone(value)
	return nil
}

// Delete elimina la clave si existe.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// ListByPrefix devuelve los valores con el prefijo, ordenados por clave.
func (s *KVStore) ListByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0)
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, clone(s.data[k]))
	}
	return out, nil
}

// Len número de claves (tests).
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
