package repository

import "context"

// KeyValueStore puerto del almacenamiento clave-valor externo (opaco).
// Los valores son documentos JSON; Get devuelve nil, nil si la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ListByPrefix devuelve todos los valores cuyas claves empiezan por prefix, sin paginar.
	ListByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
