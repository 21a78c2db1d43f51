package kv

import (
	"context"

	"github.com/jhoicas/inventario-kv/internal/domain/repository"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

var _ repository.KeyValueStore = (*InstrumentedStore)(nil)

// InstrumentedStore decora un KeyValueStore registrando la duración de cada operación.
type InstrumentedStore struct {
	next repository.KeyValueStore
	m    *metrics.Metrics
}

// Instrument envuelve el store; con m nil devuelve el store sin decorar.
func Instrument(next repository.KeyValueStore, m *metrics.Metrics) repository.KeyValueStore {
	if m == nil {
		return next
	}
	return &InstrumentedStore{next: next, m: m}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	done := s.m.TrackKV("get")
	b, err := s.next.Get(ctx, key)
	done(err)
	return b, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	done := s.m.TrackKV("set")
	err := s.next.Set(ctx, key, value)
	done(err)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	done := s.m.TrackKV("delete")
	err := s.next.Delete(ctx, key)
	done(err)
	return err
}

func (s *InstrumentedStore) ListByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	done := s.m.TrackKV("list_by_prefix")
	values, err := s.next.ListByPrefix(ctx, prefix)
	done(err)
	return values, err
}
