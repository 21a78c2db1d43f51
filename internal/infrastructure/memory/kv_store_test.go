package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got, "última escritura gana")

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Equal(t, 0, s.Len())
}

func TestKVStore_ListByPrefix_OrdenYAislamiento(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()
	require.NoError(t, s.Set(ctx, "products:b:2", []byte("b2")))
	require.NoError(t, s.Set(ctx, "products:a:2", []byte("a2")))
	require.NoError(t, s.Set(ctx, "products:a:1", []byte("a1")))
	require.NoError(t, s.Set(ctx, "products:ab:1", []byte("ab1")))

	values, err := s.ListByPrefix(ctx, "products:a:")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a1"), []byte("a2")}, values)

	values, err = s.ListByPrefix(ctx, "products:z:")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestKVStore_GetDevuelveCopia(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()
	require.NoError(t, s.Set(ctx, "k", []byte("abc")))
	got, _ := s.Get(ctx, "k")
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}
