package rediskv

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	return client
}

func TestKVStore_GetInexistente(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	store := NewKVStore(client)

	client.Del(ctx, "kvtest:missing")
	got, err := store.Get(ctx, "kvtest:missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKVStore_ListByPrefix(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	store := NewKVStore(client)

	client.Del(ctx, "kvtest:a:1", "kvtest:a:2", "kvtest:ab:1", "kvtest:a*:1")
	require.NoError(t, store.Set(ctx, "kvtest:a:1", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "kvtest:a:2", []byte(`2`)))
	require.NoError(t, store.Set(ctx, "kvtest:ab:1", []byte(`3`)))
	require.NoError(t, store.Set(ctx, "kvtest:a*:1", []byte(`4`)))

	values, err := store.ListByPrefix(ctx, "kvtest:a:")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte(`1`), []byte(`2`)}, values)

	values, err = store.ListByPrefix(ctx, "kvtest:a*:")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte(`4`)}, values, "el * del prefijo es literal")
}

func TestKVStore_DeleteIdempotente(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	store := NewKVStore(client)

	require.NoError(t, store.Set(ctx, "kvtest:del", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "kvtest:del"))
	require.NoError(t, store.Delete(ctx, "kvtest:del"))
}
