package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/pkg/config"
)

func TestPrefixPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `products:u1:%`, prefixPattern("products:u1:"))
	assert.Equal(t, `products:a\_b\%:%`, prefixPattern("products:a_b%:"))
	assert.Equal(t, `x\\y%`, prefixPattern(`x\y`))
}

// testDSN base de datos de pruebas. Nunca DATABASE_URL: los tests truncan la tabla.
func testDSN() string {
	return os.Getenv("TEST_DATABASE_URL")
}

func TestTestDSN_IgnoraDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@prod:5432/inventario")
	t.Setenv("TEST_DATABASE_URL", "")
	assert.Empty(t, testDSN())

	t.Setenv("TEST_DATABASE_URL", "postgres://test@localhost:5432/inventario_test")
	assert.Equal(t, "postgres://test@localhost:5432/inventario_test", testDSN())
}

// newTestStore conecta a TEST_DATABASE_URL o salta el test si no hay PostgreSQL.
func newTestStore(t *testing.T) *KVStore {
	t.Helper()
	dsn := testDSN()
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	if err != nil {
		t.Skipf("PostgreSQL no disponible: %v", err)
	}
	t.Cleanup(pool.Close)

	store := NewKVStore(pool, "kv_store_test")
	require.NoError(t, store.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE kv_store_test`)
	require.NoError(t, err)
	return store
}

func TestKVStore_CRUDYPrefijo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "products:a:1", []byte(`{"id":"1"}`)))
	require.NoError(t, store.Set(ctx, "products:a:2", []byte(`{"id":"2"}`)))
	require.NoError(t, store.Set(ctx, "products:ab:3", []byte(`{"id":"3"}`)))

	got, err := store.Get(ctx, "products:a:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	values, err := store.ListByPrefix(ctx, "products:a:")
	require.NoError(t, err)
	assert.Len(t, values, 2, "products:ab: no debe entrar en el prefijo products:a:")

	require.NoError(t, store.Delete(ctx, "products:a:1"))
	require.NoError(t, store.Delete(ctx, "products:a:1"), "borrar dos veces no falla")
	got, err = store.Get(ctx, "products:a:1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
