package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/memory"
)

func newItem(owner, id string, qty, min int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: id, OwnerID: owner, Name: "Item " + id, Category: "Accesorios",
		Quantity: qty, MinStock: min, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestItemRepo_GuardaEnClaveDelOwner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	repo := kv.NewItemRepository(store)

	require.NoError(t, repo.Save(ctx, newItem("u1", "p1", 5, 2)))

	raw, err := store.Get(ctx, "products:u1:p1")
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Contains(t, string(raw), `"userId":"u1"`)
	assert.Contains(t, string(raw), `"minStock":2`)
	assert.NotContains(t, string(raw), "updatedAt", "updatedAt se omite hasta la primera actualización")
}

func TestItemRepo_AislamientoEntreOwners(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewItemRepository(memory.NewKVStore())
	require.NoError(t, repo.Save(ctx, newItem("a", "1", 1, 1)))
	require.NoError(t, repo.Save(ctx, newItem("a", "2", 1, 1)))
	require.NoError(t, repo.Save(ctx, newItem("b", "3", 1, 1)))

	listA, err := repo.ListByOwner(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, listA, 2)
	for _, it := range listA {
		assert.Equal(t, "a", it.OwnerID)
	}

	got, err := repo.GetByID(ctx, "a", "3")
	require.NoError(t, err)
	assert.Nil(t, got, "el producto de b no existe en el namespace de a")
}

func TestItemRepo_DescartaRegistroConOwnerAjeno(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	repo := kv.NewItemRepository(store)
	// Registro corrupto: vive bajo a pero dice pertenecer a b.
	require.NoError(t, store.Set(ctx, "products:a:x", []byte(`{"id":"x","name":"n","category":"c","quantity":1,"minStock":1,"userId":"b"}`)))

	list, err := repo.ListByOwner(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemRepo_IDInvalido(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewItemRepository(memory.NewKVStore())

	_, err := repo.GetByID(ctx, "a", "x:y")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, repo.Delete(ctx, "", "1"), domain.ErrInvalidInput)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewUserRepository(memory.NewKVStore())
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "Ana@Example.com", Name: "Ana"}))

	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := repo.FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ana", u.Name)
}
