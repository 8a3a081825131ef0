package store

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEntityCreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shop := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Name: "My Shop", Slug: "my-shop"}
	require.NoError(t, s.Shops.Create(ctx, shop.ID, shop))

	got, err := s.Shops.Get(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "My Shop", got.Name)
	assert.Equal(t, "user-1", got.OwnerID)
}

func TestEntityCreateDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shop := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Slug: "a"}
	require.NoError(t, s.Shops.Create(ctx, shop.ID, shop))

	dup := &domain.Shop{ID: "shop-1", OwnerID: "user-2", Slug: "b"}
	err := s.Shops.Create(ctx, dup.ID, dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestEntityIndexConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Slug: "craft-corner"}
	require.NoError(t, s.Shops.Create(ctx, first.ID, first))

	// Same slug, different ID.
	second := &domain.Shop{ID: "shop-2", OwnerID: "user-2", Slug: "craft-corner"}
	err := s.Shops.Create(ctx, second.ID, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var conflict *IndexConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "slug", conflict.Index)
	assert.Equal(t, "craft-corner", conflict.Value)
}

func TestEntityGetByIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shop := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Slug: "craft-corner"}
	require.NoError(t, s.Shops.Create(ctx, shop.ID, shop))

	got, err := s.Shops.GetByIndex(ctx, "slug", "craft-corner")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got.ID)

	_, err = s.Shops.GetByIndex(ctx, "slug", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntityUpdateMovesIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shop := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Slug: "old-slug"}
	require.NoError(t, s.Shops.Create(ctx, shop.ID, shop))

	shop.Slug = "new-slug"
	require.NoError(t, s.Shops.Update(ctx, shop.ID, shop))

	_, err := s.Shops.GetByIndex(ctx, "slug", "old-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Shops.GetByIndex(ctx, "slug", "new-slug")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got.ID)
}

func TestEntityDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	shop := &domain.Shop{ID: "shop-1", OwnerID: "user-1", Slug: "a"}
	require.NoError(t, s.Shops.Create(ctx, shop.ID, shop))

	require.NoError(t, s.Shops.Delete(ctx, "shop-1"))
	require.NoError(t, s.Shops.Delete(ctx, "shop-1"))

	_, err := s.Shops.Get(ctx, "shop-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Index is freed for reuse.
	again := &domain.Shop{ID: "shop-2", OwnerID: "user-1", Slug: "a"}
	assert.NoError(t, s.Shops.Create(ctx, again.ID, again))
}

func TestEntityListByLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		{ID: "prod-1", ShopID: "shop-1", Slug: "mug"},
		{ID: "prod-2", ShopID: "shop-1", Slug: "plate"},
		{ID: "prod-3", ShopID: "shop-2", Slug: "mug"},
	} {
		require.NoError(t, s.Products.Create(ctx, p.ID, p))
	}

	var ids []string
	for p, err := range s.Products.ListByLookup(ctx, "shop", "shop-1") {
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"prod-1", "prod-2"}, ids)
}

func TestEntityListSkipsIndexKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		{ID: "prod-1", ShopID: "shop-1", Slug: "mug"},
		{ID: "prod-2", ShopID: "shop-1", Slug: "plate"},
	} {
		require.NoError(t, s.Products.Create(ctx, p.ID, p))
	}

	count := 0
	for p, err := range s.Products.List(ctx) {
		require.NoError(t, err)
		require.NotNil(t, p)
		count++
	}
	assert.Equal(t, 2, count)
}
