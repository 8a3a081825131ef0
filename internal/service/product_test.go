package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

func newProductService(t *testing.T) (*ProductService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewProductService(st, slog.New(slog.DiscardHandler)), st
}

func createTestCategory(t *testing.T, s *store.Store, id string, kind domain.CategoryKind, name string) *domain.Category {
	t.Helper()

	now := time.Now()
	c := &domain.Category{
		ID:        id,
		Kind:      kind,
		Name:      name,
		Slug:      id + "-slug",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func TestProductService_CreateProduct(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")

	product, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{
		Name:       "Ceramic Mug",
		PriceCents: 1800,
	})
	require.NoError(t, err)
	assert.Equal(t, "ceramic-mug", product.Slug)
	assert.Equal(t, "USD", product.Currency)

	// The shop's product list picks up the new listing
	gotShop, err := st.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{product.ID}, gotShop.ProductIDs)
}

func TestProductService_CreateProduct_SlugScopedToShop(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	u1 := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	u2 := createTestUser(t, st, "user-2", "bob", domain.RoleUser)
	s1 := createTestShop(t, st, "shop-1", u1.ID, "One")
	s2 := createTestShop(t, st, "shop-2", u2.ID, "Two")

	_, err := svc.CreateProduct(ctx, u1, s1.ID, CreateProductRequest{Name: "Mug"})
	require.NoError(t, err)

	// Same name in the same shop collides
	_, err = svc.CreateProduct(ctx, u1, s1.ID, CreateProductRequest{Name: "Mug"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	// Same name in a different shop is fine
	_, err = svc.CreateProduct(ctx, u2, s2.ID, CreateProductRequest{Name: "Mug"})
	require.NoError(t, err)
}

func TestProductService_CreateProduct_CategoryKindChecked(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")
	postCat := createTestCategory(t, st, "cat-1", domain.CategoryKindPost, "Essays")
	prodCat := createTestCategory(t, st, "cat-2", domain.CategoryKindProduct, "Ceramics")

	_, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{
		Name:       "Mug",
		CategoryID: postCat.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{
		Name:       "Mug",
		CategoryID: prodCat.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{
		Name:       "Bowl",
		CategoryID: "cat-missing",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProductService_CreateProduct_RejectsNegativePrice(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")

	_, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{
		Name:       "Mug",
		PriceCents: -1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestProductService_UpdateProduct_OwnershipAndSlug(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	stranger := createTestUser(t, st, "user-2", "bob", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")

	product, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{Name: "Old Mug"})
	require.NoError(t, err)

	newName := "New Mug"
	_, err = svc.UpdateProduct(ctx, stranger, product.ID, UpdateProductRequest{Name: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := svc.UpdateProduct(ctx, owner, product.ID, UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "new-mug", updated.Slug)
}

func TestProductService_DeleteProduct_DetachesEverywhere(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")

	product, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{Name: "Mug"})
	require.NoError(t, err)
	keeper, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{Name: "Vase"})
	require.NoError(t, err)

	album := &domain.Album{
		ID:     "album-1",
		ShopID: shop.ID,
		Name:   "Mixed",
		Slug:   "mixed",
		Items: []domain.AlbumItem{
			{ProductID: product.ID, Position: 0},
			{ProductID: keeper.ID, Position: 1},
		},
	}
	require.NoError(t, st.CreateAlbum(ctx, album))

	require.NoError(t, svc.DeleteProduct(ctx, owner, product.ID))

	_, err = st.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	gotShop, err := st.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keeper.ID}, gotShop.ProductIDs)

	// The album keeps the other item, renumbered densely
	gotAlbum, err := st.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, gotAlbum.Items, 1)
	assert.Equal(t, keeper.ID, gotAlbum.Items[0].ProductID)
	assert.Equal(t, 0, gotAlbum.Items[0].Position)
}

func TestProductService_ListProducts_FilterByCategory(t *testing.T) {
	svc, st := newProductService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)
	shop := createTestShop(t, st, "shop-1", owner.ID, "Atelier")
	cat := createTestCategory(t, st, "cat-1", domain.CategoryKindProduct, "Ceramics")

	_, err := svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{Name: "Mug", CategoryID: cat.ID})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, owner, shop.ID, CreateProductRequest{Name: "Scarf"})
	require.NoError(t, err)

	result, err := svc.ListProducts(ctx, ListProductsParams{ShopID: shop.ID, CategoryID: cat.ID})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Mug", result.Items[0].Name)

	result, err = svc.ListProducts(ctx, ListProductsParams{ShopID: shop.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}
