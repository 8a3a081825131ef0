package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

func newShopService(t *testing.T) (*ShopService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewShopService(st, slog.New(slog.DiscardHandler)), st
}

func TestShopService_CreateShop(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.store, "user-1", "alice", domain.RoleUser)

	shop, err := svc.CreateShop(ctx, owner, CreateShopRequest{
		Name:        "Alice's Atelier",
		Description: "Handmade things",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", shop.OwnerID)
	assert.Equal(t, "alice-s-atelier", shop.Slug)
	assert.Empty(t, shop.ProductIDs)
}

func TestShopService_CreateShop_SecondShopConflictsWithExistingID(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.store, "user-1", "alice", domain.RoleUser)

	first, err := svc.CreateShop(ctx, owner, CreateShopRequest{Name: "First Shop"})
	require.NoError(t, err)

	_, err = svc.CreateShop(ctx, owner, CreateShopRequest{Name: "Second Shop"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeConflict, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, first.ID, details["shop_id"])
}

func TestShopService_CreateShop_SanitizesJunkLinks(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.store, "user-1", "alice", domain.RoleUser)

	shop, err := svc.CreateShop(ctx, owner, CreateShopRequest{
		Name:      "Linky",
		AvatarURL: "javascript:alert(1)",
		ImageURLs: []string{"https://cdn.example.com/a.jpg", "not a url"},
		Contact:   domain.ShopContact{Facebook: "ftp://weird"},
	})
	require.NoError(t, err)
	assert.Empty(t, shop.AvatarURL)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, shop.ImageURLs)
	assert.Empty(t, shop.Contact.Facebook)
}

func TestShopService_UpdateShop_OwnershipGate(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.store, "user-1", "alice", domain.RoleUser)
	stranger := createTestUser(t, svc.store, "user-2", "bob", domain.RoleUser)
	admin := createTestUser(t, svc.store, "user-3", "root", domain.RoleAdmin)

	shop, err := svc.CreateShop(ctx, owner, CreateShopRequest{Name: "Guarded"})
	require.NoError(t, err)

	newName := "Renamed"
	_, err = svc.UpdateShop(ctx, stranger, shop.ID, UpdateShopRequest{Name: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Data unchanged after the forbidden attempt
	got, err := svc.store.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guarded", got.Name)

	// Admins pass the gate
	updated, err := svc.UpdateShop(ctx, admin, shop.ID, UpdateShopRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "renamed", updated.Slug)
}

func TestShopService_GetMyShop_NoneYet(t *testing.T) {
	svc, _ := newShopService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.store, "user-1", "alice", domain.RoleUser)

	_, err := svc.GetMyShop(ctx, user)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestShopService_DeleteShop_Cascades(t *testing.T) {
	svc, st := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)

	shop, err := svc.CreateShop(ctx, owner, CreateShopRequest{Name: "Doomed"})
	require.NoError(t, err)

	product := createTestProduct(t, st, "prod-1", shop.ID, "Mug")

	album := &domain.Album{
		ID:     "album-1",
		ShopID: shop.ID,
		Name:   "Albumette",
		Slug:   "albumette",
		Items:  []domain.AlbumItem{{ProductID: product.ID, Position: 0}},
	}
	require.NoError(t, st.CreateAlbum(ctx, album))

	post := &domain.Post{
		ID:       "post-1",
		AuthorID: owner.ID,
		ShopID:   shop.ID,
		Title:    "About my shop",
		Slug:     "about-my-shop",
		Content:  "words",
	}
	require.NoError(t, st.CreatePost(ctx, post))

	require.NoError(t, svc.DeleteShop(ctx, owner, shop.ID))

	_, err = st.GetShop(ctx, shop.ID)
	assert.ErrorIs(t, err, store.ErrShopNotFound)

	_, err = st.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	_, err = st.GetAlbum(ctx, album.ID)
	assert.ErrorIs(t, err, store.ErrAlbumNotFound)

	// The post survives with its tag cleared
	gotPost, err := st.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, gotPost.ShopID)
}

func TestShopService_ListShops_FilterAndPaginate(t *testing.T) {
	svc, st := newShopService(t)
	ctx := context.Background()

	for i, name := range []string{"Candle Corner", "Mug Market", "Candle Cave"} {
		owner := createTestUser(t, st, "user-"+string(rune('a'+i)), "user"+string(rune('a'+i)), domain.RoleUser)
		_, err := svc.CreateShop(ctx, owner, CreateShopRequest{Name: name})
		require.NoError(t, err)
	}

	result, err := svc.ListShops(ctx, ListShopsParams{Query: "candle"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.False(t, result.HasMore)

	result, err = svc.ListShops(ctx, ListShopsParams{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Items, 1)
	assert.True(t, result.HasMore)
}

func TestShopService_GetShop_ExpandsOwnerAndProducts(t *testing.T) {
	svc, st := newShopService(t)
	ctx := context.Background()
	owner := createTestUser(t, st, "user-1", "alice", domain.RoleUser)

	shop, err := svc.CreateShop(ctx, owner, CreateShopRequest{Name: "Expanded"})
	require.NoError(t, err)
	createTestProduct(t, st, "prod-1", shop.ID, "Mug")

	detail, err := svc.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "alice", detail.Owner.Username)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "prod-1", detail.Products[0].ID)

	_, err = svc.GetShop(ctx, "shop-missing")
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}
