package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func TestCreateAlbum_Success(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Glaze Works")

	resp := ts.api.Post("/api/v1/shops/"+shop.ID+"/albums", map[string]any{
		"name":  "Summer Picks",
		"theme": "summer",
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.Album]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "summer-picks", envelope.Data.Slug)
	assert.Equal(t, shop.ID, envelope.Data.ShopID)
	assert.Empty(t, envelope.Data.Items)
}

func TestAlbumLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Glaze Works")

	mug := ts.createTestProductHTTP(t, token, shop.ID, "Speckled Mug")
	bowl := ts.createTestProductHTTP(t, token, shop.ID, "Ramen Bowl")
	vase := ts.createTestProductHTTP(t, token, shop.ID, "Bud Vase")

	resp := ts.api.Post("/api/v1/shops/"+shop.ID+"/albums", map[string]any{
		"name": "Summer Picks",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var created testEnvelope[domain.Album]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	albumID := created.Data.ID

	// Append three products
	resp = ts.api.Post("/api/v1/albums/"+albumID+"/products", map[string]any{
		"product_ids": []string{mug.ID, bowl.ID, vase.ID},
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated testEnvelope[domain.Album]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Len(t, updated.Data.Items, 3)
	for i, item := range updated.Data.Items {
		assert.Equal(t, i, item.Position)
	}

	// Move the vase to the front; the rest keep their relative order
	resp = ts.api.Put("/api/v1/albums/"+albumID+"/order", map[string]any{
		"product_ids": []string{vase.ID},
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Len(t, updated.Data.Items, 3)
	assert.Equal(t, vase.ID, updated.Data.Items[0].ProductID)
	assert.Equal(t, mug.ID, updated.Data.Items[1].ProductID)
	assert.Equal(t, bowl.ID, updated.Data.Items[2].ProductID)

	// Remove the middle product and the gap closes
	resp = ts.api.Delete("/api/v1/albums/"+albumID+"/products/"+mug.ID,
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Len(t, updated.Data.Items, 2)
	assert.Equal(t, vase.ID, updated.Data.Items[0].ProductID)
	assert.Equal(t, 0, updated.Data.Items[0].Position)
	assert.Equal(t, bowl.ID, updated.Data.Items[1].ProductID)
	assert.Equal(t, 1, updated.Data.Items[1].Position)

	// Expanded detail follows the curated order
	resp = ts.api.Get("/api/v1/shops/" + shop.ID + "/albums/summer-picks")
	require.Equal(t, http.StatusOK, resp.Code)

	var detail testEnvelope[service.AlbumDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	require.Len(t, detail.Data.Items, 2)
	assert.Equal(t, "Bud Vase", detail.Data.Items[0].Product.Name)
	assert.Equal(t, "Ramen Bowl", detail.Data.Items[1].Product.Name)
}

func TestAddAlbumProducts_RejectsForeignProducts(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	otherToken, _ := ts.registerTestUser(t, "weaver")

	shop := ts.createTestShopHTTP(t, token, "Glaze Works")
	otherShop := ts.createTestShopHTTP(t, otherToken, "Loom Room")

	mug := ts.createTestProductHTTP(t, token, shop.ID, "Speckled Mug")
	scarf := ts.createTestProductHTTP(t, otherToken, otherShop.ID, "Wool Scarf")

	resp := ts.api.Post("/api/v1/shops/"+shop.ID+"/albums", map[string]any{
		"name": "Mixed Bag",
	}, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var created testEnvelope[domain.Album]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	// One foreign product poisons the whole batch
	resp = ts.api.Post("/api/v1/albums/"+created.Data.ID+"/products", map[string]any{
		"product_ids": []string{mug.ID, scarf.ID},
	}, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.NotNil(t, envelope.Details)

	// Nothing was added
	resp = ts.api.Get("/api/v1/shops/" + shop.ID + "/albums/mixed-bag")
	require.Equal(t, http.StatusOK, resp.Code)

	var detail testEnvelope[service.AlbumDetail]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.Empty(t, detail.Data.Items)
}

func TestAlbumMutations_OwnerOnly(t *testing.T) {
	ts := setupTestServer(t)
	ownerToken, _ := ts.registerTestUser(t, "potter")
	strangerToken, _ := ts.registerTestUser(t, "stranger")
	shop := ts.createTestShopHTTP(t, ownerToken, "Glaze Works")

	resp := ts.api.Post("/api/v1/shops/"+shop.ID+"/albums", map[string]any{
		"name": "Summer Picks",
	}, "Authorization: Bearer "+ownerToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var created testEnvelope[domain.Album]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = ts.api.Patch("/api/v1/albums/"+created.Data.ID, map[string]any{
		"name": "Hijacked",
	}, "Authorization: Bearer "+strangerToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/albums/"+created.Data.ID,
		"Authorization: Bearer "+strangerToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestListAlbums_PublicOnly(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Glaze Works")

	for _, album := range []map[string]any{
		{"name": "Summer Picks"},
		{"name": "Studio Seconds", "visibility": "private"},
	} {
		resp := ts.api.Post("/api/v1/shops/"+shop.ID+"/albums", album,
			"Authorization: Bearer "+token)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/albums?shop_id=" + shop.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListAlbumsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Albums, 1)
	assert.Equal(t, "Summer Picks", envelope.Data.Albums[0].Name)
}
