package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/search"
)

func TestSearch_FindsIndexedProduct(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Glaze Works")
	mug := ts.createTestProductHTTP(t, token, shop.ID, "Speckled Mug")

	resp := ts.api.Get("/api/v1/search?q=speckled")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.Hits)
	assert.Equal(t, mug.ID, envelope.Data.Hits[0].ID)
	assert.Equal(t, "Speckled Mug", envelope.Data.Hits[0].Name)
}

func TestSearch_TypeAndShopFilters(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Mug Central")
	ts.createTestProductHTTP(t, token, shop.ID, "Travel Mug")

	// Both the shop and the product match "mug"
	resp := ts.api.Get("/api/v1/search?q=mug")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.GreaterOrEqual(t, envelope.Data.Total, uint64(2))

	// Restricting to products drops the shop hit
	resp = ts.api.Get("/api/v1/search?q=mug&type=product")
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	for _, hit := range envelope.Data.Hits {
		assert.Equal(t, search.DocTypeProduct, hit.Type)
	}
}

func TestSearch_DeletedProductDisappears(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	shop := ts.createTestShopHTTP(t, token, "Glaze Works")
	mug := ts.createTestProductHTTP(t, token, shop.ID, "Speckled Mug")

	resp := ts.api.Delete("/api/v1/products/"+mug.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?q=speckled&type=product")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Hits)
}

func TestRebuildSearchIndex_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	userToken, _ := ts.registerTestUser(t, "alice")
	adminToken, _ := ts.registerTestAdmin(t, "root")
	ts.createTestShopHTTP(t, userToken, "Glaze Works")

	resp := ts.api.Post("/api/v1/search/rebuild", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/search/rebuild", "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RebuildSearchResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, uint64(1), envelope.Data.Documents)
}
