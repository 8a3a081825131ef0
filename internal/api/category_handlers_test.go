package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

func TestCreateCategory_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	userToken, _ := ts.registerTestUser(t, "alice")
	adminToken, _ := ts.registerTestAdmin(t, "root")

	resp := ts.api.Post("/api/v1/categories/product", map[string]any{
		"name": "Ceramics",
	}, "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/categories/product", map[string]any{
		"name": "Ceramics",
	}, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.Category]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "ceramics", envelope.Data.Slug)
	assert.Equal(t, domain.CategoryKindProduct, envelope.Data.Kind)
}

func TestListCategories_SortedByName(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "root")

	for _, name := range []string{"Woodwork", "Ceramics", "Textiles"} {
		resp := ts.api.Post("/api/v1/categories/product", map[string]any{
			"name": name,
		}, "Authorization: Bearer "+adminToken)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	// A post category must not leak into the product listing
	resp := ts.api.Post("/api/v1/categories/post", map[string]any{
		"name": "Studio Diary",
	}, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/categories/product")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListCategoriesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Categories, 3)
	assert.Equal(t, "Ceramics", envelope.Data.Categories[0].Name)
	assert.Equal(t, "Textiles", envelope.Data.Categories[1].Name)
	assert.Equal(t, "Woodwork", envelope.Data.Categories[2].Name)
}

func TestCategoryKind_Validated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/categories/gadget")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
