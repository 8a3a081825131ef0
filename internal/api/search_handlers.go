package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search",
		Description: "Federated full-text search across shops, products, albums, and posts",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild search index",
		Description: "Drops and reindexes the whole search index. Admin only.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRebuildSearchIndex)
}

// === DTOs ===

// SearchInput contains the search query parameters.
type SearchInput struct {
	Query      string   `query:"q" required:"true" doc:"Search query"`
	Types      []string `query:"type" doc:"Document types to include (shop, product, album, post)"`
	ShopID     string   `query:"shop_id" doc:"Scope results to a single shop"`
	CategoryID string   `query:"category_id" doc:"Filter by category"`
	MinPrice   int64    `query:"min_price" doc:"Minimum price in cents (products only)"`
	MaxPrice   int64    `query:"max_price" doc:"Maximum price in cents (products only)"`
	Limit      int      `query:"limit" doc:"Maximum hits to return"`
	Offset     int      `query:"offset" doc:"Hits to skip"`
	SortBy     string   `query:"sort" doc:"Sort order: relevance, name, recent, price"`
	SortOrder  string   `query:"order" doc:"asc or desc"`
	Facets     bool     `query:"facets" doc:"Include facet counts"`
	Highlight  bool     `query:"highlight" doc:"Include match highlighting"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

// RebuildSearchResponse reports the outcome of a rebuild.
type RebuildSearchResponse struct {
	Message   string `json:"message" doc:"Status message"`
	Documents uint64 `json:"documents" doc:"Documents in the rebuilt index"`
}

// RebuildSearchOutput wraps the rebuild response for Huma.
type RebuildSearchOutput struct {
	Body RebuildSearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Types = input.Types
	params.ShopID = input.ShopID
	params.CategoryID = input.CategoryID
	params.MinPriceCents = input.MinPrice
	params.MaxPriceCents = input.MaxPrice
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}
	params.IncludeFacets = input.Facets
	params.Highlight = input.Highlight

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: result}, nil
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, input *AuthHeaderInput) (*RebuildSearchOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Search.RebuildIndex(ctx); err != nil {
		return nil, err
	}

	count, err := s.services.Search.DocumentCount()
	if err != nil {
		return nil, err
	}

	return &RebuildSearchOutput{Body: RebuildSearchResponse{
		Message:   "Search index rebuilt",
		Documents: count,
	}}, nil
}
