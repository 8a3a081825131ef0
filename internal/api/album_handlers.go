package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerAlbumRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createAlbum",
		Method:      http.MethodPost,
		Path:        "/api/v1/shops/{shopID}/albums",
		Summary:     "Create album",
		Description: "Creates a curated product album in a shop. Owner or admin only.",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums",
		Summary:     "List albums",
		Description: "Returns a page of public albums, optionally scoped to a shop",
		Tags:        []string{"Albums"},
	}, s.handleListAlbums)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAlbumBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops/{shopID}/albums/{slug}",
		Summary:     "Get album",
		Description: "Returns an album by its shop-scoped slug with expanded products",
		Tags:        []string{"Albums"},
	}, s.handleGetAlbumBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAlbum",
		Method:      http.MethodPatch,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Update album",
		Description: "Updates album metadata. Owner or admin only.",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAlbum",
		Method:      http.MethodDelete,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Delete album",
		Description: "Deletes an album. The referenced products are untouched.",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "addAlbumProducts",
		Method:      http.MethodPost,
		Path:        "/api/v1/albums/{id}/products",
		Summary:     "Add products to album",
		Description: "Appends products to an album. All products must belong to the album's shop.",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddAlbumProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeAlbumProduct",
		Method:      http.MethodDelete,
		Path:        "/api/v1/albums/{id}/products/{productID}",
		Summary:     "Remove product from album",
		Description: "Removes a product from an album, closing the position gap",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveAlbumProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderAlbum",
		Method:      http.MethodPut,
		Path:        "/api/v1/albums/{id}/order",
		Summary:     "Reorder album",
		Description: "Reorders album items. Mentioned products come first in the given order, the rest keep their relative order.",
		Tags:        []string{"Albums"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReorderAlbum)
}

// === DTOs ===

// CreateAlbumInput wraps the create album request for Huma.
type CreateAlbumInput struct {
	Authorization string `header:"Authorization"`
	ShopID        string `path:"shopID" doc:"Shop ID"`
	Body          service.CreateAlbumRequest
}

// AlbumOutput wraps a bare album for Huma.
type AlbumOutput struct {
	Body *domain.Album
}

// ListAlbumsInput contains parameters for listing albums.
type ListAlbumsInput struct {
	ShopID string `query:"shop_id" doc:"Scope to a single shop"`
	Query  string `query:"q" doc:"Case-insensitive name filter"`
	Page   int    `query:"page" doc:"Page number, 1-based"`
	Limit  int    `query:"limit" doc:"Page size"`
}

// ListAlbumsResponse contains a page of public albums.
type ListAlbumsResponse struct {
	Albums  []service.AlbumSummary `json:"albums" doc:"Albums on this page"`
	Total   int                    `json:"total" doc:"Total matching albums"`
	Page    int                    `json:"page" doc:"Current page"`
	Limit   int                    `json:"limit" doc:"Page size"`
	HasMore bool                   `json:"has_more" doc:"Whether more pages exist"`
}

// ListAlbumsOutput wraps the album list for Huma.
type ListAlbumsOutput struct {
	Body ListAlbumsResponse
}

// GetAlbumBySlugInput contains parameters for resolving an album.
type GetAlbumBySlugInput struct {
	ShopID string `path:"shopID" doc:"Shop ID"`
	Slug   string `path:"slug" doc:"Album slug"`
}

// AlbumDetailOutput wraps an expanded album for Huma.
type AlbumDetailOutput struct {
	Body *service.AlbumDetail
}

// UpdateAlbumInput wraps the update album request for Huma.
type UpdateAlbumInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Album ID"`
	Body          service.UpdateAlbumRequest
}

// DeleteAlbumInput contains parameters for deleting an album.
type DeleteAlbumInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Album ID"`
}

// AlbumProductsRequest names the products for an add or reorder call.
type AlbumProductsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1" doc:"Product IDs, in order"`
}

// AddAlbumProductsInput wraps the add products request for Huma.
type AddAlbumProductsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Album ID"`
	Body          AlbumProductsRequest
}

// RemoveAlbumProductInput contains parameters for removing a product.
type RemoveAlbumProductInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Album ID"`
	ProductID     string `path:"productID" doc:"Product ID"`
}

// ReorderAlbumInput wraps the reorder request for Huma.
type ReorderAlbumInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Album ID"`
	Body          AlbumProductsRequest
}

// === Handlers ===

func (s *Server) handleCreateAlbum(ctx context.Context, input *CreateAlbumInput) (*AlbumOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	album, err := s.services.Album.CreateAlbum(ctx, actor, input.ShopID, input.Body)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: album}, nil
}

func (s *Server) handleListAlbums(ctx context.Context, input *ListAlbumsInput) (*ListAlbumsOutput, error) {
	result, err := s.services.Album.ListAlbums(ctx, service.ListAlbumsParams{
		ShopID: input.ShopID,
		Query:  input.Query,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListAlbumsOutput{Body: ListAlbumsResponse{
		Albums:  result.Items,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}}, nil
}

func (s *Server) handleGetAlbumBySlug(ctx context.Context, input *GetAlbumBySlugInput) (*AlbumDetailOutput, error) {
	detail, err := s.services.Album.GetAlbumBySlug(ctx, input.ShopID, input.Slug)
	if err != nil {
		return nil, err
	}

	return &AlbumDetailOutput{Body: detail}, nil
}

func (s *Server) handleUpdateAlbum(ctx context.Context, input *UpdateAlbumInput) (*AlbumOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	album, err := s.services.Album.UpdateAlbumMeta(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: album}, nil
}

func (s *Server) handleDeleteAlbum(ctx context.Context, input *DeleteAlbumInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Album.DeleteAlbum(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Album deleted"}}, nil
}

func (s *Server) handleAddAlbumProducts(ctx context.Context, input *AddAlbumProductsInput) (*AlbumOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	album, err := s.services.Album.AddProducts(ctx, actor, input.ID, input.Body.ProductIDs)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: album}, nil
}

func (s *Server) handleRemoveAlbumProduct(ctx context.Context, input *RemoveAlbumProductInput) (*AlbumOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	album, err := s.services.Album.RemoveProduct(ctx, actor, input.ID, input.ProductID)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: album}, nil
}

func (s *Server) handleReorderAlbum(ctx context.Context, input *ReorderAlbumInput) (*AlbumOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	album, err := s.services.Album.ReorderItems(ctx, actor, input.ID, input.Body.ProductIDs)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: album}, nil
}
