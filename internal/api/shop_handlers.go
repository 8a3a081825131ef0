package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerShopRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createShop",
		Method:      http.MethodPost,
		Path:        "/api/v1/shops",
		Summary:     "Create shop",
		Description: "Opens a shop for the authenticated user. One shop per user.",
		Tags:        []string{"Shops"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateShop)

	huma.Register(s.api, huma.Operation{
		OperationID: "listShops",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops",
		Summary:     "List shops",
		Description: "Returns a page of shops, optionally filtered by name",
		Tags:        []string{"Shops"},
	}, s.handleListShops)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMyShop",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops/me",
		Summary:     "Get my shop",
		Description: "Returns the authenticated user's own shop",
		Tags:        []string{"Shops"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyShop)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShopBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops/slug/{slug}",
		Summary:     "Get shop by slug",
		Description: "Returns a shop by its public slug",
		Tags:        []string{"Shops"},
	}, s.handleGetShopBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShop",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops/{id}",
		Summary:     "Get shop",
		Description: "Returns a shop by ID with its owner and products",
		Tags:        []string{"Shops"},
	}, s.handleGetShop)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateShop",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shops/{id}",
		Summary:     "Update shop",
		Description: "Applies a partial update. Owner or admin only.",
		Tags:        []string{"Shops"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateShop)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShop",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shops/{id}",
		Summary:     "Delete shop",
		Description: "Deletes a shop, its products and albums. Owner or admin only.",
		Tags:        []string{"Shops"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteShop)
}

// === DTOs ===

// CreateShopInput wraps the create shop request for Huma.
type CreateShopInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateShopRequest
}

// ShopOutput wraps a bare shop for Huma.
type ShopOutput struct {
	Body *domain.Shop
}

// ShopDetailResponse is a shop expanded with its owner and products.
type ShopDetailResponse struct {
	Shop     *domain.Shop      `json:"shop" doc:"The shop"`
	Owner    *UserResponse     `json:"owner,omitempty" doc:"Shop owner"`
	Products []*domain.Product `json:"products" doc:"The shop's products"`
}

// ShopDetailOutput wraps the expanded shop for Huma.
type ShopDetailOutput struct {
	Body ShopDetailResponse
}

// ListShopsInput contains parameters for listing shops.
type ListShopsInput struct {
	Query   string `query:"q" doc:"Case-insensitive name filter"`
	OwnerID string `query:"owner_id" doc:"Filter by owner"`
	Page    int    `query:"page" doc:"Page number, 1-based"`
	Limit   int    `query:"limit" doc:"Page size"`
}

// ListShopsResponse contains a page of shops.
type ListShopsResponse struct {
	Shops   []*domain.Shop `json:"shops" doc:"Shops on this page"`
	Total   int            `json:"total" doc:"Total matching shops"`
	Page    int            `json:"page" doc:"Current page"`
	Limit   int            `json:"limit" doc:"Page size"`
	HasMore bool           `json:"has_more" doc:"Whether more pages exist"`
}

// ListShopsOutput wraps the shop list for Huma.
type ListShopsOutput struct {
	Body ListShopsResponse
}

// GetShopInput contains parameters for getting a shop by ID.
type GetShopInput struct {
	ID string `path:"id" doc:"Shop ID"`
}

// GetShopBySlugInput contains parameters for getting a shop by slug.
type GetShopBySlugInput struct {
	Slug string `path:"slug" doc:"Shop slug"`
}

// UpdateShopInput wraps the update shop request for Huma.
type UpdateShopInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shop ID"`
	Body          service.UpdateShopRequest
}

// DeleteShopInput contains parameters for deleting a shop.
type DeleteShopInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Shop ID"`
}

// === Handlers ===

func (s *Server) handleCreateShop(ctx context.Context, input *CreateShopInput) (*ShopOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	shop, err := s.services.Shop.CreateShop(ctx, actor, input.Body)
	if err != nil {
		return nil, err
	}

	return &ShopOutput{Body: shop}, nil
}

func (s *Server) handleListShops(ctx context.Context, input *ListShopsInput) (*ListShopsOutput, error) {
	result, err := s.services.Shop.ListShops(ctx, service.ListShopsParams{
		Query:   input.Query,
		OwnerID: input.OwnerID,
		Page:    input.Page,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListShopsOutput{Body: ListShopsResponse{
		Shops:   result.Items,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}}, nil
}

func (s *Server) handleGetMyShop(ctx context.Context, input *AuthHeaderInput) (*ShopDetailOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Shop.GetMyShop(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &ShopDetailOutput{Body: mapShopDetail(detail)}, nil
}

func (s *Server) handleGetShop(ctx context.Context, input *GetShopInput) (*ShopDetailOutput, error) {
	detail, err := s.services.Shop.GetShop(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ShopDetailOutput{Body: mapShopDetail(detail)}, nil
}

func (s *Server) handleGetShopBySlug(ctx context.Context, input *GetShopBySlugInput) (*ShopDetailOutput, error) {
	detail, err := s.services.Shop.GetShopBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	return &ShopDetailOutput{Body: mapShopDetail(detail)}, nil
}

func (s *Server) handleUpdateShop(ctx context.Context, input *UpdateShopInput) (*ShopOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	shop, err := s.services.Shop.UpdateShop(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ShopOutput{Body: shop}, nil
}

func (s *Server) handleDeleteShop(ctx context.Context, input *DeleteShopInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Shop.DeleteShop(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Shop deleted"}}, nil
}

// === Helpers ===

func mapShopDetail(detail *service.ShopDetail) ShopDetailResponse {
	resp := ShopDetailResponse{
		Shop:     detail.Shop,
		Products: detail.Products,
	}
	if detail.Owner != nil {
		owner := mapUserResponse(detail.Owner)
		resp.Owner = &owner
	}
	return resp
}
