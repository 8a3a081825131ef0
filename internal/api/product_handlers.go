package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerProductRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createProduct",
		Method:      http.MethodPost,
		Path:        "/api/v1/shops/{shopID}/products",
		Summary:     "Create product",
		Description: "Lists a new product in a shop. Owner or admin only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "listProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns a page of products, optionally filtered by shop and category",
		Tags:        []string{"Products"},
	}, s.handleListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProductBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/shops/{shopID}/products/{slug}",
		Summary:     "Get product",
		Description: "Returns a product by its shop-scoped slug",
		Tags:        []string{"Products"},
	}, s.handleGetProductBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProduct",
		Method:      http.MethodPatch,
		Path:        "/api/v1/products/{id}",
		Summary:     "Update product",
		Description: "Applies a partial update. Owner or admin only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteProduct",
		Method:      http.MethodDelete,
		Path:        "/api/v1/products/{id}",
		Summary:     "Delete product",
		Description: "Removes a product from the shop and from any albums referencing it",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteProduct)
}

// === DTOs ===

// CreateProductInput wraps the create product request for Huma.
type CreateProductInput struct {
	Authorization string `header:"Authorization"`
	ShopID        string `path:"shopID" doc:"Shop ID"`
	Body          service.CreateProductRequest
}

// ProductOutput wraps a product for Huma.
type ProductOutput struct {
	Body *domain.Product
}

// ListProductsInput contains parameters for listing products.
type ListProductsInput struct {
	ShopID     string `query:"shop_id" doc:"Filter by shop"`
	CategoryID string `query:"category_id" doc:"Filter by category"`
	Page       int    `query:"page" doc:"Page number, 1-based"`
	Limit      int    `query:"limit" doc:"Page size"`
}

// ListProductsResponse contains a page of products.
type ListProductsResponse struct {
	Products []*domain.Product `json:"products" doc:"Products on this page"`
	Total    int               `json:"total" doc:"Total matching products"`
	Page     int               `json:"page" doc:"Current page"`
	Limit    int               `json:"limit" doc:"Page size"`
	HasMore  bool              `json:"has_more" doc:"Whether more pages exist"`
}

// ListProductsOutput wraps the product list for Huma.
type ListProductsOutput struct {
	Body ListProductsResponse
}

// GetProductBySlugInput contains parameters for resolving a product.
type GetProductBySlugInput struct {
	ShopID string `path:"shopID" doc:"Shop ID"`
	Slug   string `path:"slug" doc:"Product slug"`
}

// UpdateProductInput wraps the update product request for Huma.
type UpdateProductInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Product ID"`
	Body          service.UpdateProductRequest
}

// DeleteProductInput contains parameters for deleting a product.
type DeleteProductInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Product ID"`
}

// === Handlers ===

func (s *Server) handleCreateProduct(ctx context.Context, input *CreateProductInput) (*ProductOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	product, err := s.services.Product.CreateProduct(ctx, actor, input.ShopID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Body: product}, nil
}

func (s *Server) handleListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	result, err := s.services.Product.ListProducts(ctx, service.ListProductsParams{
		ShopID:     input.ShopID,
		CategoryID: input.CategoryID,
		Page:       input.Page,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListProductsOutput{Body: ListProductsResponse{
		Products: result.Items,
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.Limit,
		HasMore:  result.HasMore,
	}}, nil
}

func (s *Server) handleGetProductBySlug(ctx context.Context, input *GetProductBySlugInput) (*ProductOutput, error) {
	product, err := s.services.Product.GetProductBySlug(ctx, input.ShopID, input.Slug)
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Body: product}, nil
}

func (s *Server) handleUpdateProduct(ctx context.Context, input *UpdateProductInput) (*ProductOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	product, err := s.services.Product.UpdateProduct(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Body: product}, nil
}

func (s *Server) handleDeleteProduct(ctx context.Context, input *DeleteProductInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Product.DeleteProduct(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Product deleted"}}, nil
}
