package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{kind}",
		Summary:     "List categories",
		Description: "Returns all categories of a kind (product or post), sorted by name",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/categories/{kind}",
		Summary:     "Create category",
		Description: "Adds a category of the given kind. Admin only.",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateCategory)
}

// === DTOs ===

// ListCategoriesInput contains parameters for listing categories.
type ListCategoriesInput struct {
	Kind string `path:"kind" enum:"product,post" doc:"Category kind"`
}

// ListCategoriesResponse contains categories of one kind.
type ListCategoriesResponse struct {
	Categories []*domain.Category `json:"categories" doc:"Categories sorted by name"`
}

// ListCategoriesOutput wraps the category list for Huma.
type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

// CreateCategoryInput wraps the create category request for Huma.
type CreateCategoryInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" enum:"product,post" doc:"Category kind"`
	Body          service.CreateCategoryRequest
}

// CategoryOutput wraps a category for Huma.
type CategoryOutput struct {
	Body *domain.Category
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	kind, err := parseCategoryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	categories, err := s.services.Category.ListCategories(ctx, kind)
	if err != nil {
		return nil, err
	}

	return &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: categories}}, nil
}

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	kind, err := parseCategoryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Category.CreateCategory(ctx, actor, kind, input.Body)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: category}, nil
}

// === Helpers ===

func parseCategoryKind(raw string) (domain.CategoryKind, error) {
	switch raw {
	case "product":
		return domain.CategoryKindProduct, nil
	case "post":
		return domain.CategoryKindPost, nil
	default:
		return "", domainerrors.Validation("kind must be product or post")
	}
}
