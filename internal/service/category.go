package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopfolio/shopfolio-server/internal/domain"
	domainerrors "github.com/shopfolio/shopfolio-server/internal/errors"
	"github.com/shopfolio/shopfolio-server/internal/id"
	"github.com/shopfolio/shopfolio-server/internal/slug"
	"github.com/shopfolio/shopfolio-server/internal/store"
)

// CategoryService manages the flat product and post category tables.
// Creation is admin only; listing is public.
type CategoryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store *store.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

// CreateCategoryRequest contains the fields for a new category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CreateCategory adds a category of the given kind. Admin only.
func (s *CategoryService) CreateCategory(ctx context.Context, actor *domain.User, kind domain.CategoryKind, req CreateCategoryRequest) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("only admins can create categories")
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	categoryID, err := id.Generate("cat")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	category := &domain.Category{
		ID:   categoryID,
		Kind: kind,
		Name: req.Name,
		Slug: slug.Make(req.Name),
	}
	category.Touch()
	category.CreatedAt = category.UpdatedAt

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrCategorySlugExists) {
			return nil, domainerrors.Conflict("a category with this name already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category created", "category_id", categoryID, "kind", kind)
	}

	return category, nil
}

// ListCategories returns all categories of a kind, sorted by name.
func (s *CategoryService) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}
