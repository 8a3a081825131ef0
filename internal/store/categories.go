package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfolio/shopfolio-server/internal/domain"
)

var (
	// ErrCategoryNotFound is returned when a category cannot be found by ID or slug.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategorySlugExists is returned when the slug is already taken within the kind.
	ErrCategorySlugExists = errors.New("category slug already in use")
)

// CreateCategory creates a new category. Slug uniqueness is scoped to
// the category kind, so a product category and a post category can
// share a slug.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := s.Categories.Create(ctx, c.ID, c)
	if err == nil {
		return nil
	}
	var conflict *IndexConflictError
	if errors.As(err, &conflict) && conflict.Index == "slug" {
		return ErrCategorySlugExists
	}
	return err
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.Categories.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

// GetCategoryBySlug retrieves a category by its kind-scoped slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, kind domain.CategoryKind, slug string) (*domain.Category, error) {
	c, err := s.Categories.GetByIndex(ctx, "slug", string(kind)+"/"+slug)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

// ListCategories returns all categories of the given kind.
func (s *Store) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]*domain.Category, error) {
	var categories []*domain.Category
	for c, err := range s.Categories.ListByLookup(ctx, "kind", string(kind)) {
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}
